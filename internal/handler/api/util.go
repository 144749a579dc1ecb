package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fiveflix/videos-ms-go/internal/logger"
)

var debugMode bool

// SetDebug controls whether error responses carry internal detail. Off in
// production; set once at startup.
func SetDebug(on bool) {
	debugMode = on
}

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "failed to encode JSON response: %v", err)
	}
}

// WriteSuccess wraps data in the success envelope.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	RespondJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// WriteError wraps a failure in the envelope. err is logged with context but
// never leaks to the caller.
func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "%s: %v", msg, err)
	} else {
		logger.Error(ctx, msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	if debugMode && err != nil {
		msg = msg + ": " + err.Error()
	}
	RespondJSON(w, status, Response{Success: false, Message: msg})
}

// WriteValidationError reports field-level failures under errors.
func WriteValidationError(w http.ResponseWriter, errs map[string]string) {
	RespondJSON(w, http.StatusUnprocessableEntity, Response{
		Success: false,
		Message: "Validation error",
		Errors:  errs,
	})
}

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusNotFound, Response{Success: false, Message: "Route not found"})
	}
}

func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Message: "This method is not allowed"})
	}
}

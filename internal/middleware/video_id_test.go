package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/fiveflix/videos-ms-go/internal/api_context"
)

func TestWithVideoID(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantID     int64
	}{
		{"valid id", "/videos/42", http.StatusOK, 42},
		{"not a number", "/videos/abc", http.StatusBadRequest, 0},
		{"zero", "/videos/0", http.StatusBadRequest, 0},
		{"negative", "/videos/-3", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			r := chi.NewRouter()
			r.With(WithVideoID()).Get("/videos/{id}", func(w http.ResponseWriter, req *http.Request) {
				gotID, _ = api_context.VideoIDFromContext(req.Context())
				w.WriteHeader(http.StatusOK)
			})

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && gotID != tt.wantID {
				t.Errorf("id = %d, want %d", gotID, tt.wantID)
			}
		})
	}
}

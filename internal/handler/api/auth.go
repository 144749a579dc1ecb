package api

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/fiveflix/videos-ms-go/internal/api_context"
	"github.com/fiveflix/videos-ms-go/internal/usecase/auth"
	"github.com/fiveflix/videos-ms-go/internal/validation"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func LoginHandler(svc auth.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid JSON payload", nil)
			return
		}
		if err := validation.ValidateStruct(req); err != nil {
			WriteValidationError(w, validation.ErrorsToMap(err))
			return
		}

		out, err := svc.Login(r.Context(), auth.LoginInput{
			Username:   req.Username,
			Password:   req.Password,
			DeviceName: r.UserAgent(),
			IPAddress:  clientIP(r),
		})
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				WriteError(w, http.StatusUnauthorized, "Invalid username or password", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not log in", err)
			return
		}
		WriteSuccess(w, http.StatusOK, "Login successful", out)
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

func RegisterHandler(svc auth.Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid JSON payload", nil)
			return
		}
		if err := validation.ValidateStruct(req); err != nil {
			WriteValidationError(w, validation.ErrorsToMap(err))
			return
		}

		out, err := svc.Register(r.Context(), auth.RegisterInput{
			Username:   req.Username,
			Password:   req.Password,
			DeviceName: r.UserAgent(),
			IPAddress:  clientIP(r),
		})
		if err != nil {
			if errors.Is(err, auth.ErrUsernameTaken) {
				WriteValidationError(w, map[string]string{"username": "unique"})
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not register", err)
			return
		}
		WriteSuccess(w, http.StatusCreated, "Registration successful", out)
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func RefreshHandler(svc auth.Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid JSON payload", nil)
			return
		}
		if err := validation.ValidateStruct(req); err != nil {
			WriteValidationError(w, validation.ErrorsToMap(err))
			return
		}

		out, err := svc.Refresh(r.Context(), auth.RefreshInput{RefreshToken: req.RefreshToken})
		if err != nil {
			if errors.Is(err, auth.ErrInvalidRefreshToken) {
				WriteError(w, http.StatusUnauthorized, "Invalid or expired refresh token", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not refresh token", err)
			return
		}
		WriteSuccess(w, http.StatusOK, "Token refreshed successfully", out)
	}
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func LogoutHandler(svc auth.Revoker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usr, ok := api_context.AuthUserFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		hash, _ := api_context.TokenHashFromContext(r.Context())

		// body is optional; only read it when one was sent
		var req logoutRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		err := svc.Logout(r.Context(), auth.LogoutInput{
			UserID:          usr.ID,
			AccessTokenHash: hash,
			RefreshToken:    req.RefreshToken,
		})
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not log out", err)
			return
		}
		WriteSuccess(w, http.StatusOK, "Logout successful", nil)
	}
}

func LogoutAllHandler(svc auth.Revoker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usr, ok := api_context.AuthUserFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		if err := svc.LogoutAll(r.Context(), usr.ID); err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not log out", err)
			return
		}
		WriteSuccess(w, http.StatusOK, "Logged out from all devices", nil)
	}
}

// MeHandler returns the authenticated account.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usr, ok := api_context.AuthUserFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		WriteSuccess(w, http.StatusOK, "", usr)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

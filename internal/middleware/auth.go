package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fiveflix/videos-ms-go/internal/api_context"
	"github.com/fiveflix/videos-ms-go/internal/handler/api"
	"github.com/fiveflix/videos-ms-go/internal/port"
	"github.com/fiveflix/videos-ms-go/internal/token"
)

// WithAuth validates the Bearer access token. The JWT signature and expiry
// are necessary but not sufficient: the token's digest must still exist in
// the access_tokens table, which is how login and logout revoke sessions.
func WithAuth(issuer *token.Issuer, users port.UserRepository, access port.AccessTokenRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				api.WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, err := issuer.ParseAccessToken(raw)
			if err != nil {
				api.WriteError(w, http.StatusUnauthorized, "Unauthenticated", nil)
				return
			}

			hash := token.Hash(raw)
			if _, err := access.GetByHash(r.Context(), hash); err != nil {
				// revoked or never issued
				api.WriteError(w, http.StatusUnauthorized, "Unauthenticated", nil)
				return
			}

			usr, err := users.GetByID(r.Context(), userID)
			if err != nil {
				api.WriteError(w, http.StatusUnauthorized, "Unauthenticated", nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.AuthUserKey, usr)
			ctx = context.WithValue(ctx, api_context.TokenHashKey, hash)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin callers. It must run after WithAuth.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			usr, ok := api_context.AuthUserFromContext(r.Context())
			if !ok {
				api.WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}
			if !usr.IsAdmin() {
				api.WriteError(w, http.StatusForbidden, "Unauthorized", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

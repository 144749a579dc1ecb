package api_context

import (
	"context"

	"github.com/fiveflix/videos-ms-go/internal/model"
)

type ctxKey string

const (
	AuthUserKey  ctxKey = "auth_user"
	VideoIDKey   ctxKey = "video_id"
	TokenHashKey ctxKey = "token_hash"
)

// AuthUserFromContext returns the authenticated user stashed by the auth
// middleware, if any.
func AuthUserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(AuthUserKey).(*model.User)
	return u, ok
}

// VideoIDFromContext returns the path video id stashed by the id middleware.
func VideoIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(VideoIDKey).(int64)
	return id, ok
}

// TokenHashFromContext returns the digest of the bearer token the current
// request authenticated with. Logout revokes exactly this token.
func TokenHashFromContext(ctx context.Context) (string, bool) {
	h, ok := ctx.Value(TokenHashKey).(string)
	return h, ok
}

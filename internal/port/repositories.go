package port

import (
	"context"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/model"
)

// VideoRepository persists catalog records.
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	Update(ctx context.Context, video *model.Video) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	List(ctx context.Context, featuredOnly bool) ([]model.Video, error)
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Upsert(ctx context.Context, user *model.User) error
}

// RefreshTokenRepository persists the hashed halves of refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, tok *model.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*model.RefreshToken, error)
	Touch(ctx context.Context, id int64, at time.Time) error
	DeleteByHash(ctx context.Context, userID int64, hash string) error
	DeleteForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// AccessTokenRepository mirrors issued access tokens for revocation checks.
type AccessTokenRepository interface {
	Create(ctx context.Context, tok *model.AccessToken) error
	GetByHash(ctx context.Context, hash string) (*model.AccessToken, error)
	DeleteByHash(ctx context.Context, hash string) error
	DeleteForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

package auth

import (
	"context"
	"fmt"

	"github.com/fiveflix/videos-ms-go/internal/port"
	"github.com/fiveflix/videos-ms-go/internal/token"
)

type Revoker interface {
	// Logout revokes the access token behind the current request and,
	// when supplied, one specific refresh token.
	Logout(ctx context.Context, in LogoutInput) error
	// LogoutAll revokes every credential the user holds.
	LogoutAll(ctx context.Context, userID int64) error
}

type logoutSrv struct {
	refresh port.RefreshTokenRepository
	access  port.AccessTokenRepository
}

// NewRevoker constructs a Revoker implementation.
func NewRevoker(refresh port.RefreshTokenRepository, access port.AccessTokenRepository) Revoker {
	return &logoutSrv{refresh: refresh, access: access}
}

type LogoutInput struct {
	UserID          int64
	AccessTokenHash string
	// RefreshToken is the plaintext secret, optional.
	RefreshToken string
}

func (s *logoutSrv) Logout(ctx context.Context, in LogoutInput) error {
	if err := s.access.DeleteByHash(ctx, in.AccessTokenHash); err != nil {
		return fmt.Errorf("revoking access token: %w", err)
	}
	if in.RefreshToken != "" {
		if err := s.refresh.DeleteByHash(ctx, in.UserID, token.Hash(in.RefreshToken)); err != nil {
			return fmt.Errorf("revoking refresh token: %w", err)
		}
	}
	return nil
}

func (s *logoutSrv) LogoutAll(ctx context.Context, userID int64) error {
	if err := s.access.DeleteForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoking access tokens: %w", err)
	}
	if err := s.refresh.DeleteForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoking refresh tokens: %w", err)
	}
	return nil
}

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
	"github.com/fiveflix/videos-ms-go/internal/token"
)

type Refresher interface {
	Refresh(ctx context.Context, in RefreshInput) (RefreshOutput, error)
}

type refreshSrv struct {
	users   port.UserRepository
	refresh port.RefreshTokenRepository
	access  port.AccessTokenRepository
	issuer  *token.Issuer
}

// NewRefresher constructs a Refresher implementation.
func NewRefresher(users port.UserRepository, refresh port.RefreshTokenRepository, access port.AccessTokenRepository, issuer *token.Issuer) Refresher {
	return &refreshSrv{users: users, refresh: refresh, access: access, issuer: issuer}
}

type RefreshInput struct {
	RefreshToken string
}

type RefreshOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Refresh trades a valid refresh token for a fresh access token. Old access
// tokens are revoked; the refresh token itself survives until logout or
// expiry.
func (s *refreshSrv) Refresh(ctx context.Context, in RefreshInput) (RefreshOutput, error) {
	tok, err := s.refresh.GetByHash(ctx, token.Hash(in.RefreshToken))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RefreshOutput{}, ErrInvalidRefreshToken
		}
		return RefreshOutput{}, err
	}
	if tok.IsExpired(time.Now().UTC()) {
		return RefreshOutput{}, ErrInvalidRefreshToken
	}

	usr, err := s.users.GetByID(ctx, tok.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RefreshOutput{}, ErrInvalidRefreshToken
		}
		return RefreshOutput{}, err
	}

	if err := s.access.DeleteForUser(ctx, usr.ID); err != nil {
		return RefreshOutput{}, fmt.Errorf("revoking access tokens: %w", err)
	}

	signed, expiresAt, err := s.issuer.MintAccessToken(usr.ID, usr.Role)
	if err != nil {
		return RefreshOutput{}, err
	}
	if err := s.access.Create(ctx, &model.AccessToken{
		UserID:    usr.ID,
		TokenHash: token.Hash(signed),
		ExpiresAt: expiresAt,
	}); err != nil {
		return RefreshOutput{}, fmt.Errorf("persisting access token: %w", err)
	}

	if err := s.refresh.Touch(ctx, tok.ID, time.Now().UTC()); err != nil {
		log.Printf("failed to touch refresh token #%d: %v", tok.ID, err)
	}

	return RefreshOutput{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.issuer.AccessTTL().Seconds()),
	}, nil
}

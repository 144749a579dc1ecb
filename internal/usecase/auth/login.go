package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/crypto"
	"github.com/fiveflix/videos-ms-go/internal/port"
	"github.com/fiveflix/videos-ms-go/internal/token"
)

type Authenticator interface {
	Login(ctx context.Context, in LoginInput) (SessionOutput, error)
}

type loginSrv struct {
	sessionIssuer
	users port.UserRepository
}

// NewAuthenticator constructs an Authenticator implementation.
func NewAuthenticator(users port.UserRepository, refresh port.RefreshTokenRepository, access port.AccessTokenRepository, issuer *token.Issuer, refreshTTL time.Duration) Authenticator {
	return &loginSrv{
		sessionIssuer: sessionIssuer{issuer: issuer, refresh: refresh, access: access, refreshTTL: refreshTTL},
		users:         users,
	}
}

type LoginInput struct {
	Username   string
	Password   string
	DeviceName string
	IPAddress  string
}

// Login verifies the credentials, then enforces the single active session
// policy: every previously issued token for the user is revoked before the
// new pair is minted.
func (s *loginSrv) Login(ctx context.Context, in LoginInput) (SessionOutput, error) {
	usr, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionOutput{}, ErrInvalidCredentials
		}
		return SessionOutput{}, err
	}
	if !crypto.VerifyPassword(usr.PasswordHash, in.Password) {
		return SessionOutput{}, ErrInvalidCredentials
	}

	if err := s.access.DeleteForUser(ctx, usr.ID); err != nil {
		return SessionOutput{}, fmt.Errorf("revoking access tokens: %w", err)
	}
	if err := s.refresh.DeleteForUser(ctx, usr.ID); err != nil {
		return SessionOutput{}, fmt.Errorf("revoking refresh tokens: %w", err)
	}

	return s.issueSession(ctx, usr, deviceInfo{name: in.DeviceName, ip: in.IPAddress})
}

package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/crypto"
	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
	"github.com/fiveflix/videos-ms-go/internal/token"
)

type Registrar interface {
	Register(ctx context.Context, in RegisterInput) (SessionOutput, error)
}

type registerSrv struct {
	sessionIssuer
	users port.UserRepository
}

// NewRegistrar constructs a Registrar implementation.
func NewRegistrar(users port.UserRepository, refresh port.RefreshTokenRepository, access port.AccessTokenRepository, issuer *token.Issuer, refreshTTL time.Duration) Registrar {
	return &registerSrv{
		sessionIssuer: sessionIssuer{issuer: issuer, refresh: refresh, access: access, refreshTTL: refreshTTL},
		users:         users,
	}
}

type RegisterInput struct {
	Username   string
	Password   string
	DeviceName string
	IPAddress  string
}

// Register creates the account and issues its first session. New accounts
// always get the "user" role; admins come from the seeder only.
func (s *registerSrv) Register(ctx context.Context, in RegisterInput) (SessionOutput, error) {
	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return SessionOutput{}, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return SessionOutput{}, err
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return SessionOutput{}, err
	}
	usr := &model.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, usr); err != nil {
		return SessionOutput{}, err
	}

	return s.issueSession(ctx, usr, deviceInfo{name: in.DeviceName, ip: in.IPAddress})
}

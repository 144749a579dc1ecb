package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
	"github.com/fiveflix/videos-ms-go/internal/token"
)

const defaultDeviceName = "Unknown Device"

// UserOutput is the account shape embedded in auth responses.
type UserOutput struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SessionOutput is the credential pair handed out by login and register. The
// refresh token plaintext appears here once and is never retrievable again.
type SessionOutput struct {
	User         UserOutput `json:"user"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type"`
	ExpiresIn    int        `json:"expires_in"`
}

// sessionIssuer is the shared issuance path: mint the access JWT, persist its
// digest for revocation, and create the hashed refresh token row.
type sessionIssuer struct {
	issuer     *token.Issuer
	refresh    port.RefreshTokenRepository
	access     port.AccessTokenRepository
	refreshTTL time.Duration
}

type deviceInfo struct {
	name string
	ip   string
}

func (s *sessionIssuer) issueSession(ctx context.Context, usr *model.User, dev deviceInfo) (SessionOutput, error) {
	signed, expiresAt, err := s.issuer.MintAccessToken(usr.ID, usr.Role)
	if err != nil {
		return SessionOutput{}, err
	}
	if err := s.access.Create(ctx, &model.AccessToken{
		UserID:    usr.ID,
		TokenHash: token.Hash(signed),
		ExpiresAt: expiresAt,
	}); err != nil {
		return SessionOutput{}, fmt.Errorf("persisting access token: %w", err)
	}

	secret, err := token.NewRefreshSecret()
	if err != nil {
		return SessionOutput{}, err
	}
	if dev.name == "" {
		dev.name = defaultDeviceName
	}
	if err := s.refresh.Create(ctx, &model.RefreshToken{
		UserID:     usr.ID,
		TokenHash:  token.Hash(secret),
		DeviceName: dev.name,
		IPAddress:  dev.ip,
		ExpiresAt:  time.Now().UTC().Add(s.refreshTTL),
	}); err != nil {
		return SessionOutput{}, fmt.Errorf("persisting refresh token: %w", err)
	}

	return SessionOutput{
		User: UserOutput{
			ID:       usr.ID,
			Username: usr.Username,
			Role:     usr.Role,
		},
		AccessToken:  signed,
		RefreshToken: secret,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.issuer.AccessTTL().Seconds()),
	}, nil
}

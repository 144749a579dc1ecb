// Package token mints and verifies the two credential kinds of the API:
// short-lived HS256 access tokens and opaque high-entropy refresh secrets.
// Both are also persisted as SHA-256 digests so they can be revoked; the
// signature alone never decides validity.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("token: invalid or expired")

// Issuer mints access tokens signed with a shared HMAC secret.
type Issuer struct {
	secret    []byte
	accessTTL time.Duration
}

func NewIssuer(secret string, accessTTL time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), accessTTL: accessTTL}
}

// AccessTTL is the lifetime applied to every minted access token.
func (i *Issuer) AccessTTL() time.Duration {
	return i.accessTTL
}

// MintAccessToken returns a signed access token for the user along with its
// expiry time.
func (i *Issuer) MintAccessToken(userID int64, role string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": role,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseAccessToken verifies the signature and expiry of an access token and
// returns the user id it was minted for. Revocation is checked separately
// against the persisted digest.
func (i *Issuer) ParseAccessToken(raw string) (int64, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	claims := jwt.MapClaims{}
	tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
		return 0, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// NewRefreshSecret returns a fresh opaque refresh token secret. Its hash is
// what gets persisted; the plaintext is shown to the client exactly once.
func NewRefreshSecret() (string, error) {
	buf := make([]byte, 60)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating refresh secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Hash returns the hex-encoded SHA-256 digest of a token, the only form in
// which tokens are stored.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

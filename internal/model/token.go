package model

import "time"

// RefreshToken is the persisted half of a long-lived session. Only the SHA-256
// digest of the opaque secret is stored; the plaintext is returned to the
// client once at issuance and never retrievable again.
type RefreshToken struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	TokenHash  string     `json:"-"`
	DeviceName string     `json:"device_name"`
	IPAddress  string     `json:"ip_address"`
	LastUsedAt *time.Time `json:"last_used_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// AccessToken mirrors an issued short-lived bearer token so it can be revoked
// server-side. The JWT itself is self-describing; this row only answers
// "is it still valid".
type AccessToken struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown username and wrong password;
	// the caller never learns which.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken rejects a registration for an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidRefreshToken covers unknown and expired refresh tokens alike.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

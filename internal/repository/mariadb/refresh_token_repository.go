package mariadb

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

type RefreshTokenRepository struct {
	db *sql.DB
}

// compile-time check: *RefreshTokenRepository must satisfy port.RefreshTokenRepository
var _ port.RefreshTokenRepository = (*RefreshTokenRepository)(nil)

func NewRefreshTokenRepository(db *sql.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, tok *model.RefreshToken) error {
	log.Printf("creating refresh token for user #%d...", tok.UserID)

	const query = `
      INSERT INTO refresh_tokens (user_id, token_hash, device_name, ip_address, expires_at)
      VALUES (?, ?, ?, ?, ?)
    `
	res, err := r.db.ExecContext(ctx, query,
		tok.UserID, tok.TokenHash, tok.DeviceName, tok.IPAddress, tok.ExpiresAt,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	tok.ID = id
	return nil
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	const query = `
      SELECT id, user_id, token_hash, device_name, ip_address, last_used_at, expires_at, created_at
      FROM refresh_tokens
      WHERE token_hash = ?
    `
	row := r.db.QueryRowContext(ctx, query, hash)
	var tok model.RefreshToken
	if err := row.Scan(
		&tok.ID, &tok.UserID, &tok.TokenHash,
		&tok.DeviceName, &tok.IPAddress,
		&tok.LastUsedAt, &tok.ExpiresAt, &tok.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &tok, nil
}

func (r *RefreshTokenRepository) Touch(ctx context.Context, id int64, at time.Time) error {
	const query = `UPDATE refresh_tokens SET last_used_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, at, id)
	return err
}

func (r *RefreshTokenRepository) DeleteByHash(ctx context.Context, userID int64, hash string) error {
	const query = `DELETE FROM refresh_tokens WHERE user_id = ? AND token_hash = ?`
	_, err := r.db.ExecContext(ctx, query, userID, hash)
	return err
}

func (r *RefreshTokenRepository) DeleteForUser(ctx context.Context, userID int64) error {
	log.Printf("revoking all refresh tokens for user #%d...", userID)

	const query = `DELETE FROM refresh_tokens WHERE user_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM refresh_tokens WHERE expires_at < ?`
	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

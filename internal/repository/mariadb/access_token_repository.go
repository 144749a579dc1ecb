package mariadb

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

type AccessTokenRepository struct {
	db *sql.DB
}

// compile-time check: *AccessTokenRepository must satisfy port.AccessTokenRepository
var _ port.AccessTokenRepository = (*AccessTokenRepository)(nil)

func NewAccessTokenRepository(db *sql.DB) *AccessTokenRepository {
	return &AccessTokenRepository{db: db}
}

func (r *AccessTokenRepository) Create(ctx context.Context, tok *model.AccessToken) error {
	const query = `
      INSERT INTO access_tokens (user_id, token_hash, expires_at)
      VALUES (?, ?, ?)
    `
	res, err := r.db.ExecContext(ctx, query, tok.UserID, tok.TokenHash, tok.ExpiresAt)
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

func (r *AccessTokenRepository) GetByHash(ctx context.Context, hash string) (*model.AccessToken, error) {
	const query = `
      SELECT id, user_id, token_hash, expires_at, created_at
      FROM access_tokens
      WHERE token_hash = ?
    `
	row := r.db.QueryRowContext(ctx, query, hash)
	var tok model.AccessToken
	if err := row.Scan(&tok.ID, &tok.UserID, &tok.TokenHash, &tok.ExpiresAt, &tok.CreatedAt); err != nil {
		return nil, err
	}
	return &tok, nil
}

func (r *AccessTokenRepository) DeleteByHash(ctx context.Context, hash string) error {
	const query = `DELETE FROM access_tokens WHERE token_hash = ?`
	_, err := r.db.ExecContext(ctx, query, hash)
	return err
}

func (r *AccessTokenRepository) DeleteForUser(ctx context.Context, userID int64) error {
	log.Printf("revoking all access tokens for user #%d...", userID)

	const query = `DELETE FROM access_tokens WHERE user_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *AccessTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM access_tokens WHERE expires_at < ?`
	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

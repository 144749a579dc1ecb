package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

type UserRepository struct {
	db *sql.DB
}

// compile-time check: *UserRepository must satisfy port.UserRepository
var _ port.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	log.Printf("creating database record for user %q...", user.Username)

	const query = `
      INSERT INTO users (username, password_hash, role)
      VALUES (?, ?, ?)
    `
	res, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Role)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `
      SELECT id, username, password_hash, role, created_at, updated_at
      FROM users
      WHERE id = ?
    `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const query = `
      SELECT id, username, password_hash, role, created_at, updated_at
      FROM users
      WHERE username = ?
    `
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

// Upsert creates the user or, when the username is taken, refreshes its
// password hash and role. Used by the admin seeder.
func (r *UserRepository) Upsert(ctx context.Context, user *model.User) error {
	log.Printf("upserting database record for user %q...", user.Username)

	const query = `
      INSERT INTO users (username, password_hash, role)
      VALUES (?, ?, ?)
      ON DUPLICATE KEY UPDATE password_hash = VALUES(password_hash), role = VALUES(role)
    `
	_, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Role)
	return err
}

func (r *UserRepository) scanOne(row *sql.Row) (*model.User, error) {
	var user model.User
	if err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

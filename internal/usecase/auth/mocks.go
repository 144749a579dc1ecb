package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

type mockUserRepo struct {
	userRecord *model.User

	getErr    error
	createErr error

	created *model.User
}

var _ port.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, usr *model.User) error {
	m.created = usr
	if m.createErr != nil {
		return m.createErr
	}
	usr.ID = 7
	return nil
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.userRecord == nil {
		return nil, sql.ErrNoRows
	}
	return m.userRecord, nil
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.userRecord == nil || m.userRecord.Username != username {
		return nil, sql.ErrNoRows
	}
	return m.userRecord, nil
}
func (m *mockUserRepo) Upsert(ctx context.Context, usr *model.User) error {
	m.created = usr
	return m.createErr
}

type mockRefreshRepo struct {
	tokenRecord *model.RefreshToken

	getErr    error
	createErr error
	deleteErr error

	created           *model.RefreshToken
	touchedID         int64
	deletedForUser    int64
	deletedHash       string
	deleteForUserHits int
	expiredDeleted    int64
}

var _ port.RefreshTokenRepository = (*mockRefreshRepo)(nil)

func (m *mockRefreshRepo) Create(ctx context.Context, tok *model.RefreshToken) error {
	m.created = tok
	if m.createErr != nil {
		return m.createErr
	}
	tok.ID = 11
	return nil
}
func (m *mockRefreshRepo) GetByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.tokenRecord == nil || m.tokenRecord.TokenHash != hash {
		return nil, sql.ErrNoRows
	}
	return m.tokenRecord, nil
}
func (m *mockRefreshRepo) Touch(ctx context.Context, id int64, at time.Time) error {
	m.touchedID = id
	return nil
}
func (m *mockRefreshRepo) DeleteByHash(ctx context.Context, userID int64, hash string) error {
	m.deletedHash = hash
	return m.deleteErr
}
func (m *mockRefreshRepo) DeleteForUser(ctx context.Context, userID int64) error {
	m.deletedForUser = userID
	m.deleteForUserHits++
	return m.deleteErr
}
func (m *mockRefreshRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	return m.expiredDeleted, nil
}

type mockAccessRepo struct {
	tokenRecord *model.AccessToken

	getErr    error
	createErr error
	deleteErr error

	created           []*model.AccessToken
	deletedHash       string
	deletedForUser    int64
	deleteForUserHits int
	expiredDeleted    int64
}

var _ port.AccessTokenRepository = (*mockAccessRepo)(nil)

func (m *mockAccessRepo) Create(ctx context.Context, tok *model.AccessToken) error {
	m.created = append(m.created, tok)
	return m.createErr
}
func (m *mockAccessRepo) GetByHash(ctx context.Context, hash string) (*model.AccessToken, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.tokenRecord == nil || m.tokenRecord.TokenHash != hash {
		return nil, sql.ErrNoRows
	}
	return m.tokenRecord, nil
}
func (m *mockAccessRepo) DeleteByHash(ctx context.Context, hash string) error {
	m.deletedHash = hash
	return m.deleteErr
}
func (m *mockAccessRepo) DeleteForUser(ctx context.Context, userID int64) error {
	m.deletedForUser = userID
	m.deleteForUserHits++
	return m.deleteErr
}
func (m *mockAccessRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	return m.expiredDeleted, nil
}

package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/api_context"
	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
	"github.com/fiveflix/videos-ms-go/internal/token"
)

type stubUserRepo struct {
	usr *model.User
}

func (s *stubUserRepo) Create(ctx context.Context, u *model.User) error { return nil }
func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.usr == nil || s.usr.ID != id {
		return nil, sql.ErrNoRows
	}
	return s.usr, nil
}
func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, sql.ErrNoRows
}
func (s *stubUserRepo) Upsert(ctx context.Context, u *model.User) error { return nil }

type stubAccessRepo struct {
	validHashes map[string]bool
}

func (s *stubAccessRepo) Create(ctx context.Context, tok *model.AccessToken) error { return nil }
func (s *stubAccessRepo) GetByHash(ctx context.Context, hash string) (*model.AccessToken, error) {
	if !s.validHashes[hash] {
		return nil, sql.ErrNoRows
	}
	return &model.AccessToken{TokenHash: hash}, nil
}
func (s *stubAccessRepo) DeleteByHash(ctx context.Context, hash string) error    { return nil }
func (s *stubAccessRepo) DeleteForUser(ctx context.Context, userID int64) error  { return nil }
func (s *stubAccessRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

var (
	_ port.UserRepository        = (*stubUserRepo)(nil)
	_ port.AccessTokenRepository = (*stubAccessRepo)(nil)
)

func mintToken(t *testing.T, issuer *token.Issuer, userID int64) string {
	t.Helper()
	signed, _, err := issuer.MintAccessToken(userID, model.RoleUser)
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return signed
}

func TestWithAuth_MissingHeader(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Minute)
	mw := WithAuth(issuer, &stubUserRepo{}, &stubAccessRepo{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestWithAuth_BadToken(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Minute)
	mw := WithAuth(issuer, &stubUserRepo{}, &stubAccessRepo{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestWithAuth_RevokedToken(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Minute)
	signed := mintToken(t, issuer, 7)

	// valid signature, but the digest is not in the store anymore
	mw := WithAuth(issuer, &stubUserRepo{usr: &model.User{ID: 7}}, &stubAccessRepo{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestWithAuth_Success(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Minute)
	signed := mintToken(t, issuer, 7)
	usr := &model.User{ID: 7, Username: "alice", Role: model.RoleUser}
	access := &stubAccessRepo{validHashes: map[string]bool{token.Hash(signed): true}}
	mw := WithAuth(issuer, &stubUserRepo{usr: usr}, access)

	var gotUser *model.User
	var gotHash string
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = api_context.AuthUserFromContext(r.Context())
		gotHash, _ = api_context.TokenHashFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if gotUser == nil || gotUser.ID != 7 {
		t.Errorf("context user = %+v", gotUser)
	}
	if gotHash != token.Hash(signed) {
		t.Error("expected token digest in context")
	}
}

func TestWithAuth_ExpiredToken(t *testing.T) {
	issuer := token.NewIssuer("secret", -time.Minute)
	signed := mintToken(t, issuer, 7)
	access := &stubAccessRepo{validHashes: map[string]bool{token.Hash(signed): true}}
	mw := WithAuth(issuer, &stubUserRepo{usr: &model.User{ID: 7}}, access)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		usr        *model.User
		wantStatus int
	}{
		{"admin passes", &model.User{ID: 1, Role: model.RoleAdmin}, http.StatusOK},
		{"plain user forbidden", &model.User{ID: 2, Role: model.RoleUser}, http.StatusForbidden},
		{"unauthenticated", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/videos/1", nil)
			if tt.usr != nil {
				ctx := context.WithValue(req.Context(), api_context.AuthUserKey, tt.usr)
				req = req.WithContext(ctx)
			}

			RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/cache"
	"github.com/fiveflix/videos-ms-go/internal/config"
	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
	"github.com/fiveflix/videos-ms-go/internal/token"
	"github.com/go-chi/chi/v5"
)

func sampleVideo() *model.Video {
	desc := "a test video"
	vk := "videos/a.mp4"
	tk := "thumbnails/a.jpg"
	return &model.Video{
		ID:           1,
		Title:        "Test Video",
		Genre:        "Drama",
		Description:  &desc,
		Duration:     120,
		Year:         2024,
		IsFeatured:   true,
		VideoKey:     &vk,
		ThumbnailKey: &tk,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

type stubVideoRepo struct{}

func (s *stubVideoRepo) Create(ctx context.Context, video *model.Video) error { return nil }
func (s *stubVideoRepo) Update(ctx context.Context, video *model.Video) error { return nil }
func (s *stubVideoRepo) Delete(ctx context.Context, id int64) error           { return nil }
func (s *stubVideoRepo) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	return sampleVideo(), nil
}
func (s *stubVideoRepo) List(ctx context.Context, featuredOnly bool) ([]model.Video, error) {
	return []model.Video{*sampleVideo()}, nil
}

type stubUserRepo struct {
	role string
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }
func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return &model.User{ID: id, Username: "tester", Role: s.role}, nil
}
func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return &model.User{ID: 1, Username: username, Role: s.role}, nil
}
func (s *stubUserRepo) Upsert(ctx context.Context, user *model.User) error { return nil }

type stubRefreshRepo struct{}

func (s *stubRefreshRepo) Create(ctx context.Context, tok *model.RefreshToken) error { return nil }
func (s *stubRefreshRepo) GetByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	return nil, errors.New("no such token")
}
func (s *stubRefreshRepo) Touch(ctx context.Context, id int64, at time.Time) error    { return nil }
func (s *stubRefreshRepo) DeleteByHash(ctx context.Context, userID int64, hash string) error {
	return nil
}
func (s *stubRefreshRepo) DeleteForUser(ctx context.Context, userID int64) error { return nil }
func (s *stubRefreshRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type stubAccessRepo struct{}

func (s *stubAccessRepo) Create(ctx context.Context, tok *model.AccessToken) error { return nil }
func (s *stubAccessRepo) GetByHash(ctx context.Context, hash string) (*model.AccessToken, error) {
	return &model.AccessToken{ID: 1, UserID: 1, TokenHash: hash, ExpiresAt: time.Now().Add(time.Hour)}, nil
}
func (s *stubAccessRepo) DeleteByHash(ctx context.Context, hash string) error    { return nil }
func (s *stubAccessRepo) DeleteForUser(ctx context.Context, userID int64) error  { return nil }
func (s *stubAccessRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type stubStorage struct{}

func (s *stubStorage) InitBucket() error                                      { return nil }
func (s *stubStorage) FileExists(ctx context.Context, fileKey string) (bool, error) { return true, nil }
func (s *stubStorage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	return port.FileInfo{SizeBytes: 1024, ContentType: "video/mp4"}, nil
}
func (s *stubStorage) RemoveFile(ctx context.Context, fileKey string) (bool, error) {
	return true, nil
}
func (s *stubStorage) SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, contentType string) error {
	return nil
}
func (s *stubStorage) PresignDownload(ctx context.Context, fileKey string, ttl time.Duration, opts port.DownloadOptions) (string, error) {
	return "https://cdn.test/" + fileKey + "?sig=abc", nil
}
func (s *stubStorage) PresignUpload(ctx context.Context, fileKey string, ttl time.Duration, contentType string) (string, error) {
	return "https://cdn.test/" + fileKey + "?sig=put", nil
}

// newTestRouter wires the full route table against in-memory stubs and
// returns a bearer token accepted by the auth middleware.
func newTestRouter(t *testing.T, role string) (*chi.Mux, string) {
	t.Helper()

	cfg := &config.Settings{
		S3Bucket:        "5-flix",
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 720 * time.Hour,
		RateAuth:        100,
		RatePublic:      100,
		RateAdmin:       100,
		RateDownload:    100,
	}
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	r := initRouter(context.Background())
	registerRoutes(r, cfg, issuer, &stubVideoRepo{}, &stubUserRepo{role: role}, &stubRefreshRepo{}, &stubAccessRepo{}, cache.NewNoop(), &stubStorage{})

	raw, _, err := issuer.MintAccessToken(1, role)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return r, raw
}

func doRequest(r *chi.Mux, method, target, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_CatalogReadsArePublic(t *testing.T) {
	r, _ := newTestRouter(t, model.RoleUser)

	tests := []struct {
		target string
		want   int
	}{
		{"/videos", http.StatusOK},
		{"/videos/1", http.StatusOK},
		{"/videos/1/info", http.StatusOK},
		{"/videos/1/stream", http.StatusFound},
		{"/videos/1/thumbnail", http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := doRequest(r, http.MethodGet, tt.target, "")
			if rec.Code != tt.want {
				t.Errorf("GET %s without a token = %d; want %d (body %s)", tt.target, rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestRoutes_ProtectedEndpointsRejectAnonymous(t *testing.T) {
	r, _ := newTestRouter(t, model.RoleAdmin)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/videos-featured"},
		{http.MethodGet, "/videos/1/download"},
		{http.MethodGet, "/user"},
		{http.MethodPost, "/logout"},
		{http.MethodPost, "/videos"},
		{http.MethodPost, "/videos/1/update"},
		{http.MethodDelete, "/videos/1"},
		{http.MethodPost, "/videos/upload-urls"},
		{http.MethodPost, "/videos/confirm-upload"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := doRequest(r, tt.method, tt.target, "")
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("%s %s without a token = %d; want 401", tt.method, tt.target, rec.Code)
			}

			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success {
				t.Error("expected success=false")
			}
			if body.Message != "Authentication required" {
				t.Errorf("message = %q", body.Message)
			}
		})
	}
}

func TestRoutes_AuthenticatedReads(t *testing.T) {
	r, bearer := newTestRouter(t, model.RoleUser)

	for _, target := range []string{"/videos-featured", "/user", "/videos/1/download"} {
		rec := doRequest(r, http.MethodGet, target, bearer)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s with a token = %d; want 200 (body %s)", target, rec.Code, rec.Body.String())
		}
	}
}

func TestRoutes_WritesRequireAdminRole(t *testing.T) {
	r, bearer := newTestRouter(t, model.RoleUser)

	rec := doRequest(r, http.MethodDelete, "/videos/1", bearer)
	if rec.Code != http.StatusForbidden {
		t.Errorf("DELETE /videos/1 as a regular user = %d; want 403", rec.Code)
	}
}

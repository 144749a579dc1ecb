package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
)

type mockInfoGetter struct {
	out catalog.VideoInfoOutput
	err error
	id  int64
}

func (m *mockInfoGetter) GetVideoInfo(ctx context.Context, id int64) (catalog.VideoInfoOutput, error) {
	m.id = id
	return m.out, m.err
}

func TestVideoInfoHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockInfoGetter{out: catalog.VideoInfoOutput{
			VideoOutput:  catalog.VideoOutput{ID: 42, Title: "The Matrix"},
			APIStream:    "/videos/42/stream",
			APIThumbnail: "/videos/42/thumbnail",
		}}
		req := withVideoID(httptest.NewRequest(http.MethodGet, "/videos/42/info", nil), 42)
		rec := httptest.NewRecorder()

		VideoInfoHandler(svc)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		if svc.id != 42 {
			t.Errorf("service got id %d; want 42", svc.id)
		}
		var resp struct {
			Data catalog.VideoInfoOutput `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Data.APIStream != "/videos/42/stream" {
			t.Errorf("api_stream = %q", resp.Data.APIStream)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mockInfoGetter{err: catalog.ErrNotFound}
		req := withVideoID(httptest.NewRequest(http.MethodGet, "/videos/42/info", nil), 42)
		rec := httptest.NewRecorder()

		VideoInfoHandler(svc)(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusNotFound)
		}
	})
}

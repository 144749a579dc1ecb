package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
)

type mockLinkGenerator struct {
	out catalog.GenerateUploadURLsOutput
	err error
	in  catalog.GenerateUploadURLsInput
}

func (m *mockLinkGenerator) GenerateUploadURLs(ctx context.Context, in catalog.GenerateUploadURLsInput) (catalog.GenerateUploadURLsOutput, error) {
	m.in = in
	return m.out, m.err
}

func TestUploadLinkHandler(t *testing.T) {
	out := catalog.GenerateUploadURLsOutput{
		VideoUploadURL: "https://s3.example.com/videos/x.mp4?put",
		ThumbUploadURL: "https://s3.example.com/thumbnails/x.jpg?put",
		VideoKey:       "videos/x.mp4",
		ThumbKey:       "thumbnails/x.jpg",
		ExpiresIn:      1800,
	}

	t.Run("success", func(t *testing.T) {
		svc := &mockLinkGenerator{out: out}
		body := `{"video_filename":"x.mp4","thumb_filename":"x.jpg","video_content_type":"video/mp4"}`
		req := httptest.NewRequest(http.MethodPost, "/videos/upload-urls", strings.NewReader(body))
		rec := httptest.NewRecorder()

		UploadLinkHandler(svc)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d (body=%q)", rec.Code, http.StatusOK, rec.Body.String())
		}
		if svc.in.VideoFilename != "x.mp4" || svc.in.VideoContentType != "video/mp4" {
			t.Errorf("service input = %+v", svc.in)
		}
		var resp struct {
			Data catalog.GenerateUploadURLsOutput `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Data != out {
			t.Errorf("payload = %+v; want %+v", resp.Data, out)
		}
	})

	t.Run("missing filenames", func(t *testing.T) {
		svc := &mockLinkGenerator{}
		req := httptest.NewRequest(http.MethodPost, "/videos/upload-urls", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		UploadLinkHandler(svc)(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnprocessableEntity)
		}
		resp := decodeEnvelope(t, rec)
		if resp.Errors["video_filename"] == "" || resp.Errors["thumb_filename"] == "" {
			t.Errorf("errors = %v", resp.Errors)
		}
	})

	t.Run("presign failure", func(t *testing.T) {
		svc := &mockLinkGenerator{err: catalog.ErrStorageInternal}
		body := `{"video_filename":"x.mp4","thumb_filename":"x.jpg"}`
		req := httptest.NewRequest(http.MethodPost, "/videos/upload-urls", strings.NewReader(body))
		rec := httptest.NewRecorder()

		UploadLinkHandler(svc)(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusBadGateway)
		}
	})
}

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/model"
)

func TestGetVideo_NotFound(t *testing.T) {
	repo := &mockVideoRepo{getErr: sql.ErrNoRows}
	svc := NewVideoGetter(repo, &mockCache{}, &mockStorage{}, "5-flix")

	_, err := svc.GetVideo(context.Background(), GetVideoInput{ID: 7})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetVideo_WithoutEmbed(t *testing.T) {
	v := sampleVideo(1)
	repo := &mockVideoRepo{videoRecord: &v}
	cache := &mockCache{}
	strg := &mockStorage{}
	svc := NewVideoGetter(repo, cache, strg, "5-flix")

	out, err := svc.GetVideo(context.Background(), GetVideoInput{ID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.SignedStreamURL != nil || out.SignedThumbnailURL != nil {
		t.Error("signed URLs must stay null without embed_signed")
	}
	if strg.presignDownloadCalled != 0 {
		t.Error("nothing should be presigned without embed_signed")
	}
	if out.StreamURL != "/videos/1/stream" || out.ThumbnailURL != "/videos/1/thumbnail" {
		t.Errorf("endpoints = %q / %q", out.StreamURL, out.ThumbnailURL)
	}
	if out.OriginalVideoKey == nil || *out.OriginalVideoKey != "videos/matrix.mp4" {
		t.Errorf("original video key = %v", out.OriginalVideoKey)
	}
	if !cache.setVideoCalled {
		t.Error("expected record to be cached after load")
	}
}

func TestGetVideo_EmbedSigned(t *testing.T) {
	v := sampleVideo(1)
	repo := &mockVideoRepo{videoRecord: &v}
	strg := &mockStorage{}
	svc := NewVideoGetter(repo, &mockCache{}, strg, "5-flix")

	out, err := svc.GetVideo(context.Background(), GetVideoInput{ID: 1, TTL: 2 * time.Minute, EmbedSigned: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.SignedStreamURL == nil || out.SignedThumbnailURL == nil {
		t.Fatal("expected both signed URLs")
	}
	if strg.presignedTTLs[0] != 2*time.Minute {
		t.Errorf("presign TTL = %v, want 2m", strg.presignedTTLs[0])
	}
	if strg.presignedOpts[0].ContentType != "video/mp4" {
		t.Errorf("content type = %q", strg.presignedOpts[0].ContentType)
	}
}

func TestGetVideo_EmbedSignedDefaultTTL(t *testing.T) {
	v := sampleVideo(1)
	repo := &mockVideoRepo{videoRecord: &v}
	strg := &mockStorage{}
	svc := NewVideoGetter(repo, &mockCache{}, strg, "5-flix")

	if _, err := svc.GetVideo(context.Background(), GetVideoInput{ID: 1, EmbedSigned: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strg.presignedTTLs[0] != DefaultStreamTTL {
		t.Errorf("presign TTL = %v, want %v", strg.presignedTTLs[0], DefaultStreamTTL)
	}
}

func TestGetVideo_CacheHitSkipsRepo(t *testing.T) {
	v := sampleVideo(9)
	raw, _ := json.Marshal(&v)
	repo := &mockVideoRepo{}
	cache := &mockCache{itemData: map[int64][]byte{9: raw}}
	svc := NewVideoGetter(repo, cache, &mockStorage{}, "5-flix")

	out, err := svc.GetVideo(context.Background(), GetVideoInput{ID: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.getCalled {
		t.Error("expected repository to be skipped on cache hit")
	}
	if out.ID != 9 {
		t.Errorf("id = %d, want 9", out.ID)
	}
}

func TestGetVideo_CorruptCacheFallsThrough(t *testing.T) {
	v := sampleVideo(3)
	repo := &mockVideoRepo{videoRecord: &v}
	cache := &mockCache{itemData: map[int64][]byte{3: []byte("{not json")}}
	svc := NewVideoGetter(repo, cache, &mockStorage{}, "5-flix")

	out, err := svc.GetVideo(context.Background(), GetVideoInput{ID: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.getCalled {
		t.Error("corrupt cache entry should fall through to the repository")
	}
	if out.ID != 3 {
		t.Errorf("id = %d, want 3", out.ID)
	}
}

func TestGetVideo_NullableKeys(t *testing.T) {
	v := model.Video{ID: 2, Title: "No Assets", Genre: "doc", Duration: 60, Year: 2020}
	repo := &mockVideoRepo{videoRecord: &v}
	svc := NewVideoGetter(repo, &mockCache{}, &mockStorage{}, "5-flix")

	out, err := svc.GetVideo(context.Background(), GetVideoInput{ID: 2, EmbedSigned: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.OriginalVideoKey != nil || out.OriginalThumbnailKey != nil {
		t.Error("expected null original keys")
	}
	if out.SignedStreamURL != nil || out.SignedThumbnailURL != nil {
		t.Error("expected null signed URLs when no keys are stored")
	}
}

package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/model"
)

func TestStreamURL_InvalidKey(t *testing.T) {
	v := model.Video{ID: 1, Title: "Broken"}
	repo := &mockVideoRepo{videoRecord: &v}
	svc := NewStreamer(repo, &mockCache{}, &mockStorage{}, "5-flix")

	_, err := svc.StreamURL(context.Background(), StreamInput{ID: 1})
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestStreamURL_ObjectMissing(t *testing.T) {
	v := sampleVideo(1)
	repo := &mockVideoRepo{videoRecord: &v}
	strg := &mockStorage{fileExists: false}
	svc := NewStreamer(repo, &mockCache{}, strg, "5-flix")

	_, err := svc.StreamURL(context.Background(), StreamInput{ID: 1})
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if strg.presignDownloadCalled != 0 {
		t.Error("a missing object must never be presigned")
	}
}

func TestStreamURL_Success(t *testing.T) {
	v := sampleVideo(1)
	repo := &mockVideoRepo{videoRecord: &v}
	strg := &mockStorage{fileExists: true}
	svc := NewStreamer(repo, &mockCache{}, strg, "5-flix")

	out, err := svc.StreamURL(context.Background(), StreamInput{ID: 1, TTL: 5 * time.Minute})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.URL == "" {
		t.Fatal("expected a URL")
	}
	if out.ExpiresIn != 300 {
		t.Errorf("expires_in = %d, want 300", out.ExpiresIn)
	}
	if strg.presignedKeys[0] != "videos/matrix.mp4" {
		t.Errorf("presigned key = %q", strg.presignedKeys[0])
	}
	if strg.presignedOpts[0].ContentType != "video/mp4" {
		t.Errorf("content type = %q", strg.presignedOpts[0].ContentType)
	}
}

func TestStreamURL_ExpiresInReflectsClamp(t *testing.T) {
	v := sampleVideo(1)
	repo := &mockVideoRepo{videoRecord: &v}
	strg := &mockStorage{fileExists: true}
	svc := NewStreamer(repo, &mockCache{}, strg, "5-flix")

	out, err := svc.StreamURL(context.Background(), StreamInput{ID: 1, TTL: 24 * time.Hour})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", out.ExpiresIn)
	}
}

func TestStreamURL_DefaultTTL(t *testing.T) {
	v := sampleVideo(1)
	repo := &mockVideoRepo{videoRecord: &v}
	strg := &mockStorage{fileExists: true}
	svc := NewStreamer(repo, &mockCache{}, strg, "5-flix")

	out, err := svc.StreamURL(context.Background(), StreamInput{ID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ExpiresIn != int(DefaultStreamTTL.Seconds()) {
		t.Errorf("expires_in = %d, want %d", out.ExpiresIn, int(DefaultStreamTTL.Seconds()))
	}
}

func TestThumbnailURL_Success(t *testing.T) {
	v := sampleVideo(1)
	repo := &mockVideoRepo{videoRecord: &v}
	strg := &mockStorage{fileExists: true}
	svc := NewStreamer(repo, &mockCache{}, strg, "5-flix")

	out, err := svc.ThumbnailURL(context.Background(), StreamInput{ID: 1, TTL: 2 * time.Minute})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.URL == "" {
		t.Fatal("expected a URL")
	}
	if strg.presignedKeys[0] != "thumbnails/matrix.jpg" {
		t.Errorf("presigned key = %q", strg.presignedKeys[0])
	}
	if strg.presignedOpts[0].ContentType != "image/jpeg" {
		t.Errorf("content type = %q", strg.presignedOpts[0].ContentType)
	}
}

func TestStreamURL_PresignError(t *testing.T) {
	v := sampleVideo(1)
	repo := &mockVideoRepo{videoRecord: &v}
	strg := &mockStorage{fileExists: true, presignDownloadErr: ErrStorageInternal}
	svc := NewStreamer(repo, &mockCache{}, strg, "5-flix")

	_, err := svc.StreamURL(context.Background(), StreamInput{ID: 1})
	if !errors.Is(err, ErrStorageInternal) {
		t.Fatalf("expected ErrStorageInternal, got %v", err)
	}
}

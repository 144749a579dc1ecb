package catalog

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/fiveflix/videos-ms-go/internal/objectkey"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

// Deleter removes a video record and its stored objects. Object deletes are
// best-effort: a storage failure never blocks the record delete.
type Deleter interface {
	DeleteVideo(ctx context.Context, id int64) error
}

type videoDeleterSrv struct {
	repo   port.VideoRepository
	cache  port.Cache
	strg   port.Storage
	bucket string
}

// NewVideoDeleter constructs a Deleter implementation.
func NewVideoDeleter(repo port.VideoRepository, cache port.Cache, strg port.Storage, bucket string) Deleter {
	return &videoDeleterSrv{repo: repo, cache: cache, strg: strg, bucket: bucket}
}

func (s *videoDeleterSrv) DeleteVideo(ctx context.Context, id int64) error {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	s.removeObject(ctx, strOrEmpty(video.VideoKey))
	s.removeObject(ctx, strOrEmpty(video.ThumbnailKey))

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.cache.InvalidateVideo(ctx, id); err != nil {
		log.Printf("failed invalidating cache for video #%d: %v", id, err)
	}
	return nil
}

func (s *videoDeleterSrv) removeObject(ctx context.Context, ref string) {
	key := objectkey.Normalize(s.bucket, ref)
	if key == "" {
		return
	}
	if _, err := s.strg.RemoveFile(ctx, key); err != nil {
		log.Printf("failed to remove object %q: %v", key, err)
	}
}

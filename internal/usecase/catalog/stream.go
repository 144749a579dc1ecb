package catalog

import (
	"context"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/mimetype"
	"github.com/fiveflix/videos-ms-go/internal/objectkey"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

// Streamer mints short-lived signed URLs for a video's media objects. The
// object's existence is checked first so a broken record fails fast instead
// of handing out a signed URL to nothing.
type Streamer interface {
	StreamURL(ctx context.Context, in StreamInput) (StreamOutput, error)
	ThumbnailURL(ctx context.Context, in StreamInput) (StreamOutput, error)
}

type streamerSrv struct {
	repo   port.VideoRepository
	cache  port.Cache
	strg   port.Storage
	bucket string
}

// NewStreamer constructs a Streamer implementation.
func NewStreamer(repo port.VideoRepository, cache port.Cache, strg port.Storage, bucket string) Streamer {
	return &streamerSrv{repo: repo, cache: cache, strg: strg, bucket: bucket}
}

type StreamInput struct {
	ID  int64
	TTL time.Duration
}

type StreamOutput struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

func (s *streamerSrv) StreamURL(ctx context.Context, in StreamInput) (StreamOutput, error) {
	video, err := loadVideo(ctx, s.cache, s.repo, in.ID)
	if err != nil {
		return StreamOutput{}, err
	}
	key := objectkey.Normalize(s.bucket, strOrEmpty(video.VideoKey))
	return s.presign(ctx, key, in.TTL, mimetype.GuessVideo(key))
}

func (s *streamerSrv) ThumbnailURL(ctx context.Context, in StreamInput) (StreamOutput, error) {
	video, err := loadVideo(ctx, s.cache, s.repo, in.ID)
	if err != nil {
		return StreamOutput{}, err
	}
	key := objectkey.Normalize(s.bucket, strOrEmpty(video.ThumbnailKey))
	return s.presign(ctx, key, in.TTL, mimetype.GuessImage(key))
}

func (s *streamerSrv) presign(ctx context.Context, key string, ttl time.Duration, mime string) (StreamOutput, error) {
	if key == "" {
		return StreamOutput{}, ErrInvalidKey
	}

	exists, err := s.strg.FileExists(ctx, key)
	if err != nil {
		return StreamOutput{}, err
	}
	if !exists {
		return StreamOutput{}, ErrObjectNotFound
	}

	if ttl <= 0 {
		ttl = DefaultStreamTTL
	}
	url, err := s.strg.PresignDownload(ctx, key, ttl, port.DownloadOptions{ContentType: mime})
	if err != nil {
		return StreamOutput{}, err
	}
	return StreamOutput{
		URL:       url,
		ExpiresIn: int(ClampTTL(ttl).Seconds()),
	}, nil
}

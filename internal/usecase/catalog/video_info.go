package catalog

import (
	"context"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/mimetype"
	"github.com/fiveflix/videos-ms-go/internal/objectkey"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

type InfoGetter interface {
	GetVideoInfo(ctx context.Context, id int64) (VideoInfoOutput, error)
}

type videoInfoSrv struct {
	repo   port.VideoRepository
	cache  port.Cache
	strg   port.Storage
	bucket string
}

// NewVideoInfoGetter constructs an InfoGetter implementation.
func NewVideoInfoGetter(repo port.VideoRepository, cache port.Cache, strg port.Storage, bucket string) InfoGetter {
	return &videoInfoSrv{repo: repo, cache: cache, strg: strg, bucket: bucket}
}

// VideoInfoOutput is the preview shape: metadata plus short-TTL signed URLs.
type VideoInfoOutput struct {
	VideoOutput
	StreamURL    *string   `json:"stream_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	APIStream    string    `json:"api_stream"`
	APIThumbnail string    `json:"api_thumbnail"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *videoInfoSrv) GetVideoInfo(ctx context.Context, id int64) (VideoInfoOutput, error) {
	video, err := loadVideo(ctx, s.cache, s.repo, id)
	if err != nil {
		return VideoInfoOutput{}, err
	}

	out := VideoInfoOutput{
		VideoOutput:  videoOutputOf(video),
		APIStream:    streamEndpoint(video.ID),
		APIThumbnail: thumbnailEndpoint(video.ID),
		CreatedAt:    video.CreatedAt,
		UpdatedAt:    video.UpdatedAt,
	}

	if key := objectkey.Normalize(s.bucket, strOrEmpty(video.VideoKey)); key != "" {
		url, err := s.strg.PresignDownload(ctx, key, DefaultStreamTTL, port.DownloadOptions{
			ContentType: mimetype.GuessVideo(key),
		})
		if err != nil {
			return VideoInfoOutput{}, err
		}
		out.StreamURL = &url
	}
	if key := objectkey.Normalize(s.bucket, strOrEmpty(video.ThumbnailKey)); key != "" {
		url, err := s.strg.PresignDownload(ctx, key, DefaultStreamTTL, port.DownloadOptions{
			ContentType: mimetype.GuessImage(key),
		})
		if err != nil {
			return VideoInfoOutput{}, err
		}
		out.ThumbnailURL = &url
	}
	return out, nil
}

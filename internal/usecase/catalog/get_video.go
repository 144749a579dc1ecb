package catalog

import (
	"context"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/mimetype"
	"github.com/fiveflix/videos-ms-go/internal/objectkey"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

type Getter interface {
	GetVideo(ctx context.Context, in GetVideoInput) (GetVideoOutput, error)
}

type videoGetterSrv struct {
	repo   port.VideoRepository
	cache  port.Cache
	strg   port.Storage
	bucket string
}

// NewVideoGetter constructs a Getter implementation.
func NewVideoGetter(repo port.VideoRepository, cache port.Cache, strg port.Storage, bucket string) Getter {
	return &videoGetterSrv{repo: repo, cache: cache, strg: strg, bucket: bucket}
}

type GetVideoInput struct {
	ID int64
	// TTL applies to the optional embedded signed URLs; it is clamped at the
	// signing boundary.
	TTL         time.Duration
	EmbedSigned bool
}

type GetVideoOutput struct {
	VideoOutput
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// API endpoints, always present; they redirect to fresh signed URLs.
	StreamURL    string `json:"stream_url"`
	ThumbnailURL string `json:"thumbnail_url"`

	// Presigned URLs, only on request.
	SignedStreamURL    *string `json:"signed_stream_url"`
	SignedThumbnailURL *string `json:"signed_thumbnail_url"`

	// Canonical stored keys, for admin tooling.
	OriginalVideoKey     *string `json:"original_video_url"`
	OriginalThumbnailKey *string `json:"original_thumbnail_url"`
}

func (s *videoGetterSrv) GetVideo(ctx context.Context, in GetVideoInput) (GetVideoOutput, error) {
	video, err := loadVideo(ctx, s.cache, s.repo, in.ID)
	if err != nil {
		return GetVideoOutput{}, err
	}

	videoKey := objectkey.Normalize(s.bucket, strOrEmpty(video.VideoKey))
	thumbKey := objectkey.Normalize(s.bucket, strOrEmpty(video.ThumbnailKey))

	out := GetVideoOutput{
		VideoOutput:          videoOutputOf(video),
		CreatedAt:            video.CreatedAt,
		UpdatedAt:            video.UpdatedAt,
		StreamURL:            streamEndpoint(video.ID),
		ThumbnailURL:         thumbnailEndpoint(video.ID),
		OriginalVideoKey:     keyOrNil(videoKey),
		OriginalThumbnailKey: keyOrNil(thumbKey),
	}

	if !in.EmbedSigned {
		return out, nil
	}

	ttl := in.TTL
	if ttl <= 0 {
		ttl = DefaultStreamTTL
	}
	if videoKey != "" {
		url, err := s.strg.PresignDownload(ctx, videoKey, ttl, port.DownloadOptions{
			ContentType: mimetype.GuessVideo(videoKey),
		})
		if err != nil {
			return GetVideoOutput{}, err
		}
		out.SignedStreamURL = &url
	}
	if thumbKey != "" {
		url, err := s.strg.PresignDownload(ctx, thumbKey, ttl, port.DownloadOptions{
			ContentType: mimetype.GuessImage(thumbKey),
		})
		if err != nil {
			return GetVideoOutput{}, err
		}
		out.SignedThumbnailURL = &url
	}
	return out, nil
}

package catalog

import (
	"context"
	"log"

	"github.com/fiveflix/videos-ms-go/internal/mimetype"
	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/objectkey"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

type Lister interface {
	ListVideos(ctx context.Context, in ListVideosInput) ([]VideoListItem, error)
}

type videoListerSrv struct {
	repo   port.VideoRepository
	cache  port.Cache
	strg   port.Storage
	bucket string
}

// NewVideoLister constructs a Lister implementation.
func NewVideoLister(repo port.VideoRepository, cache port.Cache, strg port.Storage, bucket string) Lister {
	return &videoListerSrv{repo: repo, cache: cache, strg: strg, bucket: bucket}
}

type ListVideosInput struct {
	FeaturedOnly bool
}

// VideoListItem carries presigned media URLs with a long TTL, plus the API
// endpoints a client can fall back to once those expire.
type VideoListItem struct {
	VideoOutput
	StreamURL         *string `json:"stream_url"`
	ThumbnailURL      *string `json:"thumbnail_url"`
	StreamEndpoint    string  `json:"stream_endpoint"`
	ThumbnailEndpoint string  `json:"thumbnail_endpoint"`
}

func (s *videoListerSrv) ListVideos(ctx context.Context, in ListVideosInput) ([]VideoListItem, error) {
	videos, err := loadList(ctx, s.cache, s.repo, in.FeaturedOnly)
	if err != nil {
		return nil, err
	}

	out := make([]VideoListItem, 0, len(videos))
	for i := range videos {
		item, err := s.toListItem(ctx, &videos[i])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *videoListerSrv) toListItem(ctx context.Context, video *model.Video) (VideoListItem, error) {
	item := VideoListItem{
		VideoOutput:       videoOutputOf(video),
		StreamEndpoint:    streamEndpoint(video.ID),
		ThumbnailEndpoint: thumbnailEndpoint(video.ID),
	}

	if key := objectkey.Normalize(s.bucket, strOrEmpty(video.VideoKey)); key != "" {
		url, err := s.strg.PresignDownload(ctx, key, ListPresignTTL, port.DownloadOptions{
			ContentType: mimetype.GuessVideo(key),
		})
		if err != nil {
			return VideoListItem{}, err
		}
		item.StreamURL = &url
	}
	if key := objectkey.Normalize(s.bucket, strOrEmpty(video.ThumbnailKey)); key != "" {
		url, err := s.strg.PresignDownload(ctx, key, ListPresignTTL, port.DownloadOptions{
			ContentType: mimetype.GuessImage(key),
		})
		if err != nil {
			return VideoListItem{}, err
		}
		item.ThumbnailURL = &url
	}
	if item.StreamURL == nil {
		log.Printf("video #%d has no playable object key", video.ID)
	}
	return item, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

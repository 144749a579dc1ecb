package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/fiveflix/videos-ms-go/internal/mimetype"
	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

type Creator interface {
	CreateVideo(ctx context.Context, in CreateVideoInput) (CreateVideoOutput, error)
}

type videoCreatorSrv struct {
	repo  port.VideoRepository
	cache port.Cache
	strg  port.Storage
}

// NewVideoCreator constructs a Creator implementation.
func NewVideoCreator(repo port.VideoRepository, cache port.Cache, strg port.Storage) Creator {
	return &videoCreatorSrv{repo: repo, cache: cache, strg: strg}
}

// UploadFile is one binary part of a multipart create or update.
type UploadFile struct {
	Name   string
	Size   int64
	Reader io.Reader
}

type CreateVideoInput struct {
	Title       string
	Genre       string
	Description *string
	Duration    int
	Year        int
	IsFeatured  bool
	Video       UploadFile
	Thumbnail   UploadFile
}

type CreateVideoOutput struct {
	VideoOutput
	StreamURL            string    `json:"stream_url"`
	ThumbnailURL         string    `json:"thumbnail_url"`
	OriginalVideoKey     *string   `json:"original_video_url"`
	OriginalThumbnailKey *string   `json:"original_thumbnail_url"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CreateVideo stores both binaries under generated keys, then persists the
// record holding those keys, never URLs.
func (s *videoCreatorSrv) CreateVideo(ctx context.Context, in CreateVideoInput) (CreateVideoOutput, error) {
	videoKey := generateKey(VideoKeyPrefix, in.Video.Name)
	if err := s.strg.SaveFile(ctx, videoKey, in.Video.Reader, in.Video.Size, mimetype.GuessVideo(videoKey)); err != nil {
		return CreateVideoOutput{}, fmt.Errorf("error saving video object %q: %w", videoKey, err)
	}

	thumbKey := generateKey(ThumbnailKeyPrefix, in.Thumbnail.Name)
	if err := s.strg.SaveFile(ctx, thumbKey, in.Thumbnail.Reader, in.Thumbnail.Size, mimetype.GuessImage(thumbKey)); err != nil {
		// the video object is already up; drop it rather than leak it
		if _, rmErr := s.strg.RemoveFile(ctx, videoKey); rmErr != nil {
			log.Printf("failed to clean up orphaned object %q: %v", videoKey, rmErr)
		}
		return CreateVideoOutput{}, fmt.Errorf("error saving thumbnail object %q: %w", thumbKey, err)
	}

	video := &model.Video{
		Title:        in.Title,
		Genre:        in.Genre,
		Description:  in.Description,
		Duration:     in.Duration,
		Year:         in.Year,
		IsFeatured:   in.IsFeatured,
		VideoKey:     &videoKey,
		ThumbnailKey: &thumbKey,
	}
	if err := s.repo.Create(ctx, video); err != nil {
		return CreateVideoOutput{}, err
	}

	if err := s.cache.InvalidateVideo(ctx, video.ID); err != nil {
		log.Printf("failed invalidating cache for video #%d: %v", video.ID, err)
	}

	now := time.Now().UTC()
	return CreateVideoOutput{
		VideoOutput:          videoOutputOf(video),
		StreamURL:            streamEndpoint(video.ID),
		ThumbnailURL:         thumbnailEndpoint(video.ID),
		OriginalVideoKey:     &videoKey,
		OriginalThumbnailKey: &thumbKey,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// generateKey roots a client-supplied filename under prefix with a
// collision-resistant suffix. Only the base name survives.
func generateKey(prefix, filename string) string {
	return prefix + uuid.NewString() + "_" + path.Base(filename)
}

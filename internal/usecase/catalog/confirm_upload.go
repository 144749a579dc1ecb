package catalog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

// UploadConfirmer closes the presigned upload flow: the client has pushed
// its binaries out-of-band, so all that remains is verifying the video
// object landed and creating the record.
type UploadConfirmer interface {
	ConfirmUpload(ctx context.Context, in ConfirmUploadInput) (ConfirmUploadOutput, error)
}

type uploadConfirmerSrv struct {
	repo  port.VideoRepository
	cache port.Cache
	strg  port.Storage
}

// NewUploadConfirmer constructs an UploadConfirmer implementation.
func NewUploadConfirmer(repo port.VideoRepository, cache port.Cache, strg port.Storage) UploadConfirmer {
	return &uploadConfirmerSrv{repo: repo, cache: cache, strg: strg}
}

type ConfirmUploadInput struct {
	Title       string
	Genre       string
	Description *string
	Duration    int
	Year        int
	IsFeatured  bool
	VideoKey    string
	ThumbKey    string
}

type ConfirmUploadOutput struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *uploadConfirmerSrv) ConfirmUpload(ctx context.Context, in ConfirmUploadInput) (ConfirmUploadOutput, error) {
	exists, err := s.strg.FileExists(ctx, in.VideoKey)
	if err != nil {
		return ConfirmUploadOutput{}, fmt.Errorf("error checking upload %q: %w", in.VideoKey, err)
	}
	if !exists {
		return ConfirmUploadOutput{}, ErrUploadIncomplete
	}

	video := &model.Video{
		Title:        in.Title,
		Genre:        in.Genre,
		Description:  in.Description,
		Duration:     in.Duration,
		Year:         in.Year,
		IsFeatured:   in.IsFeatured,
		VideoKey:     &in.VideoKey,
		ThumbnailKey: &in.ThumbKey,
	}
	if err := s.repo.Create(ctx, video); err != nil {
		return ConfirmUploadOutput{}, err
	}

	if err := s.cache.InvalidateVideo(ctx, video.ID); err != nil {
		log.Printf("failed invalidating cache for video #%d: %v", video.ID, err)
	}

	return ConfirmUploadOutput{
		ID:        video.ID,
		Title:     video.Title,
		CreatedAt: time.Now().UTC(),
	}, nil
}

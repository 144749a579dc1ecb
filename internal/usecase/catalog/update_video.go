package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/mimetype"
	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/objectkey"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

type Updater interface {
	UpdateVideo(ctx context.Context, in UpdateVideoInput) (UpdateVideoOutput, error)
}

type videoUpdaterSrv struct {
	repo   port.VideoRepository
	cache  port.Cache
	strg   port.Storage
	bucket string
}

// NewVideoUpdater constructs an Updater implementation.
func NewVideoUpdater(repo port.VideoRepository, cache port.Cache, strg port.Storage, bucket string) Updater {
	return &videoUpdaterSrv{repo: repo, cache: cache, strg: strg, bucket: bucket}
}

// UpdateVideoInput carries partial-update semantics: a nil pointer means the
// field was absent from the request. Each present field is validated on its
// own; a present-but-invalid value is skipped rather than failing the rest.
type UpdateVideoInput struct {
	ID          int64
	Title       *string
	Genre       *string
	Description *string
	// DescriptionSet distinguishes "clear the description" from "absent".
	DescriptionSet bool
	Duration       *int
	Year           *int
	IsFeatured     *bool
	Video          *UploadFile
	Thumbnail      *UploadFile
}

type UpdateVideoOutput struct {
	VideoOutput
	StreamURL            string    `json:"stream_url"`
	ThumbnailURL         string    `json:"thumbnail_url"`
	OriginalVideoKey     *string   `json:"original_video_url"`
	OriginalThumbnailKey *string   `json:"original_thumbnail_url"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (s *videoUpdaterSrv) UpdateVideo(ctx context.Context, in UpdateVideoInput) (UpdateVideoOutput, error) {
	video, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UpdateVideoOutput{}, ErrNotFound
		}
		return UpdateVideoOutput{}, err
	}

	changed := s.applyFields(video, in)

	if in.Thumbnail != nil {
		if err := s.replaceAsset(ctx, video, in.Thumbnail, false); err != nil {
			return UpdateVideoOutput{}, err
		}
		changed = true
	}
	if in.Video != nil {
		if err := s.replaceAsset(ctx, video, in.Video, true); err != nil {
			return UpdateVideoOutput{}, err
		}
		changed = true
	}

	if !changed {
		return UpdateVideoOutput{}, ErrNoChanges
	}

	if err := s.repo.Update(ctx, video); err != nil {
		return UpdateVideoOutput{}, err
	}
	if err := s.cache.InvalidateVideo(ctx, video.ID); err != nil {
		log.Printf("failed invalidating cache for video #%d: %v", video.ID, err)
	}

	return UpdateVideoOutput{
		VideoOutput:          videoOutputOf(video),
		StreamURL:            streamEndpoint(video.ID),
		ThumbnailURL:         thumbnailEndpoint(video.ID),
		OriginalVideoKey:     keyOrNil(objectkey.Normalize(s.bucket, strOrEmpty(video.VideoKey))),
		OriginalThumbnailKey: keyOrNil(objectkey.Normalize(s.bucket, strOrEmpty(video.ThumbnailKey))),
		CreatedAt:            video.CreatedAt,
		UpdatedAt:            time.Now().UTC(),
	}, nil
}

func (s *videoUpdaterSrv) applyFields(video *model.Video, in UpdateVideoInput) bool {
	changed := false

	if in.Title != nil {
		if t := strings.TrimSpace(*in.Title); t != "" {
			video.Title = t
			changed = true
		}
	}
	if in.Genre != nil {
		if g := strings.TrimSpace(*in.Genre); g != "" {
			video.Genre = g
			changed = true
		}
	}
	if in.DescriptionSet {
		if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
			d := strings.TrimSpace(*in.Description)
			video.Description = &d
		} else {
			video.Description = nil
		}
		changed = true
	}
	if in.Duration != nil && *in.Duration > 0 {
		video.Duration = *in.Duration
		changed = true
	}
	if in.Year != nil && *in.Year >= 1900 && *in.Year <= 2030 {
		video.Year = *in.Year
		changed = true
	}
	if in.IsFeatured != nil {
		video.IsFeatured = *in.IsFeatured
		changed = true
	}
	return changed
}

// replaceAsset stores the new binary first, then drops the superseded object
// and swaps the stored key.
func (s *videoUpdaterSrv) replaceAsset(ctx context.Context, video *model.Video, file *UploadFile, isVideo bool) error {
	prefix, mime := ThumbnailKeyPrefix, ""
	oldRef := video.ThumbnailKey
	if isVideo {
		prefix = VideoKeyPrefix
		oldRef = video.VideoKey
	}

	newKey := generateKey(prefix, file.Name)
	if isVideo {
		mime = mimetype.GuessVideo(newKey)
	} else {
		mime = mimetype.GuessImage(newKey)
	}
	if err := s.strg.SaveFile(ctx, newKey, file.Reader, file.Size, mime); err != nil {
		return fmt.Errorf("error saving replacement object %q: %w", newKey, err)
	}

	if oldKey := objectkey.Normalize(s.bucket, strOrEmpty(oldRef)); oldKey != "" {
		if _, err := s.strg.RemoveFile(ctx, oldKey); err != nil {
			log.Printf("failed to remove superseded object %q: %v", oldKey, err)
		}
	}

	if isVideo {
		video.VideoKey = &newKey
	} else {
		video.ThumbnailKey = &newKey
	}
	return nil
}

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/mimetype"
	"github.com/fiveflix/videos-ms-go/internal/objectkey"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

type Downloader interface {
	DownloadVideo(ctx context.Context, in DownloadVideoInput) (DownloadVideoOutput, error)
}

type videoDownloaderSrv struct {
	repo   port.VideoRepository
	strg   port.Storage
	bucket string
}

// NewVideoDownloader constructs a Downloader implementation.
func NewVideoDownloader(repo port.VideoRepository, strg port.Storage, bucket string) Downloader {
	return &videoDownloaderSrv{repo: repo, strg: strg, bucket: bucket}
}

type DownloadVideoInput struct {
	ID               int64
	TTL              time.Duration
	IncludeThumbnail bool
}

// FileDownload describes one downloadable object. Size is nil when the stat
// call failed; the link itself still works.
type FileDownload struct {
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename"`
	Size        *int64 `json:"size"`
	MimeType    string `json:"mime_type"`
	Key         string `json:"key"`
}

type DownloadVideoOutput struct {
	VideoID           int64         `json:"video_id"`
	Title             string        `json:"title"`
	Genre             string        `json:"genre"`
	Description       *string       `json:"description"`
	Duration          int           `json:"duration"`
	DurationFormatted string        `json:"duration_formatted"`
	Year              int           `json:"year"`
	Video             FileDownload  `json:"video"`
	Thumbnail         *FileDownload `json:"thumbnail"`
	ExpiresIn         int           `json:"expires_in"`
	ExpiresAt         time.Time     `json:"expires_at"`
}

// DownloadVideo presigns an attachment-disposition link for the video object
// and, optionally, its thumbnail. The thumbnail is a best-effort side channel
// that degrades to null instead of failing the response.
func (s *videoDownloaderSrv) DownloadVideo(ctx context.Context, in DownloadVideoInput) (DownloadVideoOutput, error) {
	video, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DownloadVideoOutput{}, ErrNotFound
		}
		return DownloadVideoOutput{}, err
	}

	videoKey := objectkey.Normalize(s.bucket, strOrEmpty(video.VideoKey))
	if videoKey == "" {
		return DownloadVideoOutput{}, ErrInvalidKey
	}

	exists, err := s.strg.FileExists(ctx, videoKey)
	if err != nil {
		return DownloadVideoOutput{}, err
	}
	if !exists {
		return DownloadVideoOutput{}, ErrObjectNotFound
	}

	ttl := in.TTL
	if ttl <= 0 {
		ttl = DefaultDownloadTTL
	}
	ttl = ClampTTL(ttl)

	baseName := Slugify(video.Title)
	videoFile, err := s.presignAttachment(ctx, videoKey, ttl, baseName, true)
	if err != nil {
		return DownloadVideoOutput{}, err
	}

	out := DownloadVideoOutput{
		VideoID:           video.ID,
		Title:             video.Title,
		Genre:             video.Genre,
		Description:       video.Description,
		Duration:          video.Duration,
		DurationFormatted: FormatDuration(video.Duration),
		Year:              video.Year,
		Video:             videoFile,
		ExpiresIn:         int(ttl.Seconds()),
		ExpiresAt:         time.Now().UTC().Add(ttl),
	}

	if in.IncludeThumbnail {
		out.Thumbnail = s.thumbnailDownload(ctx, video.ThumbnailKey, ttl, baseName)
	}
	return out, nil
}

func (s *videoDownloaderSrv) presignAttachment(ctx context.Context, key string, ttl time.Duration, baseName string, isVideo bool) (FileDownload, error) {
	ext := mimetype.Ext(key)
	mime := mimetype.GuessImage(key)
	filename := baseName + "_thumb." + ext
	if isVideo {
		mime = mimetype.GuessVideo(key)
		filename = baseName + "." + ext
	}

	url, err := s.strg.PresignDownload(ctx, key, ttl, port.DownloadOptions{
		ContentType:        mime,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
	})
	if err != nil {
		return FileDownload{}, err
	}

	file := FileDownload{
		DownloadURL: url,
		Filename:    filename,
		MimeType:    mime,
		Key:         key,
	}
	if info, err := s.strg.StatFile(ctx, key); err != nil {
		log.Printf("failed to stat object %q: %v", key, err)
	} else {
		file.Size = &info.SizeBytes
	}
	return file, nil
}

func (s *videoDownloaderSrv) thumbnailDownload(ctx context.Context, ref *string, ttl time.Duration, baseName string) *FileDownload {
	key := objectkey.Normalize(s.bucket, strOrEmpty(ref))
	if key == "" {
		return nil
	}
	exists, err := s.strg.FileExists(ctx, key)
	if err != nil || !exists {
		if err != nil {
			log.Printf("thumbnail existence check failed for %q: %v", key, err)
		}
		return nil
	}
	file, err := s.presignAttachment(ctx, key, ttl, baseName, false)
	if err != nil {
		log.Printf("failed to presign thumbnail %q: %v", key, err)
		return nil
	}
	return &file
}

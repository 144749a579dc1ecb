package catalog

import (
	"context"

	"github.com/fiveflix/videos-ms-go/internal/port"
)

// UploadLinkGenerator issues the presign-for-upload pair that lets an admin
// client push large binaries straight to the object store, keeping media
// bytes off the API process entirely.
type UploadLinkGenerator interface {
	GenerateUploadURLs(ctx context.Context, in GenerateUploadURLsInput) (GenerateUploadURLsOutput, error)
}

type uploadLinkGeneratorSrv struct {
	strg port.Storage
}

// NewUploadLinkGenerator constructs an UploadLinkGenerator implementation.
func NewUploadLinkGenerator(strg port.Storage) UploadLinkGenerator {
	return &uploadLinkGeneratorSrv{strg: strg}
}

type GenerateUploadURLsInput struct {
	VideoFilename    string
	ThumbFilename    string
	VideoContentType string
	ThumbContentType string
}

type GenerateUploadURLsOutput struct {
	VideoUploadURL string `json:"video_upload_url"`
	ThumbUploadURL string `json:"thumb_upload_url"`
	VideoKey       string `json:"video_key"`
	ThumbKey       string `json:"thumb_key"`
	ExpiresIn      int    `json:"expires_in"`
}

func (s *uploadLinkGeneratorSrv) GenerateUploadURLs(ctx context.Context, in GenerateUploadURLsInput) (GenerateUploadURLsOutput, error) {
	videoKey := generateKey(VideoKeyPrefix, in.VideoFilename)
	thumbKey := generateKey(ThumbnailKeyPrefix, in.ThumbFilename)

	videoURL, err := s.strg.PresignUpload(ctx, videoKey, UploadPresignTTL, in.VideoContentType)
	if err != nil {
		return GenerateUploadURLsOutput{}, err
	}
	thumbURL, err := s.strg.PresignUpload(ctx, thumbKey, UploadPresignTTL, in.ThumbContentType)
	if err != nil {
		return GenerateUploadURLsOutput{}, err
	}

	return GenerateUploadURLsOutput{
		VideoUploadURL: videoURL,
		ThumbUploadURL: thumbURL,
		VideoKey:       videoKey,
		ThumbKey:       thumbKey,
		ExpiresIn:      int(UploadPresignTTL.Seconds()),
	}, nil
}

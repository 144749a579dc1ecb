package port

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a stored object.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// DownloadOptions override response headers on a presigned GET.
type DownloadOptions struct {
	ContentType        string
	ContentDisposition string
}

// Storage defines the object-store operations consumed by the catalog. All
// operations target the single configured bucket.
type Storage interface {
	InitBucket() error
	FileExists(ctx context.Context, fileKey string) (bool, error)
	StatFile(ctx context.Context, fileKey string) (FileInfo, error)
	// RemoveFile reports whether an object was actually deleted; removing a
	// blank or missing key is a no-op, not an error.
	RemoveFile(ctx context.Context, fileKey string) (bool, error)
	SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, contentType string) error
	// PresignDownload clamps ttl to the [60s, 3600s] signing bounds.
	PresignDownload(ctx context.Context, fileKey string, ttl time.Duration, opts DownloadOptions) (string, error)
	PresignUpload(ctx context.Context, fileKey string, ttl time.Duration, contentType string) (string, error)
}

package catalog

import "time"

const (
	// presign bounds for read access, enforced at the signing boundary
	MinPresignTTL = 60 * time.Second
	MaxPresignTTL = 3600 * time.Second

	// default TTLs per operation
	DefaultStreamTTL   = 600 * time.Second
	ListPresignTTL     = 3600 * time.Second
	DefaultDownloadTTL = 1800 * time.Second
	UploadPresignTTL   = 30 * time.Minute

	VideoKeyPrefix     = "videos/"
	ThumbnailKeyPrefix = "thumbnails/"
)

// ClampTTL saturates a requested read-presign TTL into [MinPresignTTL,
// MaxPresignTTL]. Monotonic within range, saturating outside it.
func ClampTTL(ttl time.Duration) time.Duration {
	if ttl < MinPresignTTL {
		return MinPresignTTL
	}
	if ttl > MaxPresignTTL {
		return MaxPresignTTL
	}
	return ttl
}

package port

import "context"

// Cache provides the metadata cache regions backing the catalog reads.
// Values are opaque JSON blobs; TTLs are fixed per region at construction.
// A nil return with nil error is a miss. Loader failures are never cached.
type Cache interface {
	GetVideo(ctx context.Context, id int64) ([]byte, error)
	SetVideo(ctx context.Context, id int64, data []byte)
	GetList(ctx context.Context, featured bool) ([]byte, error)
	SetList(ctx context.Context, featured bool, data []byte)
	// InvalidateVideo clears the item entry and, unconditionally, both list
	// regions. List regions have no granular invalidation.
	InvalidateVideo(ctx context.Context, id int64) error
}

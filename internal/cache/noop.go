package cache

import (
	"context"

	"github.com/fiveflix/videos-ms-go/internal/port"
)

// NoopCache is used when Redis is not configured; every read is a miss.
type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetVideo(ctx context.Context, id int64) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) SetVideo(ctx context.Context, id int64, data []byte) {}

func (n *NoopCache) GetList(ctx context.Context, featured bool) ([]byte, error) {
	return nil, nil
}

func (n *NoopCache) SetList(ctx context.Context, featured bool, data []byte) {}

func (n *NoopCache) InvalidateVideo(ctx context.Context, id int64) error { return nil }

package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/port"
	"github.com/redis/go-redis/v9"
)

// Cache is the Redis-backed metadata cache. It holds three regions: one entry
// per video, the full index list and the featured list. Entries are immutable
// once written; they expire by TTL or are force-invalidated on catalog writes.
type Cache struct {
	client *redis.Client

	ttlItem     time.Duration
	ttlIndex    time.Duration
	ttlFeatured time.Duration
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string, ttlItem, ttlIndex, ttlFeatured time.Duration) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{
		client:      rdb,
		ttlItem:     ttlItem,
		ttlIndex:    ttlIndex,
		ttlFeatured: ttlFeatured,
	}
}

func (c *Cache) GetVideo(ctx context.Context, id int64) ([]byte, error) {
	return c.get(ctx, itemKey(id))
}

func (c *Cache) SetVideo(ctx context.Context, id int64, data []byte) {
	c.set(ctx, itemKey(id), data, c.ttlItem)
}

func (c *Cache) GetList(ctx context.Context, featured bool) ([]byte, error) {
	return c.get(ctx, listKey(featured))
}

func (c *Cache) SetList(ctx context.Context, featured bool, data []byte) {
	ttl := c.ttlIndex
	if featured {
		ttl = c.ttlFeatured
	}
	c.set(ctx, listKey(featured), data, ttl)
}

// InvalidateVideo drops the item entry and both list regions. List regions
// have no granular invalidation; any item change clears them whole.
func (c *Cache) InvalidateVideo(ctx context.Context, id int64) error {
	log.Printf("invalidating cache for video #%d...", id)

	if err := c.client.Del(ctx, itemKey(id), listKey(false), listKey(true)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		// best-effort: a lost write only means a reload on the next read
		log.Printf("redis set failed for %q: %v", key, err)
	}
}

func itemKey(id int64) string {
	return fmt.Sprintf("video.%d", id)
}

func listKey(featured bool) string {
	if featured {
		return "videos.featured"
	}
	return "videos.index"
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func makeTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	// spin up in-memory Redis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)
	// point the real client at it
	rdb := redis.NewClient(&redis.Options{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
	})
	return &Cache{
		client:      rdb,
		ttlItem:     2 * time.Minute,
		ttlIndex:    2 * time.Minute,
		ttlFeatured: 5 * time.Minute,
	}, mr
}

func TestVideoRegion(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	// 1) miss
	got, err := c.GetVideo(ctx, 7)
	if err != nil {
		t.Fatalf("GetVideo miss: %v", err)
	}
	if got != nil {
		t.Errorf("GetVideo miss: got %q; want nil", got)
	}

	// 2) set then hit
	payload := []byte(`{"id":7,"title":"Inception"}`)
	c.SetVideo(ctx, 7, payload)

	got, err = c.GetVideo(ctx, 7)
	if err != nil {
		t.Fatalf("GetVideo hit: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("GetVideo hit: got %q; want %q", got, payload)
	}

	// 3) TTL applied
	if ttl := mr.TTL("video.7"); ttl != 2*time.Minute {
		t.Errorf("TTL = %v; want 2m", ttl)
	}

	// 4) expiry turns the entry back into a miss
	mr.FastForward(3 * time.Minute)
	got, err = c.GetVideo(ctx, 7)
	if err != nil {
		t.Fatalf("GetVideo after expiry: %v", err)
	}
	if got != nil {
		t.Errorf("expected miss after expiry, got %q", got)
	}
}

func TestListRegions(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	c.SetList(ctx, false, []byte(`[1,2,3]`))
	c.SetList(ctx, true, []byte(`[2]`))

	if ttl := mr.TTL("videos.index"); ttl != 2*time.Minute {
		t.Errorf("index TTL = %v; want 2m", ttl)
	}
	if ttl := mr.TTL("videos.featured"); ttl != 5*time.Minute {
		t.Errorf("featured TTL = %v; want 5m", ttl)
	}

	got, err := c.GetList(ctx, true)
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if string(got) != `[2]` {
		t.Errorf("GetList featured: got %q", got)
	}
}

func TestInvalidateVideo_ClearsItemAndBothLists(t *testing.T) {
	c, _ := makeTestCache(t)
	ctx := context.Background()

	c.SetVideo(ctx, 7, []byte(`{"id":7}`))
	c.SetVideo(ctx, 8, []byte(`{"id":8}`))
	c.SetList(ctx, false, []byte(`[7,8]`))
	c.SetList(ctx, true, []byte(`[7]`))

	if err := c.InvalidateVideo(ctx, 7); err != nil {
		t.Fatalf("InvalidateVideo: %v", err)
	}

	for name, get := range map[string]func() ([]byte, error){
		"item":     func() ([]byte, error) { return c.GetVideo(ctx, 7) },
		"index":    func() ([]byte, error) { return c.GetList(ctx, false) },
		"featured": func() ([]byte, error) { return c.GetList(ctx, true) },
	} {
		got, err := get()
		if err != nil {
			t.Fatalf("%s after invalidate: %v", name, err)
		}
		if got != nil {
			t.Errorf("%s region should be cleared after invalidate, got %q", name, got)
		}
	}

	// unrelated item entries survive
	got, err := c.GetVideo(ctx, 8)
	if err != nil {
		t.Fatalf("GetVideo(8): %v", err)
	}
	if got == nil {
		t.Error("invalidating video 7 must not clear video 8")
	}
}

func TestGetVideo_RedisDown(t *testing.T) {
	c, mr := makeTestCache(t)
	mr.Close()

	if _, err := c.GetVideo(context.Background(), 1); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
}

func TestNoopCache(t *testing.T) {
	n := NewNoop()
	ctx := context.Background()

	n.SetVideo(ctx, 1, []byte("x"))
	got, err := n.GetVideo(ctx, 1)
	if err != nil || got != nil {
		t.Errorf("noop GetVideo = %q, %v; want nil, nil", got, err)
	}
	if err := n.InvalidateVideo(ctx, 1); err != nil {
		t.Errorf("noop InvalidateVideo: %v", err)
	}
}

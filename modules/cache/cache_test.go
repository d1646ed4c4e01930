package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type entry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := New(client, "test:", time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_GetMiss(t *testing.T) {
	c, _ := setupTestCache(t)

	var got entry
	found, err := c.Get(context.Background(), "absent", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("expected cache miss")
	}
	if s := c.Stats(); s.Misses != 1 || s.Hits != 0 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestCache_SetThenGet(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "a", entry{Name: "a.jpg", Size: 42}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !mr.Exists("test:a") {
		t.Fatal("expected prefixed key in redis")
	}
	if ttl := mr.TTL("test:a"); ttl != time.Minute {
		t.Errorf("expected TTL %v, got %v", time.Minute, ttl)
	}

	var got entry
	found, err := c.Get(ctx, "a", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if got.Name != "a.jpg" || got.Size != 42 {
		t.Errorf("unexpected value %+v", got)
	}
	if s := c.Stats(); s.Hits != 1 {
		t.Errorf("expected 1 hit, got %d", s.Hits)
	}
}

func TestCache_Expiry(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "short", entry{Name: "x"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	mr.FastForward(2 * time.Minute)

	var got entry
	found, err := c.Get(ctx, "short", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("expected entry to expire")
	}
}

func TestCache_CorruptValue(t *testing.T) {
	c, mr := setupTestCache(t)

	if err := mr.Set("test:bad", "{not json"); err != nil {
		t.Fatalf("miniredis Set() error = %v", err)
	}

	var got entry
	found, err := c.Get(context.Background(), "bad", &got)
	if err == nil {
		t.Fatal("expected unmarshal error")
	}
	if found {
		t.Error("corrupt value must not count as a hit")
	}
	if s := c.Stats(); s.Errors != 1 {
		t.Errorf("expected 1 error, got %d", s.Errors)
	}
}

func TestCache_ServerDown(t *testing.T) {
	c, mr := setupTestCache(t)
	mr.Close()

	var got entry
	if _, err := c.Get(context.Background(), "a", &got); err == nil {
		t.Error("expected error when redis is unavailable")
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Error("expected ping to fail when redis is unavailable")
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := DefaultConfig()
	cfg.RedisAddr = mr.Addr()
	c, err := Connect(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer c.Close()

	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

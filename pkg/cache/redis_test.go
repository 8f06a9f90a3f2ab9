package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// newTestRedis connects to the Redis named by RNALAYOUT_TEST_REDIS, skipping
// the test when the variable is unset.
func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("RNALAYOUT_TEST_REDIS")
	if addr == "" {
		t.Skip("RNALAYOUT_TEST_REDIS not set")
	}
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr, Prefix: "rnalayout-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Clear(context.Background())
		_ = c.Close()
	})
	return c
}

func TestRedisCache(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Fatalf("Get = %q, %v, %v; want value, true, nil", data, hit, err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Port 1 is reserved and never runs Redis.
	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("NewRedisCache error = %v, want ErrNetwork", err)
	}
}

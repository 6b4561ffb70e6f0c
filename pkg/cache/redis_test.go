package cache

import (
	"context"
	"testing"
)

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url"); err == nil {
		t.Fatal("NewRedisCache should reject a malformed URL")
	}
}

func TestNewRedisCacheCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The ping retry loop must respect cancellation instead of
	// sleeping through its remaining attempts.
	_, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0")
	if err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

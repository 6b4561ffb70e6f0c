package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flowsketch/flowsketch/pkg/httputil"
)

// Redis may still be starting when the server comes up, so the initial
// ping is retried a few times before giving up.
const (
	pingAttempts = 3
	pingDelay    = 500 * time.Millisecond
)

// RedisCache implements a Redis-backed cache for server deployments,
// where multiple instances need to share cached graphs and artifacts.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed cache from a connection URL
// (e.g. "redis://localhost:6379/0"). The connection is verified with a
// ping before the cache is returned; transient connection failures are
// retried with exponential backoff.
func NewRedisCache(ctx context.Context, url string) (Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	err = httputil.Retry(ctx, pingAttempts, pingDelay, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return &httputil.RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in Redis. Redis handles expiration natively; a TTL
// of 0 stores the value without expiration.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)

// Package httputil provides HTTP utilities for the remote builder client.
//
// # Overview
//
// This package provides infrastructure used when graph construction is
// delegated to a remote HTTP endpoint:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/flowsketch/)
// with configurable TTL. Repeated builds of the same source then skip
// the network round trip entirely.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	var payload remote.Payload
//	ok, _ := cache.Get("remote:"+hash, &payload)  // Check cache
//	if !ok {
//	    payload = fetchFromEndpoint()
//	    cache.Set("remote:"+hash, payload)        // Store for later
//	}
//
// Cache keys should be namespaced by endpoint to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Wrap transient errors with [RetryableError] so Retry knows to try again:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return postSource(url, source)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/flowsketch/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `flowsketch cache clear` or by deleting
// the cache directory.
package httputil

// Package cache provides pluggable caching for built graphs, rendered
// artifacts, and remote payloads.
//
// Three backends are provided:
//   - FileCache: file-based cache for CLI usage
//   - RedisCache: Redis-backed cache for server deployments
//   - NullCache: no-op cache for tests or when caching is disabled
//
// Keys are generated through a Keyer so that all components agree on
// the key layout, and a ScopedKeyer can prefix keys for multi-tenant
// isolation.
package cache

import (
	"context"
	"time"
)

// TTL constants for the different cached value classes.
const (
	// TTLGraph is how long built graphs stay cached. Source text fully
	// determines the graph, so this is effectively a size bound.
	TTLGraph = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (DOT, SVG, PNG) stay cached.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLRemote is how long remote builder responses stay cached.
	// Remote endpoints may change behavior, so this is kept short.
	TTLRemote = time.Hour
)

// Cache is the interface implemented by all cache backends.
// Values are opaque byte slices; callers handle serialization.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// GraphKeyOpts are the options that affect graph construction and
// therefore must be part of the graph cache key.
type GraphKeyOpts struct {
	Remote   bool   `json:"remote"`
	Endpoint string `json:"endpoint,omitempty"`
}

// ArtifactKeyOpts are the options that affect artifact rendering and
// therefore must be part of the artifact cache key.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys. All key methods are deterministic: the
// same inputs always produce the same key.
type Keyer interface {
	// GraphKey generates a key for a built graph, derived from the
	// source hash and the build options.
	GraphKey(sourceHash string, opts GraphKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, derived from
	// the graph hash and the render options.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a built graph.
func (k *DefaultKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return hashKey("graph", sourceHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

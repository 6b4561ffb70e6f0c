package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The server uses this when different deployments share a Redis
// instance and need separate cache namespaces.
//
// Example usage:
//
//	// Deployment-specific keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for built-graph caching.
func (k *ScopedKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(sourceHash, opts)
}

// ArtifactKey generates a prefixed key for rendered-artifact caching.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}

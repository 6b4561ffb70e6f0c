package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowsketch/flowsketch/pkg/cache"
	"github.com/flowsketch/flowsketch/pkg/cfg"
	graphio "github.com/flowsketch/flowsketch/pkg/io"
	"github.com/flowsketch/flowsketch/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	g, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.BlockCount = len(g.Blocks)
	result.Stats.EdgeCount = len(g.Edges)
	result.CacheInfo.BuildHit = buildHit

	// Compute graph hash for cache keys and API responses
	if data, err := marshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	r.Logger.Info("built graph",
		"blocks", len(g.Blocks),
		"edges", len(g.Edges),
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo builds the graph with caching and returns cache hit info.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*cfg.Graph, bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	sourceHash := cache.Hash([]byte(opts.Source))
	cacheKey := r.Keyer.GraphKey(sourceHash, opts.GraphKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			g, err := graphio.ReadJSON(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return &g, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	observability.Pipeline().OnBuildStart(ctx, len(opts.Source))
	buildStart := time.Now()
	g, err := Build(ctx, opts)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, 0, 0, time.Since(buildStart), err)
		return nil, false, err
	}
	observability.Pipeline().OnBuildComplete(ctx, len(g.Blocks), len(g.Edges), time.Since(buildStart), nil)

	// Cache the result
	if data, err := marshalGraph(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}

	return g, false, nil // Cache miss
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (*cfg.Graph, error) {
	g, _, err := r.BuildWithCacheInfo(ctx, opts)
	return g, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The graphHash may be empty, in which case it is recomputed from the graph.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *cfg.Graph, graphHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if graphHash == "" {
		data, err := marshalGraph(g)
		if err != nil {
			return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
		}
		graphHash = cache.Hash(data)
	}

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	rendered, err := Render(ctx, g, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *cfg.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, "", opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func marshalGraph(g *cfg.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := graphio.WriteJSON(*g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

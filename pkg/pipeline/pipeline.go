// Package pipeline provides the core build pipeline for Flowsketch.
//
// This package implements the complete build → render pipeline that can
// be used by CLI and server components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: Construct the control-flow graph, either locally with the
//     line scanner or by delegating to a remote builder endpoint
//  2. Render: Serialize the graph in various formats (DOT, SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  sourceText,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Build only
//	g, err := runner.Build(ctx, opts)
//
//	// Render with existing graph
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowsketch/flowsketch/pkg/cache"
	"github.com/flowsketch/flowsketch/pkg/cfg"
	"github.com/flowsketch/flowsketch/pkg/errors"
	"github.com/flowsketch/flowsketch/pkg/httputil"
)

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for the build pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Source   string `json:"source"`
	Remote   bool   `json:"remote,omitempty"`   // Delegate graph construction to a remote builder
	Endpoint string `json:"endpoint,omitempty"` // Remote builder URL, required when Remote is set
	Refresh  bool   `json:"refresh,omitempty"`  // Bypass the cache and rebuild

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// RemoteCache stores raw remote builder responses below the graph
	// cache, keyed by endpoint and source text. Only consulted when
	// Remote is set; nil disables response caching.
	RemoteCache *httputil.Cache `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the built control-flow graph.
	Graph *cfg.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount int
	EdgeCount  int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the built graph came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for graph construction.
func (o *Options) ValidateForBuild() error {
	if err := errors.ValidateSource(o.Source); err != nil {
		return err
	}
	if o.Remote {
		if err := errors.ValidateURL(o.Endpoint); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDOT}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// GraphKeyOpts returns cache key options for graph construction.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	opts := cache.GraphKeyOpts{Remote: o.Remote}
	if o.Remote {
		opts.Endpoint = o.Endpoint
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// Package pkg provides the core libraries for flowsketch control-flow graphs.
//
// # Overview
//
// Flowsketch scans C-like source text line by line and builds a heuristic
// control-flow graph: straight-line statements collapse into blocks,
// branches become decision blocks, and labeled true/false edges connect
// them. The pkg directory is organized into four main areas:
//
//  1. [cfg] - Domain logic (block extraction, edge synthesis, graph types)
//  2. [dot], [io] - Serialization (DOT/SVG/PNG rendering, graph JSON)
//  3. [remote], [store] - External services (remote builder, persistence)
//  4. [pipeline] - Orchestration (build → render with caching)
//
// # Architecture
//
// The typical data flow through flowsketch:
//
//	C-like source text
//	         ↓
//	    [cfg] package (extract blocks, synthesize edges)
//	         ↓
//	    [pipeline] package (caching, orchestration)
//	         ↓
//	    [dot] / [io] packages (DOT, SVG, PNG, JSON output)
//
// # Quick Start
//
// Build and render a graph directly:
//
//	g := cfg.Build(source)
//	fmt.Println(dot.Marshal(g))
//
// Or run the cached pipeline:
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  source,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// # Supporting Packages
//
// The remaining packages supply ambient infrastructure: [cache] holds the
// graph and artifact caches (file, redis, null), [errors] defines coded
// errors shared across the CLI and HTTP API, [httputil] provides the
// HTTP response cache and retry helpers used by the remote client,
// [observability] exposes optional instrumentation hooks, and
// [buildinfo] carries build-time version metadata.
package pkg

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowsketch/flowsketch/pkg/cfg"
	"github.com/flowsketch/flowsketch/pkg/httputil"
	graphio "github.com/flowsketch/flowsketch/pkg/io"
	"github.com/flowsketch/flowsketch/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: "dot", "svg", "png", "json"
	remote   bool     // build via the remote builder service
	endpoint string   // remote builder URL (overrides config)
	refresh  bool     // bypass caches
	noCache  bool     // disable caching entirely
}

// newRenderCmd creates the render command for producing graph artifacts.
// The input may be a source file (built first) or a graph JSON file
// produced by the build command.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a control-flow graph to DOT, SVG, PNG, or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot (default), svg, png, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.remote, "remote", false, "build via the remote builder service")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "remote builder URL (overrides config)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even on a cache hit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["dot"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatDOT}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output ends
// in a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "graph"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender builds or loads the graph, renders the requested formats, and
// writes each artifact to its own file.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	conf, err := loadConfig()
	if err != nil {
		return err
	}

	cacheCfg := conf.Cache
	if opts.noCache {
		cacheCfg = CacheConfig{Backend: "none"}
	}
	c, err := openCache(ctx, cacheCfg)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	endpoint := opts.endpoint
	if endpoint == "" {
		endpoint = conf.Remote.Endpoint
	}
	var rc *httputil.Cache
	if opts.remote {
		rc = openRemoteCache(cacheCfg)
	}

	g, source, cached, err := loadOrBuild(ctx, runner, input, endpoint, rc, opts)
	if err != nil {
		return err
	}
	logger.Infof("Graph ready: %d blocks, %d edges", len(g.Blocks), len(g.Edges))

	pipeOpts := pipeline.Options{
		Source:   source,
		Remote:   opts.remote,
		Endpoint: endpoint,
		Refresh:  opts.refresh,
		Formats:  opts.formats,
	}
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, g, "", pipeOpts)
	if err != nil {
		return err
	}

	if len(opts.formats) == 1 && opts.output != "" {
		if err := writeArtifact(opts.output, artifacts[opts.formats[0]]); err != nil {
			return err
		}
		printFile(opts.output)
	} else {
		base := basePath(opts.output, input)
		for _, format := range opts.formats {
			path := fmt.Sprintf("%s.%s", base, format)
			if err := writeArtifact(path, artifacts[format]); err != nil {
				return err
			}
			printFile(path)
		}
	}

	printStats(len(g.Blocks), len(g.Edges), cached && renderHit)
	return nil
}

// loadOrBuild returns the graph for input. A .json input is loaded as a
// previously exported graph; anything else is treated as source text and
// built through the runner.
func loadOrBuild(ctx context.Context, runner *pipeline.Runner, input, endpoint string, rc *httputil.Cache, opts *renderOpts) (*cfg.Graph, string, bool, error) {
	if filepath.Ext(input) == ".json" {
		g, err := graphio.ImportJSON(input)
		if err != nil {
			return nil, "", false, err
		}
		return &g, "", false, nil
	}

	source, err := readSource(input)
	if err != nil {
		return nil, "", false, err
	}
	g, hit, err := runner.BuildWithCacheInfo(ctx, pipeline.Options{
		Source:      source,
		Remote:      opts.remote,
		Endpoint:    endpoint,
		Refresh:     opts.refresh,
		RemoteCache: rc,
	})
	if err != nil {
		return nil, "", false, err
	}
	return g, source, hit, nil
}

// writeArtifact writes data to path, or stdout when path is empty.
func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}

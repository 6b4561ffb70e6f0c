package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowsketch/flowsketch/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output   string // output file path ("" means stdout)
	remote   bool   // delegate graph construction to a remote builder
	endpoint string // remote builder URL (overrides config)
	refresh  bool   // bypass the build cache
	noCache  bool   // disable caching entirely
}

// newBuildCmd creates the build command, which scans a source file and
// writes the resulting control-flow graph as JSON.
func newBuildCmd() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Build a control-flow graph from a source file",
		Long: `Build scans a C-like source file line by line and writes the
resulting control-flow graph as JSON. Use "-" to read from stdin.

With --remote, graph construction is delegated to a remote builder
service and the returned payload is normalized before output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.remote, "remote", false, "build via the remote builder service")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "remote builder URL (overrides config)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even on a cache hit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the build cache")

	return cmd
}

// runBuild reads the source, runs the build stage, and writes graph JSON.
func runBuild(ctx context.Context, input string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)

	conf, err := loadConfig()
	if err != nil {
		return err
	}

	source, err := readSource(input)
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

	pipeOpts := pipeline.Options{
		Source:   source,
		Remote:   opts.remote,
		Endpoint: endpoint,
		Refresh:  opts.refresh,
		Formats:  []string{pipeline.FormatJSON},
	}
	if opts.remote {
		pipeOpts.RemoteCache = openRemoteCache(cacheCfg)
	}

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %d blocks", result.Stats.BlockCount))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(result.Artifacts[pipeline.FormatJSON]); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Built %s", displayName(input))
		printFile(opts.output)
		printStats(result.Stats.BlockCount, result.Stats.EdgeCount, result.CacheInfo.BuildHit)
	}
	return nil
}

// displayName returns a human-readable name for the input path.
func displayName(input string) string {
	if input == "-" {
		return "stdin"
	}
	return strings.TrimSpace(input)
}

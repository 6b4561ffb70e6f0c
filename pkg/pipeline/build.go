package pipeline

import (
	"context"

	"github.com/flowsketch/flowsketch/pkg/cfg"
	"github.com/flowsketch/flowsketch/pkg/remote"
)

// Build constructs the control-flow graph for the given options.
//
// Local builds run the line scanner and edge synthesizer, which never
// fail on any input. Remote builds delegate to the configured endpoint
// and can fail on network or payload errors.
func Build(ctx context.Context, opts Options) (*cfg.Graph, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	if opts.Remote {
		rc := opts.RemoteCache
		if opts.Refresh {
			// Refresh forces a fresh remote build as well.
			rc = nil
		}
		client := remote.NewClient(opts.Endpoint, rc)
		return client.Build(ctx, opts.Source)
	}

	g := cfg.Build(opts.Source)
	opts.Logger.Debug("built graph locally",
		"blocks", len(g.Blocks),
		"edges", len(g.Edges))
	return &g, nil
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// version information (set via SetVersion at startup).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersion updates the version information shown by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the flowsketch CLI with the given context.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:   appName,
		Short: "Build control-flow graphs from C-like source",
		Long: appName + ` scans C-like source text line by line and builds a
control-flow graph: blocks for straight-line statements, decision
blocks for branches, and labeled true/false edges between them.
Graphs render to DOT, SVG, PNG, or JSON.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.WarnLevel
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")

	root.AddCommand(
		newBuildCmd(),
		newRenderCmd(),
		newInspectCmd(),
		newServeCmd(),
		newCacheCmd(),
		newCompletionCmd(),
	)

	return root.ExecuteContext(ctx)
}

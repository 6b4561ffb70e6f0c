package cli

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/flowsketch/flowsketch/pkg/cfg"
	graphio "github.com/flowsketch/flowsketch/pkg/io"
)

// newInspectCmd creates the inspect command, an interactive block browser.
func newInspectCmd() *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse a control-flow graph interactively",
		Long: `Inspect opens an interactive browser for a control-flow graph.
The input may be a source file (built locally first) or a graph JSON
file produced by the build command. With --summary, a non-interactive
block listing is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], summary)
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "print a block summary instead of the browser")

	return cmd
}

// runInspect loads or builds the graph, then runs the block browser.
func runInspect(ctx context.Context, input string, summary bool) error {
	g, err := loadGraph(input)
	if err != nil {
		return err
	}

	if summary {
		printSummary(g)
		return nil
	}

	model := NewBlockListModel(g)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// printSummary writes a one-line-per-block listing with outgoing edges.
func printSummary(g cfg.Graph) {
	fmt.Println(StyleTitle.Render("Control-Flow Graph"))
	printStats(len(g.Blocks), len(g.Edges), false)

	for _, blk := range g.Blocks {
		line := fmt.Sprintf("#%-3d %-10s %s", blk.ID, blk.Kind, summarize(blk))
		fmt.Println("  " + blockStyle(blk.Kind).Render(line))
		for _, e := range g.Outgoing(blk.ID) {
			label := e.Label
			if label == "" {
				label = "next"
			}
			printDetail("%s #%d [%s]", iconArrow, e.To, label)
		}
	}
}

// loadGraph returns the graph for input: .json files are imported
// directly, anything else is treated as source text and built locally.
func loadGraph(input string) (cfg.Graph, error) {
	if filepath.Ext(input) == ".json" {
		return graphio.ImportJSON(input)
	}
	source, err := readSource(input)
	if err != nil {
		return cfg.Graph{}, err
	}
	return cfg.Build(source), nil
}

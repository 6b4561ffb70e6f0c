// Package dot serializes control-flow graphs to Graphviz DOT and renders
// the result to SVG or PNG using the embedded Graphviz engine.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/flowsketch/flowsketch/pkg/cfg"
)

// shapes maps block kinds to Graphviz node shapes. Decisions render as
// diamonds, the synthetic entry and exit markers as ellipses, and plain
// statement blocks as boxes.
var shapes = map[cfg.Kind]string{
	cfg.KindEntry:     "ellipse",
	cfg.KindExit:      "ellipse",
	cfg.KindDecision:  "diamond",
	cfg.KindStatement: "box",
}

// Marshal renders a graph as DOT text. Node declarations appear in block
// creation order and edge declarations in derivation order, so identical
// graphs always serialize identically. A node's display text is its label
// when set, otherwise its source lines joined with a line-break marker.
// Edge declarations carry a label attribute only when the edge is a
// True/False branch; the color attribute is always present.
func Marshal(g cfg.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph CFG {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [fontsize=12];\n")
	buf.WriteString("\n")

	for _, b := range g.Blocks {
		fmt.Fprintf(&buf, "  %d [shape=%s, label=%q];\n", b.ID, shapeFor(b.Kind), b.DisplayText())
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := []string{}
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		}
		attrs = append(attrs, fmt.Sprintf("color=%s", e.Color))
		fmt.Fprintf(&buf, "  %d -> %d [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func shapeFor(k cfg.Kind) string {
	if s, ok := shapes[k]; ok {
		return s
	}
	return "box"
}

// RenderSVG renders DOT text to SVG bytes using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders DOT text to PNG bytes using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv := graphviz.New()
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

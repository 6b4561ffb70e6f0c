package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/flowsketch/flowsketch/pkg/cfg"
	"github.com/flowsketch/flowsketch/pkg/dot"
	graphio "github.com/flowsketch/flowsketch/pkg/io"
)

// Render generates output artifacts in the requested formats.
//
// The DOT text is produced once and shared by the svg and png formats,
// so requesting several formats does not repeat the serialization.
func Render(ctx context.Context, g *cfg.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	dotText := dot.Marshal(*g)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dotText)
		case FormatSVG:
			data, err = dot.RenderSVG(ctx, dotText)
		case FormatPNG:
			data, err = dot.RenderPNG(ctx, dotText)
		case FormatJSON:
			var buf bytes.Buffer
			if err = graphio.WriteJSON(*g, &buf); err == nil {
				data = buf.Bytes()
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flowsketch/flowsketch/pkg/cfg"
)

// ReadJSON decodes a JSON control-flow graph from r.
//
// The input must be a JSON object with "blocks" and "edges" arrays:
//
//	{
//	  "blocks": [{"id": 0, "kind": "entry", "label": "START"}],
//	  "edges": [{"from": 0, "to": 2, "color": "gray"}]
//	}
//
// ReadJSON validates the structure after decoding: every edge endpoint
// must reference a declared block, and block IDs must be unique and
// strictly increasing. Missing edge colors are filled in from the edge
// label so graphs written by third-party producers normalize cleanly.
func ReadJSON(r io.Reader) (cfg.Graph, error) {
	var g cfg.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return cfg.Graph{}, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[int]bool, len(g.Blocks))
	lastID := -1
	for _, b := range g.Blocks {
		if seen[b.ID] {
			return cfg.Graph{}, fmt.Errorf("duplicate block id %d", b.ID)
		}
		if b.ID <= lastID {
			return cfg.Graph{}, fmt.Errorf("block id %d out of order", b.ID)
		}
		seen[b.ID] = true
		lastID = b.ID
	}

	for i, e := range g.Edges {
		if !seen[e.From] {
			return cfg.Graph{}, fmt.Errorf("edge %d->%d: unknown source block", e.From, e.To)
		}
		if !seen[e.To] {
			return cfg.Graph{}, fmt.Errorf("edge %d->%d: unknown target block", e.From, e.To)
		}
		if e.Color == "" {
			g.Edges[i].Color = cfg.ColorFor(e.Label)
		}
	}

	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// Errors wrap the underlying cause with the file path for context and
// include the same validation failures as [ReadJSON].
func ImportJSON(path string) (cfg.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return cfg.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flowsketch/flowsketch/pkg/cfg"
)

// WriteJSON encodes a control-flow graph as indented JSON and writes it
// to w. The output preserves block order and edge derivation order and
// can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(g cfg.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g cfg.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

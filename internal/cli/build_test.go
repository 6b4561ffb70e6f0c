package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-", "stdin"},
		{"main.c", "main.c"},
		{" main.c ", "main.c"},
	}

	for _, tt := range tests {
		if got := displayName(tt.input); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRunBuild(t *testing.T) {
	withConfigHome(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "main.c")
	source := "int x = 1;\nif (x > 0) {\nx = 2;\n}\nreturn x;"
	if err := os.WriteFile(src, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "graph.json")

	opts := buildOpts{output: out, noCache: true}
	if err := runBuild(context.Background(), src, &opts); err != nil {
		t.Fatalf("runBuild() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var graph struct {
		Blocks []json.RawMessage `json:"blocks"`
		Edges  []json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal(data, &graph); err != nil {
		t.Fatalf("output is not valid graph JSON: %v", err)
	}
	if len(graph.Blocks) == 0 {
		t.Error("output graph has no blocks")
	}
	if len(graph.Edges) == 0 {
		t.Error("output graph has no edges")
	}
}

func TestRunBuildMissingFile(t *testing.T) {
	withConfigHome(t)

	opts := buildOpts{noCache: true}
	if err := runBuild(context.Background(), filepath.Join(t.TempDir(), "missing.c"), &opts); err == nil {
		t.Error("runBuild() on missing file should return error")
	}
}

package pipeline

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flowsketch/flowsketch/pkg/cache"
	"github.com/flowsketch/flowsketch/pkg/cfg"
	"github.com/flowsketch/flowsketch/pkg/httputil"
	graphio "github.com/flowsketch/flowsketch/pkg/io"
)

const testSource = `void check(int x) {
    int y = 0;
    if (x > 0) {
        y = 1;
    }
    return y;
}`

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"Valid", Options{Source: testSource}, false},
		{"EmptySource", Options{}, false},
		{"WhitespaceSource", Options{Source: "  \n "}, false},
		{"RemoteWithoutEndpoint", Options{Source: testSource, Remote: true}, true},
		{"RemoteWithEndpoint", Options{Source: testSource, Remote: true, Endpoint: "https://example.com"}, false},
		{"BadFormat", Options{Source: testSource, Formats: []string{"pdf"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Source: testSource}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatDOT {
		t.Errorf("got formats %v, want [dot]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("logger default not applied")
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Source:  testSource,
		Formats: []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Graph == nil {
		t.Fatal("result has no graph")
	}
	if result.Stats.BlockCount != len(result.Graph.Blocks) {
		t.Errorf("BlockCount = %d, want %d", result.Stats.BlockCount, len(result.Graph.Blocks))
	}
	if result.GraphHash == "" {
		t.Error("graph hash not computed")
	}

	dotArtifact, ok := result.Artifacts[FormatDOT]
	if !ok {
		t.Fatal("missing dot artifact")
	}
	if !strings.HasPrefix(string(dotArtifact), "digraph") {
		t.Errorf("dot artifact does not start with digraph: %s", dotArtifact[:20])
	}

	jsonArtifact, ok := result.Artifacts[FormatJSON]
	if !ok {
		t.Fatal("missing json artifact")
	}
	g, err := graphio.ReadJSON(bytes.NewReader(jsonArtifact))
	if err != nil {
		t.Fatalf("json artifact does not parse: %v", err)
	}
	if len(g.Blocks) != len(result.Graph.Blocks) {
		t.Errorf("json artifact has %d blocks, want %d", len(g.Blocks), len(result.Graph.Blocks))
	}
}

func TestExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{Source: testSource, Formats: []string{FormatDOT}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheInfo.BuildHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit cache")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.BuildHit {
		t.Error("second run should hit build cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit render cache")
	}
	if !bytes.Equal(first.Artifacts[FormatDOT], second.Artifacts[FormatDOT]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Refresh bypasses the build cache
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("third Execute() error: %v", err)
	}
	if third.CacheInfo.BuildHit {
		t.Error("refresh run should not hit build cache")
	}
}

func TestExecuteRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"blocks": [
				{"id": 0, "kind": "entry", "label": "START"},
				{"id": 1, "kind": "statement", "lines": ["int y = 0;"]},
				{"id": 2, "kind": "exit", "label": "EXIT"}
			],
			"edges": [
				{"source": 0, "target": 1},
				{"source": 1, "target": 2}
			]
		}`))
	}))
	defer srv.Close()

	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Source:   testSource,
		Remote:   true,
		Endpoint: srv.URL,
		Formats:  []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(result.Graph.Blocks) != 3 {
		t.Errorf("got %d blocks, want 3", len(result.Graph.Blocks))
	}
	// source/target endpoints arrive normalized to from/to
	if result.Graph.Edges[0].From != 0 || result.Graph.Edges[0].To != 1 {
		t.Errorf("got edge %d -> %d, want 0 -> 1", result.Graph.Edges[0].From, result.Graph.Edges[0].To)
	}
}

func TestExecuteEmptySource(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	// Empty source is legal input and builds the minimal graph:
	// entry and exit joined by a single unconditional edge.
	result, err := runner.Execute(context.Background(), Options{Source: ""})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(result.Graph.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(result.Graph.Blocks))
	}
	if result.Graph.Blocks[0].Kind != cfg.KindEntry {
		t.Errorf("got first block kind %q, want entry", result.Graph.Blocks[0].Kind)
	}
	if result.Graph.Blocks[1].Kind != cfg.KindExit {
		t.Errorf("got last block kind %q, want exit", result.Graph.Blocks[1].Kind)
	}
	if len(result.Graph.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(result.Graph.Edges))
	}
	if e := result.Graph.Edges[0]; e.Label != "" {
		t.Errorf("got edge label %q, want unconditional", e.Label)
	}
}

func TestExecuteRemoteResponseCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{
			"blocks": [
				{"id": 0, "kind": "entry", "label": "START"},
				{"id": 1, "kind": "exit", "label": "EXIT"}
			],
			"edges": [{"from": 0, "to": 1}]
		}`))
	}))
	defer srv.Close()

	rc, err := httputil.NewCache(t.TempDir(), cache.TTLRemote)
	if err != nil {
		t.Fatalf("NewCache error: %v", err)
	}

	// NullCache runner, so only the response cache can absorb repeats.
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := Options{
		Source:      testSource,
		Remote:      true,
		Endpoint:    srv.URL,
		Formats:     []string{FormatDOT},
		RemoteCache: rc,
	}
	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("remote endpoint called %d times, want 1", calls)
	}

	// Refresh must reach the endpoint again instead of serving the
	// cached response.
	opts.Refresh = true
	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatalf("refresh Execute() error: %v", err)
	}
	if calls != 2 {
		t.Errorf("remote endpoint called %d times after refresh, want 2", calls)
	}
}

func TestRunnerBuildDeterminism(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := Options{Source: testSource}
	g1, err := runner.Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	g2, err := runner.Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	d1, _ := marshalGraph(g1)
	d2, _ := marshalGraph(g2)
	if !bytes.Equal(d1, d2) {
		t.Error("identical input should produce identical graphs")
	}
}

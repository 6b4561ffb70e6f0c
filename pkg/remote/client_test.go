package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flowsketch/flowsketch/pkg/errors"
	"github.com/flowsketch/flowsketch/pkg/httputil"
)

const testSource = "int x = 1;"

func validPayload() Payload {
	return Payload{
		Blocks: []PayloadBlock{
			{ID: 0, Kind: "entry", Label: "START"},
			{ID: 1, Kind: "statement", Lines: []string{testSource}},
			{ID: 2, Kind: "exit", Label: "EXIT"},
		},
		Edges: []PayloadEdge{
			{Source: intp(0), Target: intp(1)},
			{Source: intp(1), Target: intp(2)},
		},
	}
}

func TestClientBuild(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("got method %s, want POST", r.Method)
		}
		var req buildRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Source != testSource {
			t.Errorf("got source %q, want %q", req.Source, testSource)
		}
		json.NewEncoder(w).Encode(validPayload())
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	g, err := client.Build(context.Background(), testSource)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(g.Blocks) != 3 {
		t.Errorf("got %d blocks, want 3", len(g.Blocks))
	}
	// source/target endpoints arrive normalized
	if g.Edges[0].From != 0 || g.Edges[0].To != 1 {
		t.Errorf("got edge %d -> %d, want 0 -> 1", g.Edges[0].From, g.Edges[0].To)
	}
}

func TestClientBuildCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(validPayload())
	}))
	defer srv.Close()

	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache error: %v", err)
	}

	client := NewClient(srv.URL, cache)
	if _, err := client.Build(context.Background(), testSource); err != nil {
		t.Fatalf("first Build() error: %v", err)
	}
	if _, err := client.Build(context.Background(), testSource); err != nil {
		t.Fatalf("second Build() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("got %d requests, want 1 (second build should hit cache)", calls)
	}
}

func TestClientBuildRetriesServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(validPayload())
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	if _, err := client.Build(context.Background(), testSource); err != nil {
		t.Fatalf("Build() should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("got %d requests, want 2", calls)
	}
}

func TestClientBuildTerminalStatus(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.Build(context.Background(), testSource)
	if err == nil {
		t.Fatal("Build() should fail on 400")
	}
	if calls != 1 {
		t.Errorf("got %d requests, want 1 (4xx must not be retried)", calls)
	}
	if !errors.Is(err, errors.ErrCodeRemote) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeRemote)
	}
}

func TestClientBuildMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"blocks":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.Build(context.Background(), testSource)
	if !errors.Is(err, errors.ErrCodeRemotePayload) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeRemotePayload)
	}
}

func TestClientBuildInvalidEndpoint(t *testing.T) {
	client := NewClient("ftp://example.com", nil)
	if _, err := client.Build(context.Background(), testSource); err == nil {
		t.Fatal("Build() should reject non-http endpoint")
	}
}

func TestClientBuildRejectsNullBytes(t *testing.T) {
	client := NewClient("https://example.com", nil)
	_, err := client.Build(context.Background(), "int x;\x00")
	if !errors.Is(err, errors.ErrCodeInvalidSource) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSource)
	}
}

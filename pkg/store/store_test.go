package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flowsketch/flowsketch/pkg/cfg"
)

func testGraph() cfg.Graph {
	return cfg.Build("int x = 1;\nreturn x;")
}

func TestNewRecord(t *testing.T) {
	g := testGraph()
	rec := NewRecord("int x = 1;", g, "abc123")

	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Errorf("record id is not a UUID: %q", rec.ID)
	}
	if rec.GraphHash != "abc123" {
		t.Errorf("got hash %q, want abc123", rec.GraphHash)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if len(rec.Graph.Blocks) != len(g.Blocks) {
		t.Error("graph not preserved")
	}

	// Distinct records get distinct ids
	other := NewRecord("int x = 1;", g, "abc123")
	if rec.ID == other.ID {
		t.Error("record ids should be unique")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rec := NewRecord("int x = 1;", testGraph(), "hash1")

	// Get before Set
	if _, err := s.Get(ctx, rec.ID); err != ErrNotFound {
		t.Errorf("Get() before Set = %v, want ErrNotFound", err)
	}

	// Round trip
	if err := s.Set(ctx, rec); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.GraphHash != rec.GraphHash {
		t.Errorf("got hash %q, want %q", got.GraphHash, rec.GraphHash)
	}
	if len(got.Graph.Blocks) != len(rec.Graph.Blocks) {
		t.Error("stored graph differs")
	}

	// Returned record is a copy; mutating it must not affect the store
	got.GraphHash = "mutated"
	again, _ := s.Get(ctx, rec.ID)
	if again.GraphHash != rec.GraphHash {
		t.Error("store should return copies")
	}

	// Delete
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); err != ErrNotFound {
		t.Errorf("Get() after Delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, rec.ID); err != ErrNotFound {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreCopyIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	src := "int x = 1;\nif (x > 0) {\nx = 2;\n}\nreturn x;"
	rec := NewRecord(src, cfg.Build(src), "hash1")
	if err := s.Set(ctx, rec); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	// Mutating the caller's record after Set must not leak into the store
	rec.Graph.Blocks[1].Lines[0] = "tampered"
	rec.Graph.Edges[0].Label = "tampered"
	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Graph.Blocks[1].Lines[0] == "tampered" {
		t.Error("Set should copy block lines")
	}
	if got.Graph.Edges[0].Label == "tampered" {
		t.Error("Set should copy edges")
	}

	// Mutating a returned record must not change stored state either
	got.Graph.Blocks[1].Lines[0] = "scribbled"
	got.Graph.Edges[0].To = -1
	again, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if again.Graph.Blocks[1].Lines[0] == "scribbled" {
		t.Error("Get should return copied block lines")
	}
	if again.Graph.Edges[0].To == -1 {
		t.Error("Get should return copied edges")
	}

	// Same for listed records
	records, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	records[0].Graph.Blocks[1].Lines[0] = "scribbled"
	final, _ := s.Get(ctx, rec.ID)
	if final.Graph.Blocks[1].Lines[0] == "scribbled" {
		t.Error("List should return copied records")
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		rec := NewRecord("src", testGraph(), "h")
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.Set(ctx, rec); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
	}

	records, err := s.List(ctx, 3)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Error("List() should be ordered newest first")
		}
	}

	// Zero limit returns everything
	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("got %d records, want 5", len(all))
	}
}

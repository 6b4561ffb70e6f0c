package store

import (
	"context"
	"sort"
	"sync"

	"github.com/flowsketch/flowsketch/pkg/cfg"
)

// MemoryStore is an in-memory store for development and testing.
// It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Get retrieves a record by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneRecord(rec)
	return &out, nil
}

// Set stores a record.
func (s *MemoryStore) Set(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.ID] = cloneRecord(*rec)
	return nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// List returns up to limit records, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, cloneRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// cloneRecord copies a record deeply enough that the caller and the
// store never share graph slices. Blocks carry their own Lines slice,
// so both levels are copied.
func cloneRecord(rec Record) Record {
	out := rec
	out.Graph.Blocks = make([]cfg.Block, len(rec.Graph.Blocks))
	copy(out.Graph.Blocks, rec.Graph.Blocks)
	for i := range out.Graph.Blocks {
		out.Graph.Blocks[i].Lines = append([]string(nil), rec.Graph.Blocks[i].Lines...)
	}
	out.Graph.Edges = append([]cfg.Edge(nil), rec.Graph.Edges...)
	return out
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

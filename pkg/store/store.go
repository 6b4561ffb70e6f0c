// Package store provides persistence for built graphs.
//
// This package defines an interface for graph storage with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
//
// # Architecture
//
// A stored graph is wrapped in a [Record] carrying its id, the source
// text it was built from, the content hash, and the creation time. The
// Store interface supports:
//   - Get/Set/Delete operations
//   - Listing recent records
//
// # Usage
//
// Create a store:
//
//	// Development
//	store := store.NewMemoryStore()
//
//	// Server
//	store, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "flowsketch")
//
// Persist a build:
//
//	rec := store.NewRecord(source, graph, hash)
//	if err := store.Set(ctx, rec); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/flowsketch/flowsketch/pkg/cfg"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Record wraps a stored graph with its metadata.
type Record struct {
	ID        string    `bson:"_id" json:"id"`
	Source    string    `bson:"source" json:"source"`
	GraphHash string    `bson:"graph_hash" json:"graph_hash"`
	Graph     cfg.Graph `bson:"graph" json:"graph"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Store is the interface for graph storage backends.
type Store interface {
	// Get retrieves a record by id.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, id string) (*Record, error)

	// Set stores a record, replacing any existing record with the same id.
	Set(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting a missing record returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}

// NewRecord creates a record for a built graph with a fresh id.
func NewRecord(source string, graph cfg.Graph, hash string) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Source:    source,
		GraphHash: hash,
		Graph:     graph,
		CreatedAt: time.Now().UTC(),
	}
}

// Package storage provides the storage backend interface for Chassis.
//
// It defines the StorageBackend protocol that all storage implementations
// must satisfy, along with the record types stored for indexed documents
// and their frames.
package storage

import (
	"context"
)

// SearchResult represents a frame search result from the storage backend.
type SearchResult struct {
	// FrameID is the ID of the matching frame record.
	FrameID string

	// Score is the relevance score (higher is better).
	Score float64

	// Name is the frame name.
	Name string

	// Model is the scoped name of the owning model.
	Model string

	// DocPath is the path of the owning document.
	DocPath string

	// Kind is the frame kind: model, link, joint or frame.
	Kind string
}

// StorageBackend defines the interface for storage implementations.
//
// Implementations must be thread-safe and support concurrent access.
type StorageBackend interface {
	// Lifecycle methods

	// Initialize opens or creates the storage backend at the given path.
	// If readOnly is true, the backend is opened in read-only mode.
	Initialize(path string, readOnly bool) error

	// Close releases all resources held by the backend.
	Close() error

	// Document operations

	// PutDocument stores a document record with its frame records,
	// replacing any previous state for the same path. raw is the
	// document body to keep alongside the record; nil skips raw storage.
	PutDocument(ctx context.Context, doc *DocumentRecord, frames []FrameRecord, raw []byte) error

	// RemoveDocument deletes a document and everything stored under it.
	// Returns the number of frame records removed.
	RemoveDocument(ctx context.Context, path string) (int, error)

	// GetDocument returns a document record by path, or nil if not found.
	GetDocument(ctx context.Context, path string) (*DocumentRecord, error)

	// ListDocuments returns all document records ordered by path.
	ListDocuments(ctx context.Context) ([]*DocumentRecord, error)

	// Frame operations

	// GetFrame returns a single frame record by ID, or nil if not found.
	GetFrame(ctx context.Context, frameID string) (*FrameRecord, error)

	// FramesByDocument returns all frame records of a document.
	FramesByDocument(ctx context.Context, path string) ([]*FrameRecord, error)

	// RawDocument returns the stored document body, or nil when the
	// document was stored without one.
	RawDocument(ctx context.Context, path string) ([]byte, error)

	// Search

	// Search performs full-text search over frame and model names.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// Maintenance

	// RebuildSearchIndex drops and recreates the full-text search index
	// from the stored frame records.
	RebuildSearchIndex(ctx context.Context) error

	// DocumentCount returns the number of stored documents.
	DocumentCount() int

	// FrameCount returns the number of stored frame records.
	FrameCount() int
}

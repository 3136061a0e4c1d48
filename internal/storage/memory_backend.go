// Package storage provides the storage backend for Chassis.
package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryBackend is an in-memory implementation of StorageBackend for testing.
type MemoryBackend struct {
	mu            sync.RWMutex
	docs          map[string]*DocumentRecord
	frames        map[string]*FrameRecord
	docFrames     map[string][]string
	raw           map[string][]byte
	indexed       bool
	searchRebuilt bool
}

// NewMemoryBackend creates a new in-memory storage backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		docs:      make(map[string]*DocumentRecord),
		frames:    make(map[string]*FrameRecord),
		docFrames: make(map[string][]string),
		raw:       make(map[string][]byte),
	}
}

// Initialize implements StorageBackend.
func (m *MemoryBackend) Initialize(path string, readOnly bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexed = true
	return nil
}

// Close implements StorageBackend.
func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = nil
	m.frames = nil
	m.docFrames = nil
	m.raw = nil
	return nil
}

// PutDocument implements StorageBackend.
func (m *MemoryBackend) PutDocument(ctx context.Context, doc *DocumentRecord, frames []FrameRecord, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeLocked(doc.Path)

	m.docs[doc.Path] = doc
	ids := make([]string, 0, len(frames))
	for i := range frames {
		frame := frames[i]
		m.frames[frame.ID] = &frame
		ids = append(ids, frame.ID)
	}
	m.docFrames[doc.Path] = ids
	if raw != nil {
		m.raw[doc.Path] = raw
	}
	return nil
}

// RemoveDocument implements StorageBackend.
func (m *MemoryBackend) RemoveDocument(ctx context.Context, path string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(path), nil
}

func (m *MemoryBackend) removeLocked(path string) int {
	ids := m.docFrames[path]
	for _, id := range ids {
		delete(m.frames, id)
	}
	delete(m.docFrames, path)
	delete(m.docs, path)
	delete(m.raw, path)
	return len(ids)
}

// GetDocument implements StorageBackend.
func (m *MemoryBackend) GetDocument(ctx context.Context, path string) (*DocumentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.docs[path], nil
}

// ListDocuments implements StorageBackend.
func (m *MemoryBackend) ListDocuments(ctx context.Context) ([]*DocumentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*DocumentRecord, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// GetFrame implements StorageBackend.
func (m *MemoryBackend) GetFrame(ctx context.Context, frameID string) (*FrameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.frames[frameID], nil
}

// FramesByDocument implements StorageBackend.
func (m *MemoryBackend) FramesByDocument(ctx context.Context, path string) ([]*FrameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var frames []*FrameRecord
	for _, id := range m.docFrames[path] {
		if frame, ok := m.frames[id]; ok {
			frames = append(frames, frame)
		}
	}
	return frames, nil
}

// RawDocument implements StorageBackend.
func (m *MemoryBackend) RawDocument(ctx context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.raw[path], nil
}

// Search implements StorageBackend with naive substring matching.
func (m *MemoryBackend) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	query = strings.ToLower(query)
	var results []SearchResult
	for _, frame := range m.frames {
		if query != "" &&
			!strings.Contains(strings.ToLower(frame.Name), query) &&
			!strings.Contains(strings.ToLower(frame.Model), query) {
			continue
		}
		results = append(results, SearchResult{
			FrameID: frame.ID,
			Score:   1.0,
			Name:    frame.Name,
			Model:   frame.Model,
			DocPath: frame.DocPath,
			Kind:    frame.Kind,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// RebuildSearchIndex implements StorageBackend.
func (m *MemoryBackend) RebuildSearchIndex(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchRebuilt = true
	return nil
}

// IsIndexed returns true if the backend has been initialized.
func (m *MemoryBackend) IsIndexed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexed
}

// SearchIndexRebuilt returns true if RebuildSearchIndex has been called.
func (m *MemoryBackend) SearchIndexRebuilt() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.searchRebuilt
}

// DocumentCount returns the number of stored documents.
func (m *MemoryBackend) DocumentCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// FrameCount returns the number of stored frame records.
func (m *MemoryBackend) FrameCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.frames)
}

// Package storage provides the storage backend for Chassis.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"
)

// Key prefixes for different data types
const (
	prefixDoc       = "doc:"     // document record by path
	prefixFrame     = "frm:"     // frame record by frame ID
	prefixDocFrames = "idx:doc:" // document -> frame ID index
	prefixRaw       = "raw:"     // zstd-compressed document body by path
)

// BadgerBackend is a BadgerDB-backed storage implementation.
type BadgerBackend struct {
	db            *badger.DB
	initialized   bool
	mu            sync.RWMutex
	documentCount int
	frameCount    int
	fts           *FTSIndex
}

// NewBadgerBackend creates a new BadgerDB backend.
func NewBadgerBackend() *BadgerBackend {
	return &BadgerBackend{}
}

// Initialize opens or creates the BadgerDB database at the given path.
func (b *BadgerBackend) Initialize(path string, readOnly bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	opts := badger.DefaultOptions(path).
		WithNumCompactors(2).
		WithNumMemtables(5).
		WithLoggingLevel(badger.ERROR) // Suppress INFO/WARNING logs

	if readOnly {
		opts = opts.WithReadOnly(true)
	}

	var err error
	b.db, err = badger.Open(opts)
	if err != nil {
		return fmt.Errorf("opening badger DB: %w", err)
	}

	b.fts = NewFTSIndex(b.db)
	b.initialized = true

	// Recover counts from the database
	b.recountFromDB()

	return nil
}

// recountFromDB rebuilds the document and frame counts from the database.
func (b *BadgerBackend) recountFromDB() {
	b.documentCount = 0
	b.frameCount = 0

	txn := b.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefixDoc)
	it := txn.NewIterator(opts)
	for it.Rewind(); it.Valid(); it.Next() {
		b.documentCount++
	}
	it.Close()

	opts.Prefix = []byte(prefixFrame)
	it = txn.NewIterator(opts)
	defer it.Close()
	for it.Rewind(); it.Valid(); it.Next() {
		b.frameCount++
	}
}

// Close releases all resources held by the backend.
func (b *BadgerBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil
	}

	err := b.db.Close()
	b.db = nil
	b.fts = nil
	b.initialized = false
	return err
}

// PutDocument stores a document record with its frame records, replacing
// any previous state for the same path.
func (b *BadgerBackend) PutDocument(ctx context.Context, doc *DocumentRecord, frames []FrameRecord, raw []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	txn := b.db.NewTransaction(true)
	defer txn.Discard()

	existed, removed, err := b.removeDocumentTxn(txn, doc.Path)
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	if err := txn.Set(b.docKey(doc.Path), data); err != nil {
		return fmt.Errorf("setting document: %w", err)
	}

	for i := range frames {
		frame := &frames[i]
		data, err := json.Marshal(frame)
		if err != nil {
			return fmt.Errorf("marshaling frame: %w", err)
		}
		if err := txn.Set(b.frameKey(frame.ID), data); err != nil {
			return fmt.Errorf("setting frame: %w", err)
		}
		if err := txn.Set(b.docFrameKey(doc.Path, frame.ID), []byte(frame.ID)); err != nil {
			return fmt.Errorf("setting frame index: %w", err)
		}
		if err := b.fts.indexFrame(txn, frame); err != nil {
			return err
		}
	}

	if raw != nil {
		compressed, err := compressRaw(raw)
		if err != nil {
			return err
		}
		if err := txn.Set(b.rawKey(doc.Path), compressed); err != nil {
			return fmt.Errorf("setting raw document: %w", err)
		}
	}

	if err := txn.Commit(); err != nil {
		return err
	}

	if !existed {
		b.documentCount++
	}
	b.frameCount += len(frames) - removed
	return nil
}

// RemoveDocument deletes a document and everything stored under it.
func (b *BadgerBackend) RemoveDocument(ctx context.Context, path string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	txn := b.db.NewTransaction(true)
	defer txn.Discard()

	existed, removed, err := b.removeDocumentTxn(txn, path)
	if err != nil {
		return 0, err
	}
	if err := txn.Commit(); err != nil {
		return 0, err
	}

	if existed {
		b.documentCount--
	}
	b.frameCount -= removed
	return removed, nil
}

// removeDocumentTxn deletes a document, its frames, index entries, search
// tokens and raw body within an open transaction. It reports whether the
// document record existed and how many frames were removed.
func (b *BadgerBackend) removeDocumentTxn(txn *badger.Txn, path string) (bool, int, error) {
	existed := true
	if _, err := txn.Get(b.docKey(path)); err == badger.ErrKeyNotFound {
		existed = false
	} else if err != nil {
		return false, 0, fmt.Errorf("getting document: %w", err)
	}

	// Collect first, delete after: the iterator must not observe its own
	// deletions.
	var indexKeys [][]byte
	var frameIDs []string

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefixDocFrames + path + ":")
	it := txn.NewIterator(opts)
	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		indexKeys = append(indexKeys, item.KeyCopy(nil))
		if err := item.Value(func(val []byte) error {
			frameIDs = append(frameIDs, string(val))
			return nil
		}); err != nil {
			it.Close()
			return existed, 0, fmt.Errorf("reading frame index: %w", err)
		}
	}
	it.Close()

	for _, id := range frameIDs {
		if err := txn.Delete(b.frameKey(id)); err != nil {
			return existed, 0, fmt.Errorf("deleting frame: %w", err)
		}
		if err := b.fts.removeFrame(txn, id); err != nil {
			return existed, 0, err
		}
	}
	for _, key := range indexKeys {
		if err := txn.Delete(key); err != nil {
			return existed, 0, fmt.Errorf("deleting frame index: %w", err)
		}
	}

	if err := txn.Delete(b.rawKey(path)); err != nil {
		return existed, 0, fmt.Errorf("deleting raw document: %w", err)
	}
	if existed {
		if err := txn.Delete(b.docKey(path)); err != nil {
			return existed, 0, fmt.Errorf("deleting document: %w", err)
		}
	}

	return existed, len(frameIDs), nil
}

// GetDocument returns a document record by path, or nil if not found.
func (b *BadgerBackend) GetDocument(ctx context.Context, path string) (*DocumentRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	txn := b.db.NewTransaction(false)
	defer txn.Discard()

	item, err := txn.Get(b.docKey(path))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	var doc DocumentRecord
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &doc)
	}); err != nil {
		return nil, fmt.Errorf("unmarshaling document: %w", err)
	}

	return &doc, nil
}

// ListDocuments returns all document records. Iteration is in key order,
// so the result is already sorted by path.
func (b *BadgerBackend) ListDocuments(ctx context.Context) ([]*DocumentRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var docs []*DocumentRecord

	txn := b.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefixDoc)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		var doc DocumentRecord
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		}); err != nil {
			return nil, fmt.Errorf("unmarshaling document: %w", err)
		}
		docs = append(docs, &doc)
	}

	return docs, nil
}

// GetFrame returns a single frame record by ID, or nil if not found.
func (b *BadgerBackend) GetFrame(ctx context.Context, frameID string) (*FrameRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	txn := b.db.NewTransaction(false)
	defer txn.Discard()

	return b.getFrame(txn, frameID)
}

// getFrame reads a frame record within an open transaction.
func (b *BadgerBackend) getFrame(txn *badger.Txn, frameID string) (*FrameRecord, error) {
	item, err := txn.Get(b.frameKey(frameID))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting frame: %w", err)
	}

	var frame FrameRecord
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &frame)
	}); err != nil {
		return nil, fmt.Errorf("unmarshaling frame: %w", err)
	}

	return &frame, nil
}

// FramesByDocument returns all frame records of a document.
func (b *BadgerBackend) FramesByDocument(ctx context.Context, path string) ([]*FrameRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	txn := b.db.NewTransaction(false)
	defer txn.Discard()

	var frameIDs []string
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefixDocFrames + path + ":")
	it := txn.NewIterator(opts)
	for it.Rewind(); it.Valid(); it.Next() {
		if err := it.Item().Value(func(val []byte) error {
			frameIDs = append(frameIDs, string(val))
			return nil
		}); err != nil {
			it.Close()
			return nil, fmt.Errorf("reading frame index: %w", err)
		}
	}
	it.Close()

	frames := make([]*FrameRecord, 0, len(frameIDs))
	for _, id := range frameIDs {
		frame, err := b.getFrame(txn, id)
		if err != nil {
			return nil, err
		}
		if frame != nil {
			frames = append(frames, frame)
		}
	}

	return frames, nil
}

// RawDocument returns the stored document body, decompressed.
func (b *BadgerBackend) RawDocument(ctx context.Context, path string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	txn := b.db.NewTransaction(false)
	defer txn.Discard()

	item, err := txn.Get(b.rawKey(path))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting raw document: %w", err)
	}

	var raw []byte
	if err := item.Value(func(val []byte) error {
		raw, err = decompressRaw(val)
		return err
	}); err != nil {
		return nil, err
	}

	return raw, nil
}

// Search performs full-text search over frame and model names.
func (b *BadgerBackend) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.fts == nil {
		return []SearchResult{}, nil
	}
	return b.fts.Search(query, limit)
}

// RebuildSearchIndex drops and recreates the full-text search index from
// the stored frame records.
func (b *BadgerBackend) RebuildSearchIndex(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	txn := b.db.NewTransaction(true)
	defer txn.Discard()

	if err := b.fts.dropAll(txn); err != nil {
		return err
	}

	var frames []FrameRecord
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefixFrame)
	it := txn.NewIterator(opts)
	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		var frame FrameRecord
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &frame)
		}); err != nil {
			it.Close()
			return fmt.Errorf("unmarshaling frame: %w", err)
		}
		frames = append(frames, frame)
	}
	it.Close()

	for i := range frames {
		if err := b.fts.indexFrame(txn, &frames[i]); err != nil {
			return err
		}
	}

	return txn.Commit()
}

// compressRaw compresses a document body for storage.
func compressRaw(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	encoder, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("creating zstd writer: %w", err)
	}
	if _, err := encoder.Write(data); err != nil {
		encoder.Close()
		return nil, fmt.Errorf("compressing document: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("compressing document: %w", err)
	}
	return buf.Bytes(), nil
}

// decompressRaw reverses compressRaw.
func decompressRaw(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer decoder.Close()

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompressing document: %w", err)
	}
	return raw, nil
}

// docKey returns the BadgerDB key for a document record.
func (b *BadgerBackend) docKey(path string) []byte {
	return []byte(prefixDoc + path)
}

// frameKey returns the BadgerDB key for a frame record.
func (b *BadgerBackend) frameKey(frameID string) []byte {
	return []byte(prefixFrame + frameID)
}

// docFrameKey returns the BadgerDB key indexing a frame under its document.
func (b *BadgerBackend) docFrameKey(path, frameID string) []byte {
	return []byte(prefixDocFrames + path + ":" + frameID)
}

// DocumentCount returns the number of stored documents.
func (b *BadgerBackend) DocumentCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.documentCount
}

// FrameCount returns the number of stored frame records.
func (b *BadgerBackend) FrameCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.frameCount
}

package storage

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes for FTS
const (
	prefixFTSToken = "fts:t:" // fts:t:token:frameID -> frequency
	prefixFTSMeta  = "fts:m:" // fts:m:frameID -> serialized metadata
)

// FTSIndex is a simple inverted index for full-text search over frame and
// model names.
type FTSIndex struct {
	db *badger.DB
}

// NewFTSIndex creates a new FTS index using the given BadgerDB instance.
func NewFTSIndex(db *badger.DB) *FTSIndex {
	return &FTSIndex{db: db}
}

// tokenize splits text into searchable tokens.
// Handles snake_case, camelCase, scope separators ("::") and dot notation.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	tokens := make(map[string]bool)

	// Add full text as lowercase token
	tokens[strings.ToLower(text)] = true

	// Split on common separators (_, ., -, :, space)
	parts := regexp.MustCompile(`[_\.\-:\s]+`).Split(text, -1)
	for _, part := range parts {
		if len(part) > 0 {
			tokens[strings.ToLower(part)] = true
		}
	}

	// Split camelCase: "UpperLink" -> "Upper", "Link"
	camelSplit := regexp.MustCompile(`([a-z])([A-Z])`).ReplaceAllString(text, "$1 $2")
	for _, part := range strings.Fields(camelSplit) {
		if len(part) > 0 {
			tokens[strings.ToLower(part)] = true
		}
	}

	// Split on number boundaries: "link2" -> "link", "2"
	numSplit := regexp.MustCompile(`([a-zA-Z])(\d)`).ReplaceAllString(text, "$1 $2")
	numSplit = regexp.MustCompile(`(\d)([a-zA-Z])`).ReplaceAllString(numSplit, "$1 $2")
	for _, part := range strings.Fields(numSplit) {
		if len(part) > 0 {
			tokens[strings.ToLower(part)] = true
		}
	}

	result := make([]string, 0, len(tokens))
	for token := range tokens {
		if token != "" {
			result = append(result, token)
		}
	}

	return result
}

// indexFrame adds or updates a frame in the FTS index within an open
// transaction.
func (f *FTSIndex) indexFrame(txn *badger.Txn, frame *FrameRecord) error {
	// Delete old tokens for this frame (for updates)
	if err := f.deleteFrameTokens(txn, frame.ID); err != nil {
		return err
	}

	// Tokenize searchable fields (frame name and scoped model name)
	tokens := tokenize(frame.Name + " " + frame.Model)

	// Count token frequencies
	tokenFreq := make(map[string]int)
	for _, token := range tokens {
		tokenFreq[token]++
	}

	// Store token frequencies
	for token, freq := range tokenFreq {
		key := fmt.Sprintf("%s%s:%s", prefixFTSToken, token, frame.ID)
		if err := txn.Set([]byte(key), []byte(strconv.Itoa(freq))); err != nil {
			return fmt.Errorf("setting token index: %w", err)
		}
	}

	// Store metadata for search results
	meta := map[string]any{
		"id":    frame.ID,
		"name":  frame.Name,
		"model": frame.Model,
		"path":  frame.DocPath,
		"kind":  frame.Kind,
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	metaKey := fmt.Sprintf("%s%s", prefixFTSMeta, frame.ID)
	if err := txn.Set([]byte(metaKey), metaJSON); err != nil {
		return fmt.Errorf("setting metadata: %w", err)
	}

	return nil
}

// removeFrame removes a frame from the FTS index within an open transaction.
func (f *FTSIndex) removeFrame(txn *badger.Txn, frameID string) error {
	if err := f.deleteFrameTokens(txn, frameID); err != nil {
		return err
	}

	metaKey := fmt.Sprintf("%s%s", prefixFTSMeta, frameID)
	if err := txn.Delete([]byte(metaKey)); err != nil {
		return fmt.Errorf("deleting metadata: %w", err)
	}

	return nil
}

// deleteFrameTokens removes all token indexes for a frame.
func (f *FTSIndex) deleteFrameTokens(txn *badger.Txn, frameID string) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefixFTSToken)
	it := txn.NewIterator(opts)
	defer it.Close()

	var keysToDelete [][]byte
	searchSuffix := ":" + frameID

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		if strings.HasSuffix(string(item.Key()), searchSuffix) {
			keysToDelete = append(keysToDelete, item.KeyCopy(nil))
		}
	}

	for _, key := range keysToDelete {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}

	return nil
}

// dropAll removes every token and metadata entry within an open transaction.
func (f *FTSIndex) dropAll(txn *badger.Txn) error {
	var keysToDelete [][]byte
	for _, prefix := range []string{prefixFTSToken, prefixFTSMeta} {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		for it.Rewind(); it.Valid(); it.Next() {
			keysToDelete = append(keysToDelete, it.Item().KeyCopy(nil))
		}
		it.Close()
	}

	for _, key := range keysToDelete {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}

	return nil
}

// Search performs full-text search with simple TF scoring.
func (f *FTSIndex) Search(query string, limit int) ([]SearchResult, error) {
	if f.db == nil {
		return []SearchResult{}, nil
	}

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return []SearchResult{}, nil
	}

	// Collect matching frames with scores
	frameScores := make(map[string]float64)

	txn := f.db.NewTransaction(false)
	defer txn.Discard()

	for _, token := range queryTokens {
		prefix := fmt.Sprintf("%s%s:", prefixFTSToken, token)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			// Extract frameID from key: fts:t:token:frameID
			frameID := strings.TrimPrefix(string(item.Key()), prefix)

			var freq int
			_ = item.Value(func(val []byte) error {
				freq, _ = strconv.Atoi(string(val))
				return nil
			})

			// Simple TF scoring
			frameScores[frameID] += float64(freq)
		}
		it.Close()
	}

	// Convert to results
	var results []SearchResult
	for frameID, score := range frameScores {
		if score <= 0 {
			continue
		}

		metaItem, err := txn.Get([]byte(fmt.Sprintf("%s%s", prefixFTSMeta, frameID)))
		if err != nil {
			continue // Frame metadata not found
		}

		var meta map[string]any
		_ = metaItem.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})

		results = append(results, SearchResult{
			FrameID: frameID,
			Score:   score,
			Name:    getString(meta, "name"),
			Model:   getString(meta, "model"),
			DocPath: getString(meta, "path"),
			Kind:    getString(meta, "kind"),
		})
	}

	// Sort by score descending, ties by name for stable output
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Name < results[j].Name
	})

	// Apply limit
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// getString safely extracts a string from a map.
func getString(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IndexSize returns the number of indexed tokens (for debugging/testing).
func (f *FTSIndex) IndexSize() (int, error) {
	if f.db == nil {
		return 0, nil
	}

	count := 0
	txn := f.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefixFTSToken)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		count++
	}

	return count, nil
}

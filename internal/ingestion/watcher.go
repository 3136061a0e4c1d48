package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/Benny93/chassis/internal/config"
	"github.com/Benny93/chassis/internal/storage"
)

// batchInterval is how long the watcher waits for file events to settle
// before re-indexing the accumulated batch.
const batchInterval = 2 * time.Second

// WatchWorkspace monitors a workspace for document changes and re-indexes
// automatically. Blocks until the context is cancelled.
func WatchWorkspace(ctx context.Context, rootPath string, store storage.StorageBackend, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}

	matcher, err := loadGitignoreMatcher(rootPath)
	if err != nil {
		matcher = nil // Continue without gitignore
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the entire workspace recursively
	err = filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if shouldSkipDir(info.Name(), path, rootPath, matcher) {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("setting up watcher: %w", err)
	}

	// Batch changed documents for efficient re-indexing
	changedFiles := make(map[string]bool)
	batchTimer := time.NewTimer(batchInterval)
	batchTimer.Stop() // Don't start yet

	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", rootPath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !shouldWatchFile(event.Name, rootPath, matcher, cfg) {
				continue
			}

			relPath, err := filepath.Rel(rootPath, event.Name)
			if err != nil {
				continue
			}

			changedFiles[relPath] = true
			batchTimer.Reset(batchInterval)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-batchTimer.C:
			if len(changedFiles) > 0 {
				if err := processChangedFiles(ctx, rootPath, store, cfg, changedFiles); err != nil {
					fmt.Fprintf(os.Stderr, "Error processing changes: %v\n", err)
				}
				changedFiles = make(map[string]bool)
			}
		}
	}
}

// processChangedFiles re-indexes the changed documents.
func processChangedFiles(ctx context.Context, rootPath string, store storage.StorageBackend, cfg *config.Config, changedFiles map[string]bool) error {
	if len(changedFiles) == 0 {
		return nil
	}

	fmt.Printf("Re-indexing %d changed document(s)...\n", len(changedFiles))

	entries := make([]FileEntry, 0, len(changedFiles))
	for relPath := range changedFiles {
		absPath := filepath.Join(rootPath, relPath)

		info, err := os.Stat(absPath)
		if os.IsNotExist(err) {
			// Document was deleted - remove from storage
			if _, err := store.RemoveDocument(ctx, relPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error removing deleted document %s: %v\n", relPath, err)
			} else {
				fmt.Printf("  Removed: %s\n", relPath)
			}
			continue
		}
		if err != nil {
			continue
		}
		if info.IsDir() {
			continue
		}

		content, err := os.ReadFile(absPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", relPath, err)
			continue
		}

		format := getFormat(relPath)
		if format == "" {
			continue
		}

		entries = append(entries, FileEntry{
			Path:    absPath,
			RelPath: relPath,
			Format:  format,
			Content: content,
			Digest:  storage.DigestOf(content),
		})
	}

	if len(entries) > 0 {
		count := ReindexDocuments(ctx, entries, store, cfg)
		fmt.Printf("  Re-indexed %d document(s)\n", count)
	}

	return nil
}

// ReindexDocuments re-processes the given documents, replacing their stored
// state. Returns the number of documents successfully re-indexed.
func ReindexDocuments(ctx context.Context, entries []FileEntry, store storage.StorageBackend, cfg *config.Config) int {
	if len(entries) == 0 {
		return 0
	}

	reports := ParseDocuments(entries)
	AnalyzeFrames(reports)

	count := 0
	for i := range reports {
		if err := StoreDocument(ctx, store, cfg, &reports[i]); err != nil {
			continue
		}
		count++
	}

	return count
}

// shouldWatchFile checks if a file should be watched.
func shouldWatchFile(path, rootPath string, matcher gitignore.Matcher, cfg *config.Config) bool {
	relPath, err := filepath.Rel(rootPath, path)
	if err != nil {
		return false
	}

	if matcher != nil {
		pathParts := splitPath(relPath)
		if matcher.Match(pathParts, false) {
			return false
		}
	}

	if !isSupportedFile(filepath.Base(path), cfg) {
		return false
	}

	return cfg == nil || cfg.Matches(relPath)
}

// loadGitignoreMatcher loads a gitignore matcher from the workspace root.
func loadGitignoreMatcher(rootPath string) (gitignore.Matcher, error) {
	patterns, err := loadGitignore(rootPath)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, nil
	}
	return gitignore.NewMatcher(patterns), nil
}

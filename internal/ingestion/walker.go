// Package ingestion provides the document ingestion pipeline for Chassis.
package ingestion

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/Benny93/chassis/internal/config"
	"github.com/Benny93/chassis/internal/storage"
)

// FileEntry represents a document to be processed.
type FileEntry struct {
	// Path is the absolute file path.
	Path string

	// RelPath is the path relative to the workspace root.
	RelPath string

	// Format is the detected document format.
	Format string

	// Content is the file content.
	Content []byte

	// Digest is the blake3 digest of the file content.
	Digest string

	// IsDir indicates if this is a directory.
	IsDir bool
}

// Supported file extensions and their formats.
var supportedExtensions = map[string]string{
	".sdf":   "sdf",
	".world": "world",
}

// Default patterns to ignore (in addition to .gitignore).
var defaultIgnorePatterns = []string{
	".git/",
	".chassis/",
	"build/",
	"install/",
	"log/",
	".cache/",
	".DS_Store",
	"Thumbs.db",
}

// WalkWorkspace walks the workspace and returns all supported documents.
func WalkWorkspace(rootPath string, cfg *config.Config, patterns []gitignore.Pattern) ([]FileEntry, error) {
	var entries []FileEntry

	if cfg == nil {
		cfg = config.Default()
	}

	// Combine default patterns with loaded patterns
	allPatterns := make([]gitignore.Pattern, 0, len(defaultIgnorePatterns)+len(patterns))
	for _, p := range defaultIgnorePatterns {
		allPatterns = append(allPatterns, gitignore.ParsePattern(p, nil))
	}
	allPatterns = append(allPatterns, patterns...)

	matcher := gitignore.NewMatcher(allPatterns)

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip directories we don't want to traverse
		if d.IsDir() {
			if shouldSkipDir(d.Name(), path, rootPath, matcher) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isSupportedFile(d.Name(), cfg) {
			return nil
		}

		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			return err
		}

		// Check gitignore patterns
		pathParts := splitPath(relPath)
		if matcher.Match(pathParts, false) {
			return nil
		}

		// Check workspace include/exclude globs
		if !cfg.Matches(relPath) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		entries = append(entries, FileEntry{
			Path:    path,
			RelPath: relPath,
			Format:  getFormat(d.Name()),
			Content: content,
			Digest:  storage.DigestOf(content),
			IsDir:   false,
		})

		return nil
	})

	return entries, err
}

// loadGitignore loads .gitignore patterns from the workspace root.
func loadGitignore(rootPath string) ([]gitignore.Pattern, error) {
	gitignorePath := filepath.Join(rootPath, ".gitignore")

	if _, err := os.Stat(gitignorePath); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(gitignorePath)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(content), "\n")
	var patterns []gitignore.Pattern

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}

	return patterns, nil
}

// isSupportedFile checks if a file has a supported document extension.
// World files are skipped when the workspace config disables them.
func isSupportedFile(filename string, cfg *config.Config) bool {
	format := getFormat(filename)
	if format == "" {
		return false
	}
	if format == "world" && cfg != nil && !cfg.Worlds {
		return false
	}
	return true
}

// getFormat returns the document format for a file extension.
func getFormat(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return supportedExtensions[ext]
}

// shouldSkipDir checks if a directory should be skipped.
func shouldSkipDir(name, path, rootPath string, matcher gitignore.Matcher) bool {
	// Always skip .git and the workspace store
	if name == ".git" || name == ".chassis" {
		return true
	}

	if matcher == nil {
		return false
	}

	relPath, err := filepath.Rel(rootPath, path)
	if err != nil {
		return false
	}

	pathParts := splitPath(relPath)
	return matcher.Match(pathParts, true)
}

// splitPath splits a path into its components.
func splitPath(path string) []string {
	return strings.Split(path, string(filepath.Separator))
}

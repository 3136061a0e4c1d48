package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benny93/chassis/internal/config"
	"github.com/Benny93/chassis/internal/storage"
)

const walkerModelSDF = `<sdf version="1.8"><model name="robot"><link name="base"/></model></sdf>`

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, path)
		err := os.MkdirAll(filepath.Dir(fullPath), 0o755)
		require.NoError(t, err)
		err = os.WriteFile(fullPath, []byte(content), 0o644)
		require.NoError(t, err)
	}
}

func TestWalkWorkspace(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"robot.sdf":             walkerModelSDF,
		"models/arm.sdf":        walkerModelSDF,
		"worlds/empty.world":    `<sdf version="1.8"><world name="empty"/></sdf>`,
		"README.md":             "# README",
		".gitignore":            "generated/\n*.tmp.sdf",
		"generated/out.sdf":     walkerModelSDF,
		"scratch.tmp.sdf":       walkerModelSDF,
		"build/cached.sdf":      walkerModelSDF,
		".chassis/leftover.sdf": walkerModelSDF,
	})

	relPaths := func(entries []FileEntry) []string {
		var out []string
		for _, e := range entries {
			out = append(out, filepath.ToSlash(e.RelPath))
		}
		return out
	}

	t.Run("WalkAllSupportedFiles", func(t *testing.T) {
		entries, err := WalkWorkspace(tmpDir, nil, nil)
		assert.NoError(t, err)

		paths := relPaths(entries)
		assert.Contains(t, paths, "robot.sdf")
		assert.Contains(t, paths, "models/arm.sdf")
		assert.Contains(t, paths, "worlds/empty.world")
	})

	t.Run("RespectGitignore", func(t *testing.T) {
		patterns, err := loadGitignore(tmpDir)
		require.NoError(t, err)

		entries, err := WalkWorkspace(tmpDir, nil, patterns)
		assert.NoError(t, err)

		for _, e := range entries {
			assert.NotContains(t, e.RelPath, "generated")
			assert.NotContains(t, e.RelPath, ".tmp.sdf")
		}
	})

	t.Run("DefaultIgnores", func(t *testing.T) {
		entries, err := WalkWorkspace(tmpDir, nil, nil)
		assert.NoError(t, err)

		for _, e := range entries {
			assert.NotContains(t, e.RelPath, "build")
			assert.NotContains(t, e.RelPath, ".chassis")
		}
	})

	t.Run("SkipUnsupportedExtensions", func(t *testing.T) {
		entries, err := WalkWorkspace(tmpDir, nil, nil)
		assert.NoError(t, err)

		for _, e := range entries {
			assert.False(t, strings.HasSuffix(e.RelPath, ".md"))
		}
	})

	t.Run("WorldsToggle", func(t *testing.T) {
		cfg := config.Default()
		cfg.Worlds = false

		entries, err := WalkWorkspace(tmpDir, cfg, nil)
		assert.NoError(t, err)

		for _, e := range entries {
			assert.False(t, strings.HasSuffix(e.RelPath, ".world"))
		}
	})

	t.Run("ConfigExclude", func(t *testing.T) {
		cfg := config.Default()
		cfg.Exclude = []string{"models/**"}

		entries, err := WalkWorkspace(tmpDir, cfg, nil)
		assert.NoError(t, err)

		paths := relPaths(entries)
		assert.NotContains(t, paths, "models/arm.sdf")
		assert.Contains(t, paths, "robot.sdf")
	})

	t.Run("ConfigInclude", func(t *testing.T) {
		cfg := config.Default()
		cfg.Include = []string{"worlds/**"}

		entries, err := WalkWorkspace(tmpDir, cfg, nil)
		assert.NoError(t, err)

		paths := relPaths(entries)
		assert.Contains(t, paths, "worlds/empty.world")
		assert.NotContains(t, paths, "robot.sdf")
	})

	t.Run("ComputeDigest", func(t *testing.T) {
		entries, err := WalkWorkspace(tmpDir, nil, nil)
		assert.NoError(t, err)

		for _, e := range entries {
			assert.NotEmpty(t, e.Digest)
			assert.Len(t, e.Digest, 64)
		}
	})

	t.Run("DetectFormat", func(t *testing.T) {
		entries, err := WalkWorkspace(tmpDir, nil, nil)
		assert.NoError(t, err)

		for _, e := range entries {
			if strings.HasSuffix(e.RelPath, ".sdf") {
				assert.Equal(t, "sdf", e.Format)
			}
			if strings.HasSuffix(e.RelPath, ".world") {
				assert.Equal(t, "world", e.Format)
			}
		}
	})
}

func TestLoadGitignore(t *testing.T) {
	t.Parallel()

	t.Run("NoGitignore", func(t *testing.T) {
		patterns, err := loadGitignore(t.TempDir())
		assert.NoError(t, err)
		assert.Empty(t, patterns)
	})

	t.Run("WithGitignore", func(t *testing.T) {
		tmpDir := t.TempDir()
		gitignoreContent := "*.bak\ngenerated/\n# comment\n\nout.sdf"
		err := os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte(gitignoreContent), 0o644)
		require.NoError(t, err)

		patterns, err := loadGitignore(tmpDir)
		assert.NoError(t, err)
		assert.Len(t, patterns, 3)
	})
}

func TestIsSupportedFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{"Model", "robot.sdf", true},
		{"World", "empty.world", true},
		{"UpperCase", "ROBOT.SDF", true},
		{"Markdown", "README.md", false},
		{"URDF", "robot.urdf", false},
		{"Mesh", "chassis.dae", false},
		{"NoExtension", "Makefile", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := isSupportedFile(tt.filename, config.Default())
			assert.Equal(t, tt.expected, result)
		})
	}

	t.Run("WorldsDisabled", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.Worlds = false
		assert.False(t, isSupportedFile("empty.world", cfg))
		assert.True(t, isSupportedFile("robot.sdf", cfg))
	})
}

func TestGetFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"Model", "robot.sdf", "sdf"},
		{"World", "empty.world", "world"},
		{"UpperCase", "EMPTY.WORLD", "world"},
		{"Unknown", "file.txt", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := getFormat(tt.filename)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFileEntry_DigestConsistency(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	content := walkerModelSDF
	filePath := filepath.Join(tmpDir, "robot.sdf")
	err := os.WriteFile(filePath, []byte(content), 0o644)
	require.NoError(t, err)

	entries, err := WalkWorkspace(tmpDir, nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, storage.DigestOf([]byte(content)), entries[0].Digest)
}

package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benny93/chassis/internal/config"
	"github.com/Benny93/chassis/internal/storage"
)

func TestReindexDocuments(t *testing.T) {
	t.Parallel()

	t.Run("ReindexesChangedDocuments", func(t *testing.T) {
		store := storage.NewBadgerBackend()
		tmpDir := t.TempDir()
		err := store.Initialize(filepath.Join(tmpDir, "badger"), false)
		require.NoError(t, err)
		defer store.Close()

		// Initial index
		count := ReindexDocuments(t.Context(), []FileEntry{pendulumEntry("pendulum.sdf")}, store, nil)
		require.Equal(t, 1, count)

		// Re-index with a renamed frame
		renamed := []byte(`<sdf version="1.8">
  <model name="pendulum">
    <link name="base"/>
    <link name="arm"/>
    <joint name="pivot" type="revolute">
      <parent>base</parent>
      <child>arm</child>
    </joint>
    <frame name="hook" attached_to="arm"/>
  </model>
</sdf>`)
		entries := []FileEntry{{
			RelPath: "pendulum.sdf",
			Format:  "sdf",
			Content: renamed,
			Digest:  storage.DigestOf(renamed),
		}}

		count = ReindexDocuments(t.Context(), entries, store, nil)
		assert.Equal(t, 1, count)

		frames, err := store.FramesByDocument(t.Context(), "pendulum.sdf")
		require.NoError(t, err)

		names := make([]string, 0, len(frames))
		for _, f := range frames {
			names = append(names, f.Name)
		}
		assert.Contains(t, names, "hook")
		assert.NotContains(t, names, "tip")
	})

	t.Run("EmptyEntries", func(t *testing.T) {
		store := storage.NewMemoryBackend()
		require.NoError(t, store.Initialize(t.TempDir(), false))
		defer store.Close()

		count := ReindexDocuments(t.Context(), nil, store, nil)
		assert.Equal(t, 0, count)
	})
}

func TestProcessChangedFiles(t *testing.T) {
	t.Parallel()

	t.Run("ReindexesChangedDocuments", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeTree(t, tmpDir, map[string]string{"robot.sdf": pendulumSDF})

		store := storage.NewMemoryBackend()
		require.NoError(t, store.Initialize(tmpDir, false))
		defer store.Close()

		changed := map[string]bool{"robot.sdf": true}
		err := processChangedFiles(t.Context(), tmpDir, store, config.Default(), changed)
		require.NoError(t, err)

		doc, err := store.GetDocument(t.Context(), "robot.sdf")
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, 5, doc.FrameCount)
	})

	t.Run("RemovesDeletedDocuments", func(t *testing.T) {
		tmpDir := t.TempDir()

		store := storage.NewMemoryBackend()
		require.NoError(t, store.Initialize(tmpDir, false))
		defer store.Close()

		// Store a document whose file does not exist on disk
		reports := ParseDocuments([]FileEntry{pendulumEntry("gone.sdf")})
		AnalyzeFrames(reports)
		require.NoError(t, StoreDocument(t.Context(), store, nil, &reports[0]))
		require.Equal(t, 1, store.DocumentCount())

		changed := map[string]bool{"gone.sdf": true}
		err := processChangedFiles(t.Context(), tmpDir, store, config.Default(), changed)
		require.NoError(t, err)

		assert.Equal(t, 0, store.DocumentCount())
	})

	t.Run("SkipsUnsupportedFiles", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeTree(t, tmpDir, map[string]string{"README.md": "# readme"})

		store := storage.NewMemoryBackend()
		require.NoError(t, store.Initialize(tmpDir, false))
		defer store.Close()

		changed := map[string]bool{"README.md": true}
		err := processChangedFiles(t.Context(), tmpDir, store, config.Default(), changed)
		require.NoError(t, err)

		assert.Equal(t, 0, store.DocumentCount())
	})
}

func TestWatchWorkspace(t *testing.T) {
	t.Parallel()

	t.Run("IndexesNewDocument", func(t *testing.T) {
		tmpDir := t.TempDir()

		store := storage.NewMemoryBackend()
		require.NoError(t, store.Initialize(tmpDir, false))
		defer store.Close()

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		errCh := make(chan error, 1)
		go func() {
			errCh <- WatchWorkspace(ctx, tmpDir, store, nil)
		}()

		// Give the watcher time to register the root directory
		time.Sleep(500 * time.Millisecond)

		err := os.WriteFile(filepath.Join(tmpDir, "robot.sdf"), []byte(pendulumSDF), 0o644)
		require.NoError(t, err)

		// The batch timer fires two seconds after the last event
		deadline := time.Now().Add(10 * time.Second)
		for store.DocumentCount() == 0 && time.Now().Before(deadline) {
			time.Sleep(100 * time.Millisecond)
		}

		assert.Equal(t, 1, store.DocumentCount())

		cancel()
		assert.ErrorIs(t, <-errCh, context.Canceled)
	})
}

func TestShouldWatchFile(t *testing.T) {
	t.Parallel()

	root := string(filepath.Separator) + "ws"
	cfg := config.Default()

	t.Run("SupportedDocument", func(t *testing.T) {
		assert.True(t, shouldWatchFile(filepath.Join(root, "robot.sdf"), root, nil, cfg))
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		assert.False(t, shouldWatchFile(filepath.Join(root, "README.md"), root, nil, cfg))
	})

	t.Run("IgnoredByGitignore", func(t *testing.T) {
		matcher := gitignore.NewMatcher([]gitignore.Pattern{
			gitignore.ParsePattern("generated/", nil),
		})
		assert.False(t, shouldWatchFile(filepath.Join(root, "generated", "out.sdf"), root, matcher, cfg))
		assert.True(t, shouldWatchFile(filepath.Join(root, "robot.sdf"), root, matcher, cfg))
	})

	t.Run("ExcludedByConfig", func(t *testing.T) {
		excluding := config.Default()
		excluding.Exclude = []string{"third_party/**"}
		assert.False(t, shouldWatchFile(filepath.Join(root, "third_party", "x.sdf"), root, nil, excluding))
	})

	t.Run("WorldsDisabled", func(t *testing.T) {
		noWorlds := config.Default()
		noWorlds.Worlds = false
		assert.False(t, shouldWatchFile(filepath.Join(root, "empty.world"), root, nil, noWorlds))
	})
}

func TestLoadGitignoreMatcher(t *testing.T) {
	t.Parallel()

	t.Run("NoGitignore", func(t *testing.T) {
		matcher, err := loadGitignoreMatcher(t.TempDir())
		assert.NoError(t, err)
		assert.Nil(t, matcher)
	})

	t.Run("WithGitignore", func(t *testing.T) {
		tmpDir := t.TempDir()
		err := os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte("generated/\n"), 0o644)
		require.NoError(t, err)

		matcher, err := loadGitignoreMatcher(tmpDir)
		assert.NoError(t, err)
		assert.NotNil(t, matcher)
	})
}

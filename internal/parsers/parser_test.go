package parsers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benny93/chassis/internal/sdf"
)

func TestForPath(t *testing.T) {
	t.Parallel()

	t.Run("RecognizedExtensions", func(t *testing.T) {
		for _, path := range []string{"robot.sdf", "scene.world", "UPPER.SDF", "dir/model.World"} {
			parser := ForPath(path)
			require.NotNil(t, parser, path)
			assert.Equal(t, "sdf", parser.Format())
		}
	})

	t.Run("UnrecognizedExtensions", func(t *testing.T) {
		for _, path := range []string{"readme.md", "robot.urdf", "main.go", "noext"} {
			assert.Nil(t, ForPath(path), path)
		}
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("LoadsDocument", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "robot.sdf")
		content := `<sdf version="1.8"><model name="robot"><link name="base"/></model></sdf>`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		root, errs := LoadFile(path)
		require.NotNil(t, root)
		assert.Empty(t, errs)
		require.Len(t, root.Models, 1)
		assert.Equal(t, "robot", root.Models[0].Name)
	})

	t.Run("UnrecognizedExtension", func(t *testing.T) {
		root, errs := LoadFile("notes.txt")
		assert.Nil(t, root)
		require.Len(t, errs, 1)
		assert.Equal(t, sdf.CodeFileRead, errs[0].Code)
		assert.Equal(t, "Unrecognized document extension for file[notes.txt].", errs[0].Message)
	})

	t.Run("MissingFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gone.sdf")
		root, errs := LoadFile(path)
		assert.Nil(t, root)
		require.Len(t, errs, 1)
		assert.Equal(t, sdf.CodeFileRead, errs[0].Code)
		assert.Contains(t, errs[0].Message, "Unable to read file[")
	})
}

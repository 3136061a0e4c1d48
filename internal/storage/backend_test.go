package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both implementations must satisfy the backend protocol.
var (
	_ StorageBackend = (*BadgerBackend)(nil)
	_ StorageBackend = (*MemoryBackend)(nil)
)

func TestMemoryBackend_Initialize(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()
		backend := NewMemoryBackend()
		err := backend.Initialize("/tmp/test", false)

		assert.NoError(t, err)
		assert.True(t, backend.IsIndexed())
	})

	t.Run("ReadOnly", func(t *testing.T) {
		t.Parallel()
		backend := NewMemoryBackend()
		err := backend.Initialize("/tmp/test", true)

		assert.NoError(t, err)
		assert.True(t, backend.IsIndexed())
	})
}

func TestMemoryBackend_Close(t *testing.T) {
	t.Parallel()

	backend := NewMemoryBackend()
	_ = backend.Initialize("/tmp/test", false)

	err := backend.Close()

	assert.NoError(t, err)
}

func TestMemoryBackend_PutDocument(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := NewMemoryBackend()
	_ = backend.Initialize("/tmp/test", false)

	doc, frames := sampleDocument("models/arm.sdf")
	err := backend.PutDocument(ctx, doc, frames, []byte("<sdf/>"))
	require.NoError(t, err)

	assert.Equal(t, 1, backend.DocumentCount())
	assert.Equal(t, 5, backend.FrameCount())

	retrieved, err := backend.GetDocument(ctx, doc.Path)
	require.NoError(t, err)
	require.NotNil(t, retrieved)
	assert.Equal(t, doc.Digest, retrieved.Digest)

	raw, err := backend.RawDocument(ctx, doc.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("<sdf/>"), raw)

	stored, err := backend.FramesByDocument(ctx, doc.Path)
	require.NoError(t, err)
	assert.Len(t, stored, 5)
}

func TestMemoryBackend_ReplaceDocument(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := NewMemoryBackend()
	_ = backend.Initialize("/tmp/test", false)

	doc, frames := sampleDocument("models/arm.sdf")
	require.NoError(t, backend.PutDocument(ctx, doc, frames, nil))

	doc2, frames2 := sampleDocument("models/arm.sdf")
	frames2 = frames2[:3]
	require.NoError(t, backend.PutDocument(ctx, doc2, frames2, nil))

	assert.Equal(t, 1, backend.DocumentCount())
	assert.Equal(t, 3, backend.FrameCount())
}

func TestMemoryBackend_RemoveDocument(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := NewMemoryBackend()
	_ = backend.Initialize("/tmp/test", false)

	doc, frames := sampleDocument("models/arm.sdf")
	require.NoError(t, backend.PutDocument(ctx, doc, frames, nil))

	removed, err := backend.RemoveDocument(ctx, doc.Path)
	require.NoError(t, err)
	assert.Equal(t, 5, removed)
	assert.Zero(t, backend.DocumentCount())
	assert.Zero(t, backend.FrameCount())

	removed, err = backend.RemoveDocument(ctx, doc.Path)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestMemoryBackend_ListDocuments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := NewMemoryBackend()
	_ = backend.Initialize("/tmp/test", false)

	for _, path := range []string{"b.sdf", "a.sdf"} {
		doc, frames := sampleDocument(path)
		require.NoError(t, backend.PutDocument(ctx, doc, frames, nil))
	}

	docs, err := backend.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.sdf", docs[0].Path)
	assert.Equal(t, "b.sdf", docs[1].Path)
}

func TestMemoryBackend_Search(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := NewMemoryBackend()
	_ = backend.Initialize("/tmp/test", false)

	doc, frames := sampleDocument("models/arm.sdf")
	require.NoError(t, backend.PutDocument(ctx, doc, frames, nil))

	results, err := backend.Search(ctx, "tool", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "tool", results[0].Name)

	results, err = backend.Search(ctx, "arm", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestFrameID(t *testing.T) {
	t.Parallel()

	a := FrameID("models/arm.sdf", "arm", "tool")
	b := FrameID("models/arm.sdf", "arm", "tool")
	c := FrameID("models/arm.sdf", "arm", "base")

	assert.Equal(t, a, b, "IDs are deterministic")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestDigestOf(t *testing.T) {
	t.Parallel()

	a := DigestOf([]byte("<sdf/>"))
	b := DigestOf([]byte("<sdf/>"))
	c := DigestOf([]byte("<sdf version=\"1.8\"/>"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

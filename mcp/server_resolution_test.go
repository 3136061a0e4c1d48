package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benny93/chassis/internal/sdf"
	"github.com/Benny93/chassis/internal/storage"
)

// storeFixtures opens a badger store holding two indexed documents: a clean
// pendulum and a factory whose two arms both declare a "sensor" frame.
func storeFixtures(t *testing.T) *storage.BadgerBackend {
	t.Helper()

	store := storage.NewBadgerBackend()
	err := store.Initialize(t.TempDir(), false)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	const pendulum = "models/pendulum.sdf"
	record := func(doc, model, name, kind, attachedTo, relativeTo, rawPose, poseInModel string) storage.FrameRecord {
		return storage.FrameRecord{
			ID:          storage.FrameID(doc, model, name),
			DocPath:     doc,
			Model:       model,
			Name:        name,
			Kind:        kind,
			AttachedTo:  attachedTo,
			RelativeTo:  relativeTo,
			RawPose:     rawPose,
			PoseInModel: poseInModel,
			Resolved:    poseInModel != "",
		}
	}

	err = store.PutDocument(t.Context(), &storage.DocumentRecord{
		Path:       pendulum,
		Digest:     "d1",
		Version:    "1.8",
		Models:     []string{"pendulum"},
		LinkCount:  2,
		JointCount: 1,
		FrameCount: 5,
	}, []storage.FrameRecord{
		record(pendulum, "pendulum", sdf.ModelFrameName, "model", "base", "", "0 0 0 0 0 0", "0 0 0 0 0 0"),
		record(pendulum, "pendulum", "base", "link", "base", sdf.ModelFrameName, "0 0 0 0 0 0", "0 0 0 0 0 0"),
		record(pendulum, "pendulum", "arm", "link", "arm", sdf.ModelFrameName, "0 0 1 0 0 0", "0 0 1 0 0 0"),
		record(pendulum, "pendulum", "pivot", "joint", "arm", "arm", "0 0 0 0 0 0", "0 0 1 0 0 0"),
		record(pendulum, "pendulum", "tip", "frame", "arm", "arm", "0 0 0.5 0 0 0", "0 0 1.5 0 0 0"),
	}, nil)
	require.NoError(t, err)

	const factory = "worlds/factory.sdf"
	err = store.PutDocument(t.Context(), &storage.DocumentRecord{
		Path:       factory,
		Digest:     "d2",
		Version:    "1.8",
		Models:     []string{"left_arm", "right_arm"},
		LinkCount:  2,
		FrameCount: 6,
		Errors: sdf.Errors{
			sdf.Errorf(sdf.CodeFrameAttachedToInvalid,
				"attached_to name[ghost] specified by frame with name[floating] does not match a link in model with name[right_arm]."),
		},
	}, []storage.FrameRecord{
		record(factory, "left_arm", sdf.ModelFrameName, "model", "left_base", "", "0 0 0 0 0 0", "0 0 0 0 0 0"),
		record(factory, "left_arm", "left_base", "link", "left_base", sdf.ModelFrameName, "0 0 0 0 0 0", "0 0 0 0 0 0"),
		record(factory, "left_arm", "sensor", "frame", "left_base", "left_base", "0.1 0 0 0 0 0", "0.1 0 0 0 0 0"),
		record(factory, "right_arm", sdf.ModelFrameName, "model", "right_base", "", "0 0 0 0 0 0", "0 0 0 0 0 0"),
		record(factory, "right_arm", "right_base", "link", "right_base", sdf.ModelFrameName, "0 0 0 0 0 0", "0 0 0 0 0 0"),
		record(factory, "right_arm", "sensor", "frame", "right_base", "right_base", "0.2 0 0 0 0 0", "0.2 0 0 0 0 0"),
	}, nil)
	require.NoError(t, err)

	return store
}

func TestMCPFrameResolution(t *testing.T) {
	t.Parallel()

	t.Run("ResolveByDocument", func(t *testing.T) {
		store := storeFixtures(t)

		rec, err := resolveFrameRecord(store, "models/pendulum.sdf", "", "tip")
		assert.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "tip", rec.Name)
		assert.Equal(t, "pendulum", rec.Model)
		assert.Equal(t, "arm", rec.AttachedTo)

		rec, err = resolveFrameRecord(store, "models/pendulum.sdf", "", "ghost")
		assert.Error(t, err)
		assert.Nil(t, rec)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("ResolveViaSearch", func(t *testing.T) {
		store := storeFixtures(t)

		// No document given, the frame is located through the search index
		rec, err := resolveFrameRecord(store, "", "", "tip")
		assert.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "models/pendulum.sdf", rec.DocPath)
		assert.Equal(t, "tip", rec.Name)

		rec, err = resolveFrameRecord(store, "", "", "nonexistent")
		assert.Error(t, err)
		assert.Nil(t, rec)
	})

	t.Run("ResolveAmbiguousFrame", func(t *testing.T) {
		store := storeFixtures(t)

		rec, err := resolveFrameRecord(store, "worlds/factory.sdf", "", "sensor")
		assert.Error(t, err)
		assert.Nil(t, rec)
		assert.Contains(t, err.Error(), "ambiguous")

		rec, err = resolveFrameRecord(store, "worlds/factory.sdf", "right_arm", "sensor")
		assert.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "right_base", rec.AttachedTo)
	})

	t.Run("HandleResolveFromStore", func(t *testing.T) {
		store := storeFixtures(t)

		result, err := handleResolve(store, "models/pendulum.sdf", "", "tip", "")
		assert.NoError(t, err)
		assert.Contains(t, result, "relative to **"+sdf.ModelFrameName+"**")
		assert.Contains(t, result, "0 0 1.5 0 0 0")

		result, err = handleResolve(store, "models/pendulum.sdf", "", "tip", "arm")
		assert.NoError(t, err)
		assert.Contains(t, result, "relative to **arm**")
		assert.Contains(t, result, "0 0 0.5 0 0 0")
	})

	t.Run("HandleResolveUnknownReference", func(t *testing.T) {
		store := storeFixtures(t)

		result, err := handleResolve(store, "models/pendulum.sdf", "", "tip", "ghost")
		assert.NoError(t, err)
		assert.Contains(t, result, "'ghost' not found in model 'pendulum'")
	})

	t.Run("HandleFramesFromStore", func(t *testing.T) {
		store := storeFixtures(t)

		result, err := handleFrames(store, "worlds/factory.sdf", "left_arm")
		assert.NoError(t, err)
		assert.Contains(t, result, "Model left_arm")
		assert.Contains(t, result, "| `sensor` |")
		assert.NotContains(t, result, "Model right_arm")
	})

	t.Run("HandleErrorsWithDiagnostics", func(t *testing.T) {
		store := storeFixtures(t)

		result, err := handleErrors(store, "worlds/factory.sdf")
		assert.NoError(t, err)
		assert.Contains(t, result, "FRAME_ATTACHED_TO_INVALID")
		assert.Contains(t, result, "attached_to name[ghost]")

		// The global report flags only the factory document
		result, err = handleErrors(store, "")
		assert.NoError(t, err)
		assert.Contains(t, result, "worlds/factory.sdf")
		assert.NotContains(t, result, "models/pendulum.sdf")
	})

	t.Run("DiagnosticsResource", func(t *testing.T) {
		store := storeFixtures(t)

		content := getDiagnostics(store)
		assert.Contains(t, content, "worlds/factory.sdf")
		assert.Contains(t, content, "FRAME_ATTACHED_TO_INVALID")
	})
}

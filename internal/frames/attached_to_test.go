package frames

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benny93/chassis/internal/graph"
	"github.com/Benny93/chassis/internal/sdf"
)

// attachmentModel mirrors the model_frame_attached_to conformance model:
// one link and a chain of frames attached through every supported target.
func attachmentModel() *sdf.Model {
	return &sdf.Model{
		Name:  "model_frame_attached_to",
		Links: []sdf.Link{{Name: "L"}},
		Frames: []sdf.Frame{
			{Name: "F00"},
			{Name: "F0", AttachedTo: "__model__"},
			{Name: "F1", AttachedTo: "L"},
			{Name: "F2", AttachedTo: "F1"},
		},
	}
}

func TestBuildFrameAttachedToGraph(t *testing.T) {
	t.Parallel()

	t.Run("AttachmentModel", func(t *testing.T) {
		t.Parallel()
		g, errs := BuildFrameAttachedToGraph(attachmentModel())
		require.Empty(t, errs)

		assert.Equal(t, 6, g.VertexCount())
		assert.Equal(t, 5, g.EdgeCount())
		assert.Equal(t, 6, g.NameCount())
		assert.Empty(t, ValidateFrameAttachedToGraph(g))

		model, ok := g.VertexByName(sdf.ModelFrameName)
		require.True(t, ok)
		assert.Equal(t, KindModel, model.Data)
		assert.Equal(t, graph.VertexID(0), model.ID)
	})

	t.Run("ModelWithoutLink", func(t *testing.T) {
		t.Parallel()
		g, errs := BuildFrameAttachedToGraph(&sdf.Model{Name: "empty"})
		require.Len(t, errs, 1)
		assert.Equal(t, sdf.CodeModelWithoutLink, errs[0].Code)
		assert.Equal(t, 1, g.VertexCount())
	})

	t.Run("CanonicalLinkAttribute", func(t *testing.T) {
		t.Parallel()
		model := &sdf.Model{
			Name:          "picker",
			CanonicalLink: "arm",
			Links:         []sdf.Link{{Name: "base"}, {Name: "arm"}},
		}

		g, errs := BuildFrameAttachedToGraph(model)
		require.Empty(t, errs)

		body, rerrs := ResolveFrameAttachedToBody(g, sdf.ModelFrameName)
		require.Empty(t, rerrs)
		assert.Equal(t, "arm", body)
	})

	t.Run("CanonicalLinkInvalid", func(t *testing.T) {
		t.Parallel()
		model := &sdf.Model{
			Name:          "picker",
			CanonicalLink: "ghost",
			Links:         []sdf.Link{{Name: "base"}},
		}

		_, errs := BuildFrameAttachedToGraph(model)
		require.Len(t, errs, 1)
		assert.Equal(t, sdf.CodeModelCanonicalLinkInvalid, errs[0].Code)
		assert.Contains(t, errs[0].Message, "name[ghost]")
	})

	t.Run("UnknownAttachedTo", func(t *testing.T) {
		t.Parallel()
		model := attachmentModel()
		model.Frames[2].AttachedTo = "ghost"

		g, errs := BuildFrameAttachedToGraph(model)
		require.Len(t, errs, 1)
		assert.Equal(t, sdf.CodeFrameAttachedToInvalid, errs[0].Code)
		assert.Contains(t, errs[0].Message, "attached_to name[ghost]")
		assert.Contains(t, errs[0].Message, "frame with name[F1]")

		// Edge skipped, vertices intact.
		assert.Equal(t, 6, g.VertexCount())
		assert.Equal(t, 4, g.EdgeCount())
	})

	t.Run("ForwardReference", func(t *testing.T) {
		t.Parallel()
		model := &sdf.Model{
			Name:  "fwd",
			Links: []sdf.Link{{Name: "L"}},
			Frames: []sdf.Frame{
				{Name: "A", AttachedTo: "B"},
				{Name: "B", AttachedTo: "L"},
			},
		}

		g, errs := BuildFrameAttachedToGraph(model)
		require.Empty(t, errs)
		require.Empty(t, ValidateFrameAttachedToGraph(g))

		body, rerrs := ResolveFrameAttachedToBody(g, "A")
		require.Empty(t, rerrs)
		assert.Equal(t, "L", body)
	})

	t.Run("JointAttachesToChildLink", func(t *testing.T) {
		t.Parallel()
		model := doublePendulum()

		g, errs := BuildFrameAttachedToGraph(model)
		require.Empty(t, errs)

		body, rerrs := ResolveFrameAttachedToBody(g, "lower_joint")
		require.Empty(t, rerrs)
		assert.Equal(t, "lower_link", body)
	})
}

func TestValidateFrameAttachedToGraph(t *testing.T) {
	t.Parallel()

	t.Run("CycleSurfacesFromValidation", func(t *testing.T) {
		t.Parallel()
		model := &sdf.Model{
			Name:  "loop",
			Links: []sdf.Link{{Name: "L"}},
			Frames: []sdf.Frame{
				{Name: "A", AttachedTo: "B"},
				{Name: "B", AttachedTo: "A"},
			},
		}

		g, errs := BuildFrameAttachedToGraph(model)
		require.Empty(t, errs, "cycles are not a build error")

		verrs := ValidateFrameAttachedToGraph(g)
		require.NotEmpty(t, verrs)
		assert.True(t, verrs.HasCode(sdf.CodeFrameAttachedToCycle))
	})

	t.Run("SelfReference", func(t *testing.T) {
		t.Parallel()
		model := &sdf.Model{
			Name:   "selfie",
			Links:  []sdf.Link{{Name: "L"}},
			Frames: []sdf.Frame{{Name: "A", AttachedTo: "A"}},
		}

		g, errs := BuildFrameAttachedToGraph(model)
		require.Empty(t, errs)

		verrs := ValidateFrameAttachedToGraph(g)
		require.Len(t, verrs, 1)
		assert.Equal(t, sdf.CodeFrameAttachedToCycle, verrs[0].Code)
		assert.Contains(t, verrs[0].Message, "[A]")
	})

	t.Run("DanglingVertex", func(t *testing.T) {
		t.Parallel()
		model := attachmentModel()
		model.Frames[3].AttachedTo = "ghost"

		g, _ := BuildFrameAttachedToGraph(model)
		verrs := ValidateFrameAttachedToGraph(g)
		require.Len(t, verrs, 1)
		assert.Equal(t, sdf.CodeFrameAttachedToGraphError, verrs[0].Code)
		assert.Contains(t, verrs[0].Message, "should have 1 outgoing edge, found 0")
	})

	t.Run("DuplicateNames", func(t *testing.T) {
		t.Parallel()
		model := &sdf.Model{
			Name:   "dups",
			Links:  []sdf.Link{{Name: "L"}},
			Frames: []sdf.Frame{{Name: "L", AttachedTo: "L"}},
		}

		g, _ := BuildFrameAttachedToGraph(model)
		verrs := ValidateFrameAttachedToGraph(g)
		assert.True(t, verrs.HasCode(sdf.CodeFrameAttachedToGraphError))
		assert.Contains(t, verrs.Error(), "duplicate vertex name [L]")
	})
}

func TestResolveFrameAttachedToBody(t *testing.T) {
	t.Parallel()

	g, errs := BuildFrameAttachedToGraph(attachmentModel())
	require.Empty(t, errs)
	require.Empty(t, ValidateFrameAttachedToGraph(g))

	t.Run("EveryFrameResolvesToL", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"L", "__model__", "F00", "F0", "F1", "F2"} {
			body, rerrs := ResolveFrameAttachedToBody(g, name)
			require.Empty(t, rerrs, name)
			assert.Equal(t, "L", body, name)
		}
	})

	t.Run("LinkResolvesToItself", func(t *testing.T) {
		t.Parallel()
		body, rerrs := ResolveFrameAttachedToBody(g, "L")
		require.Empty(t, rerrs)
		assert.Equal(t, "L", body)
	})

	t.Run("UnknownName", func(t *testing.T) {
		t.Parallel()
		_, rerrs := ResolveFrameAttachedToBody(g, "invalid")
		require.Len(t, rerrs, 1)
		assert.Equal(t, sdf.CodeFrameAttachedToInvalid, rerrs[0].Code)
		assert.Equal(t,
			"FrameAttachedToGraph unable to find unique frame with name [invalid] in graph.",
			rerrs[0].Message)
	})

	t.Run("CycleStopsTheWalk", func(t *testing.T) {
		t.Parallel()
		model := &sdf.Model{
			Name:  "loop",
			Links: []sdf.Link{{Name: "L"}},
			Frames: []sdf.Frame{
				{Name: "A", AttachedTo: "B"},
				{Name: "B", AttachedTo: "A"},
			},
		}
		cyclic, _ := BuildFrameAttachedToGraph(model)

		_, rerrs := ResolveFrameAttachedToBody(cyclic, "A")
		require.Len(t, rerrs, 1)
		assert.Equal(t, sdf.CodeFrameAttachedToCycle, rerrs[0].Code)
	})

	t.Run("DanglingChain", func(t *testing.T) {
		t.Parallel()
		model := attachmentModel()
		model.Frames[3].AttachedTo = "ghost"
		dangling, _ := BuildFrameAttachedToGraph(model)

		_, rerrs := ResolveFrameAttachedToBody(dangling, "F2")
		require.Len(t, rerrs, 1)
		assert.Equal(t, sdf.CodeFrameAttachedToGraphError, rerrs[0].Code)
		assert.Contains(t, rerrs[0].Message, "is not a link")
	})
}

package frames

import (
	"github.com/Benny93/chassis/internal/graph"
	"github.com/Benny93/chassis/internal/sdf"
)

// BuildFrameAttachedToGraph builds the attachment graph of a model: the
// implicit model frame first, then one vertex per link, joint, and explicit
// frame. Every non-link vertex gets one edge toward the frame it is attached
// to; the model frame attaches to the canonical link, joints to their child
// link, and frames to their attached_to target (the model frame when the
// attribute is empty).
//
// References to unknown names are reported and the edge skipped. Self and
// cyclic references are inserted as-is; ValidateFrameAttachedToGraph reports
// them.
func BuildFrameAttachedToGraph(model *sdf.Model) (*FrameAttachedToGraph, sdf.Errors) {
	g := graph.NewNamed[Kind, struct{}]()
	var errs sdf.Errors

	modelID := g.AddVertex(sdf.ModelFrameName, KindModel)

	if len(model.Links) == 0 {
		errs = append(errs, sdf.Errorf(sdf.CodeModelWithoutLink,
			"A model must have at least one link, model with name[%s] has none.", model.Name))
	}

	for i := range model.Links {
		g.AddVertex(model.Links[i].Name, KindLink)
	}

	if canonical := model.CanonicalLinkName(); canonical != "" {
		v, ok := g.VertexByName(canonical)
		if ok && v.Data == KindLink {
			g.AddEdge(modelID, v.ID, struct{}{})
		} else {
			errs = append(errs, sdf.Errorf(sdf.CodeModelCanonicalLinkInvalid,
				"canonical_link with name[%s] not found in model with name[%s].",
				canonical, model.Name))
		}
	}

	for i := range model.Joints {
		joint := &model.Joints[i]
		id := g.AddVertex(joint.Name, KindJoint)

		child, ok := g.VertexByName(joint.Child)
		if !ok || child.Data != KindLink {
			errs = append(errs, sdf.Errorf(sdf.CodeJointChildLinkInvalid,
				"Child link with name[%s] specified by joint with name[%s] not found in model with name[%s].",
				joint.Child, joint.Name, model.Name))
			continue
		}
		g.AddEdge(id, child.ID, struct{}{})
	}

	// Frame vertices are all inserted before any frame edge so that
	// attached_to may reference a frame declared later.
	for i := range model.Frames {
		g.AddVertex(model.Frames[i].Name, KindFrame)
	}

	for i := range model.Frames {
		frame := &model.Frames[i]

		target := frame.AttachedTo
		if target == "" {
			target = sdf.ModelFrameName
		}

		tail, _ := g.VertexByName(frame.Name)
		head, ok := g.VertexByName(target)
		if !ok {
			errs = append(errs, sdf.Errorf(sdf.CodeFrameAttachedToInvalid,
				"attached_to name[%s] specified by frame with name[%s] does not match a link, joint, or frame name in model with name[%s].",
				target, frame.Name, model.Name))
			continue
		}
		g.AddEdge(tail.ID, head.ID, struct{}{})
	}

	return g, errs
}

// ValidateFrameAttachedToGraph checks the structural rules of an attachment
// graph: vertex names are unique, link vertices have no outgoing edge, every
// other vertex has exactly one, and no cycle exists. Together these
// guarantee that every attachment chain ends at exactly one link.
func ValidateFrameAttachedToGraph(g *FrameAttachedToGraph) sdf.Errors {
	errs := duplicateNames(g, sdf.CodeFrameAttachedToGraphError, "FrameAttachedToGraph")

	for _, v := range g.Vertices() {
		out := len(g.OutgoingEdges(v.ID))
		switch {
		case v.Data == KindLink && out != 0:
			errs = append(errs, sdf.Errorf(sdf.CodeFrameAttachedToGraphError,
				"FrameAttachedToGraph error, link vertex with name [%s] should have no outgoing edges, found %d.",
				v.Name, out))
		case v.Data != KindLink && out != 1:
			errs = append(errs, sdf.Errorf(sdf.CodeFrameAttachedToGraphError,
				"FrameAttachedToGraph error, %s vertex with name [%s] should have 1 outgoing edge, found %d.",
				v.Data, v.Name, out))
		}
	}

	errs = append(errs, detectCycles(g, sdf.CodeFrameAttachedToCycle, "FrameAttachedToGraph")...)
	return errs
}

// ResolveFrameAttachedToBody walks the attachment chain of the named frame
// and returns the link it ultimately sits on. Resolving a link name returns
// that name unchanged.
func ResolveFrameAttachedToBody(g *FrameAttachedToGraph, name string) (string, sdf.Errors) {
	current, ok := g.VertexByName(name)
	if !ok {
		return "", sdf.Errors{sdf.Errorf(sdf.CodeFrameAttachedToInvalid,
			"FrameAttachedToGraph unable to find unique frame with name [%s] in graph.", name)}
	}

	visited := make(map[graph.VertexID]bool)
	for {
		if visited[current.ID] {
			return "", sdf.Errors{sdf.Errorf(sdf.CodeFrameAttachedToCycle,
				"FrameAttachedToGraph cycle detected, already visited vertex [%s].", current.Name)}
		}
		visited[current.ID] = true

		out := g.OutgoingEdges(current.ID)
		if len(out) == 0 {
			break
		}
		if len(out) > 1 {
			return "", sdf.Errors{sdf.Errorf(sdf.CodeFrameAttachedToGraphError,
				"FrameAttachedToGraph error, vertex with name [%s] has multiple outgoing edges.", current.Name)}
		}
		current, _ = g.VertexByID(out[0].Head)
	}

	if current.Data != KindLink {
		return "", sdf.Errors{sdf.Errorf(sdf.CodeFrameAttachedToGraphError,
			"FrameAttachedToGraph error, sink vertex with name [%s] is not a link.", current.Name)}
	}
	return current.Name, nil
}

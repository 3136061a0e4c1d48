package frames

import (
	"github.com/Benny93/chassis/internal/graph"
	"github.com/Benny93/chassis/internal/sdf"
	"github.com/Benny93/chassis/internal/spatial"
)

// BuildPoseRelativeToGraph builds the pose reference graph of a model: the
// implicit model frame first, then one vertex per link, joint, and explicit
// frame. Every non-model vertex gets one edge toward the frame its pose is
// expressed in, carrying the raw pose; an unset pose (zero rotation) is
// carried as the identity. Defaults when relative_to is empty:
// links use the model frame, joints their child link, frames their
// attached_to target (the model frame when that is empty too).
//
// References to unknown names are reported and the edge skipped. Cycles are
// inserted as-is; ValidatePoseRelativeToGraph reports them.
func BuildPoseRelativeToGraph(model *sdf.Model) (*PoseRelativeToGraph, sdf.Errors) {
	g := graph.NewNamed[Kind, spatial.Pose]()
	var errs sdf.Errors

	g.AddVertex(sdf.ModelFrameName, KindModel)

	for i := range model.Links {
		g.AddVertex(model.Links[i].Name, KindLink)
	}
	for i := range model.Joints {
		g.AddVertex(model.Joints[i].Name, KindJoint)
	}
	for i := range model.Frames {
		g.AddVertex(model.Frames[i].Name, KindFrame)
	}

	// Edges are added after every vertex exists so that relative_to may
	// reference an entity declared later in the document.
	addEdge := func(kind Kind, name, target string, pose spatial.Pose) {
		tail, _ := g.VertexByName(name)
		head, ok := g.VertexByName(target)
		if !ok {
			errs = append(errs, sdf.Errorf(sdf.CodePoseRelativeToInvalid,
				"relative_to name[%s] specified by %s with name[%s] does not match a link, joint, or frame name in model with name[%s].",
				target, kind, name, model.Name))
			return
		}
		g.AddEdge(tail.ID, head.ID, spatial.OrIdentity(pose))
	}

	for i := range model.Links {
		link := &model.Links[i]
		target := link.PoseRelativeTo
		if target == "" {
			target = sdf.ModelFrameName
		}
		addEdge(KindLink, link.Name, target, link.Pose)
	}

	for i := range model.Joints {
		joint := &model.Joints[i]
		target := joint.PoseRelativeTo
		if target == "" {
			target = joint.Child
		}
		addEdge(KindJoint, joint.Name, target, joint.Pose)
	}

	for i := range model.Frames {
		frame := &model.Frames[i]
		target := frame.PoseRelativeTo
		if target == "" {
			target = frame.AttachedTo
		}
		if target == "" {
			target = sdf.ModelFrameName
		}
		addEdge(KindFrame, frame.Name, target, frame.Pose)
	}

	return g, errs
}

// ValidatePoseRelativeToGraph checks the structural rules of a pose graph:
// vertex names are unique, the model vertex has no outgoing edge, every
// other vertex has exactly one, and no cycle exists. Together these
// guarantee that every reference chain ends at the model frame.
func ValidatePoseRelativeToGraph(g *PoseRelativeToGraph) sdf.Errors {
	errs := duplicateNames(g, sdf.CodePoseRelativeToGraphError, "PoseRelativeToGraph")

	for _, v := range g.Vertices() {
		out := len(g.OutgoingEdges(v.ID))
		switch {
		case v.Data == KindModel && out != 0:
			errs = append(errs, sdf.Errorf(sdf.CodePoseRelativeToGraphError,
				"PoseRelativeToGraph error, model vertex with name [%s] should have no outgoing edges, found %d.",
				v.Name, out))
		case v.Data != KindModel && out != 1:
			errs = append(errs, sdf.Errorf(sdf.CodePoseRelativeToGraphError,
				"PoseRelativeToGraph error, %s vertex with name [%s] should have 1 outgoing edge, found %d.",
				v.Data, v.Name, out))
		}
	}

	errs = append(errs, detectCycles(g, sdf.CodePoseRelativeToCycle, "PoseRelativeToGraph")...)
	return errs
}

// ResolvePoseRelativeToRoot walks the reference chain of the named frame
// down to the model frame and returns the frame's pose expressed in the
// model frame.
func ResolvePoseRelativeToRoot(g *PoseRelativeToGraph, name string) (spatial.Pose, sdf.Errors) {
	current, ok := g.VertexByName(name)
	if !ok {
		return spatial.Identity(), sdf.Errors{sdf.Errorf(sdf.CodePoseRelativeToInvalid,
			"PoseRelativeToGraph unable to find unique frame with name [%s] in graph.", name)}
	}

	result := spatial.Identity()
	visited := make(map[graph.VertexID]bool)
	for {
		if visited[current.ID] {
			return spatial.Identity(), sdf.Errors{sdf.Errorf(sdf.CodePoseRelativeToCycle,
				"PoseRelativeToGraph cycle detected, already visited vertex [%s].", current.Name)}
		}
		visited[current.ID] = true

		out := g.OutgoingEdges(current.ID)
		if len(out) == 0 {
			break
		}
		if len(out) > 1 {
			return spatial.Identity(), sdf.Errors{sdf.Errorf(sdf.CodePoseRelativeToGraphError,
				"PoseRelativeToGraph error, vertex with name [%s] has multiple outgoing edges.", current.Name)}
		}

		result = spatial.Compose(out[0].Data, result)
		current, _ = g.VertexByID(out[0].Head)
	}

	if current.Data != KindModel {
		return spatial.Identity(), sdf.Errors{sdf.Errorf(sdf.CodePoseRelativeToGraphError,
			"PoseRelativeToGraph error, sink vertex with name [%s] is not the model frame.", current.Name)}
	}
	return result, nil
}

// ResolvePose returns the pose of frame expressed in the relativeTo frame.
// Both names are resolved to the model frame first; the first failure wins.
func ResolvePose(g *PoseRelativeToGraph, frame, relativeTo string) (spatial.Pose, sdf.Errors) {
	frameInRoot, errs := ResolvePoseRelativeToRoot(g, frame)
	if len(errs) > 0 {
		return spatial.Identity(), errs
	}
	relInRoot, errs := ResolvePoseRelativeToRoot(g, relativeTo)
	if len(errs) > 0 {
		return spatial.Identity(), errs
	}
	return spatial.Compose(spatial.Inverse(relInRoot), frameInRoot), nil
}

// Package frames builds and analyzes the reference graphs behind SDFormat
// frame semantics.
//
// Three graphs are derived from a loaded model: the kinematic graph (links
// connected by joints), the frame-attached-to graph (which body every frame
// ultimately sits on), and the pose-relative-to graph (which frame every
// pose is expressed in). Builders accumulate diagnostics and always return a
// best effort graph; validators check the structural rules; resolvers answer
// queries against validated graphs and stop at the first failure.
//
// Construction and validation are single-threaded per graph. A built graph
// is read-only, so resolvers may run concurrently against it.
package frames

import (
	"github.com/Benny93/chassis/internal/graph"
	"github.com/Benny93/chassis/internal/sdf"
	"github.com/Benny93/chassis/internal/spatial"
)

// Kind classifies a vertex of a frame graph.
type Kind string

const (
	KindModel Kind = "model"
	KindLink  Kind = "link"
	KindJoint Kind = "joint"
	KindFrame Kind = "frame"
)

// KinematicGraph connects link vertices by directed parent-to-child joint
// edges. It has no implicit model vertex.
type KinematicGraph = graph.Named[struct{}, struct{}]

// FrameAttachedToGraph holds one vertex per frame of a model, each non-link
// vertex pointing at the frame it is attached to. Links are the sinks.
type FrameAttachedToGraph = graph.Named[Kind, struct{}]

// PoseRelativeToGraph holds one vertex per frame of a model, each non-model
// vertex pointing at the frame its pose is expressed in and carrying the raw
// pose on the edge. The implicit model frame is the sink.
type PoseRelativeToGraph = graph.Named[Kind, spatial.Pose]

// duplicateNames reports each vertex name used more than once, in first
// duplicate order.
func duplicateNames[V, E any](g *graph.Named[V, E], code sdf.Code, graphName string) sdf.Errors {
	var errs sdf.Errors
	seen := make(map[string]bool)
	reported := make(map[string]bool)
	for _, v := range g.Vertices() {
		if seen[v.Name] && !reported[v.Name] {
			errs = append(errs, sdf.Errorf(code,
				"%s error, duplicate vertex name [%s].", graphName, v.Name))
			reported[v.Name] = true
		}
		seen[v.Name] = true
	}
	return errs
}

// detectCycles runs a depth first search over every vertex and reports one
// error per back edge, naming the revisited vertex. In graphs where each
// vertex has at most one outgoing edge this is exactly one report per cycle.
func detectCycles[V, E any](g *graph.Named[V, E], code sdf.Code, graphName string) sdf.Errors {
	const (
		white = iota
		gray
		black
	)

	var errs sdf.Errors
	state := make(map[graph.VertexID]int, g.VertexCount())

	var visit func(id graph.VertexID)
	visit = func(id graph.VertexID) {
		state[id] = gray
		for _, e := range g.OutgoingEdges(id) {
			switch state[e.Head] {
			case white:
				visit(e.Head)
			case gray:
				head, _ := g.VertexByID(e.Head)
				errs = append(errs, sdf.Errorf(code,
					"%s cycle detected, already visited vertex [%s].", graphName, head.Name))
			}
		}
		state[id] = black
	}

	for _, v := range g.Vertices() {
		if state[v.ID] == white {
			visit(v.ID)
		}
	}
	return errs
}

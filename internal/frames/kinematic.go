package frames

import (
	"github.com/Benny93/chassis/internal/graph"
	"github.com/Benny93/chassis/internal/sdf"
)

// BuildKinematicGraph builds the link/joint connectivity graph of a model:
// one vertex per link, one directed edge per joint from its parent link to
// its child link. Joints naming unknown links are reported and skipped; the
// returned graph is always usable.
func BuildKinematicGraph(model *sdf.Model) (*KinematicGraph, sdf.Errors) {
	g := graph.NewNamed[struct{}, struct{}]()
	var errs sdf.Errors

	for i := range model.Links {
		g.AddVertex(model.Links[i].Name, struct{}{})
	}

	for i := range model.Joints {
		joint := &model.Joints[i]

		parent, ok := g.VertexByName(joint.Parent)
		if !ok {
			errs = append(errs, sdf.Errorf(sdf.CodeJointParentLinkInvalid,
				"Parent link with name[%s] specified by joint with name[%s] not found in model with name[%s].",
				joint.Parent, joint.Name, model.Name))
			continue
		}

		child, ok := g.VertexByName(joint.Child)
		if !ok {
			errs = append(errs, sdf.Errorf(sdf.CodeJointChildLinkInvalid,
				"Child link with name[%s] specified by joint with name[%s] not found in model with name[%s].",
				joint.Child, joint.Name, model.Name))
			continue
		}

		g.AddEdge(parent.ID, child.ID, struct{}{})
	}

	return g, errs
}

// ValidateKinematicGraph checks that the link/joint graph is acyclic and
// forms a single connected assembly. Direction is ignored for the
// connectivity check.
func ValidateKinematicGraph(g *KinematicGraph) sdf.Errors {
	errs := detectCycles(g, sdf.CodeKinematicGraphCycle, "KinematicGraph")

	visited := make(map[graph.VertexID]bool, g.VertexCount())
	component := func(start graph.VertexID) {
		queue := []graph.VertexID{start}
		visited[start] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, e := range g.OutgoingEdges(id) {
				if !visited[e.Head] {
					visited[e.Head] = true
					queue = append(queue, e.Head)
				}
			}
			for _, e := range g.IncomingEdges(id) {
				if !visited[e.Tail] {
					visited[e.Tail] = true
					queue = append(queue, e.Tail)
				}
			}
		}
	}

	first := true
	for _, v := range g.Vertices() {
		if visited[v.ID] {
			continue
		}
		if !first {
			errs = append(errs, sdf.Errorf(sdf.CodeKinematicGraphError,
				"KinematicGraph error, vertex with name [%s] is not connected to the rest of the graph.", v.Name))
		}
		first = false
		component(v.ID)
	}

	return errs
}

// UniqueSource returns the name of the only vertex without incoming edges,
// or false when the graph has none or several. For a well formed open chain
// this is the base link.
func UniqueSource(g *KinematicGraph) (string, bool) {
	return uniqueDegreeZero(g, func(id graph.VertexID) int {
		return len(g.IncomingEdges(id))
	})
}

// UniqueSink returns the name of the only vertex without outgoing edges, or
// false when the graph has none or several. For a well formed open chain
// this is the end link.
func UniqueSink(g *KinematicGraph) (string, bool) {
	return uniqueDegreeZero(g, func(id graph.VertexID) int {
		return len(g.OutgoingEdges(id))
	})
}

func uniqueDegreeZero(g *KinematicGraph, degree func(graph.VertexID) int) (string, bool) {
	name := ""
	found := false
	for _, v := range g.Vertices() {
		if degree(v.ID) != 0 {
			continue
		}
		if found {
			return "", false
		}
		name = v.Name
		found = true
	}
	return name, found
}

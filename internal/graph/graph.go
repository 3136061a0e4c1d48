// Package graph provides the named directed graph underlying frame analysis.
//
// It implements an arena-backed container: vertices and edges live in
// insertion order and are addressed by opaque integer ids, with a name index
// resolving the first vertex inserted under each name. Lookups by id and
// name are O(1); enumeration is O(V+E). The container carries no domain
// invariants and no locking: builders construct a graph single-threaded,
// validators decide what a well formed graph looks like, and finished graphs
// are read-only.
package graph

// VertexID addresses a vertex within one graph. Ids are handed out by
// AddVertex, start at zero, and stay stable for the graph lifetime.
type VertexID int

// Vertex is a named vertex carrying a caller-defined payload.
type Vertex[V any] struct {
	// ID is the vertex's position in the arena.
	ID VertexID

	// Name is the vertex's name. Uniqueness is not enforced here; the
	// name index keeps the first vertex inserted under each name.
	Name string

	// Data is the caller's payload.
	Data V
}

// Edge is a directed edge between two vertices of the same graph.
type Edge[E any] struct {
	// Tail is the origin vertex.
	Tail VertexID

	// Head is the destination vertex.
	Head VertexID

	// Data is the caller's payload.
	Data E
}

// Named is a directed graph whose vertices are addressable by name.
//
// The zero value is not usable; construct with NewNamed. The graph trusts
// its callers: AddEdge does not verify that the given ids were handed out
// by AddVertex, and nothing is ever removed.
type Named[V, E any] struct {
	vertices []Vertex[V]
	edges    []Edge[E]
	names    map[string]VertexID

	// Adjacency holds indexes into edges, kept in insertion order.
	outgoing map[VertexID][]int
	incoming map[VertexID][]int
}

// NewNamed creates an empty graph.
func NewNamed[V, E any]() *Named[V, E] {
	return &Named[V, E]{
		names:    make(map[string]VertexID),
		outgoing: make(map[VertexID][]int),
		incoming: make(map[VertexID][]int),
	}
}

// AddVertex inserts a vertex and returns its id. When the name is already
// taken the new vertex is still inserted, but the name keeps resolving to
// the first vertex inserted under it.
func (g *Named[V, E]) AddVertex(name string, data V) VertexID {
	id := VertexID(len(g.vertices))
	g.vertices = append(g.vertices, Vertex[V]{ID: id, Name: name, Data: data})
	if _, taken := g.names[name]; !taken {
		g.names[name] = id
	}
	return id
}

// AddEdge inserts a directed edge from tail to head.
func (g *Named[V, E]) AddEdge(tail, head VertexID, data E) {
	idx := len(g.edges)
	g.edges = append(g.edges, Edge[E]{Tail: tail, Head: head, Data: data})
	g.outgoing[tail] = append(g.outgoing[tail], idx)
	g.incoming[head] = append(g.incoming[head], idx)
}

// VertexByID returns the vertex with the given id.
func (g *Named[V, E]) VertexByID(id VertexID) (Vertex[V], bool) {
	if id < 0 || int(id) >= len(g.vertices) {
		return Vertex[V]{}, false
	}
	return g.vertices[id], true
}

// VertexByName returns the first vertex inserted under the given name.
func (g *Named[V, E]) VertexByName(name string) (Vertex[V], bool) {
	id, ok := g.names[name]
	if !ok {
		return Vertex[V]{}, false
	}
	return g.vertices[id], true
}

// Vertices returns all vertices in insertion order.
func (g *Named[V, E]) Vertices() []Vertex[V] {
	out := make([]Vertex[V], len(g.vertices))
	copy(out, g.vertices)
	return out
}

// Edges returns all edges in insertion order.
func (g *Named[V, E]) Edges() []Edge[E] {
	out := make([]Edge[E], len(g.edges))
	copy(out, g.edges)
	return out
}

// OutgoingEdges returns the edges whose tail is the given vertex, in
// insertion order.
func (g *Named[V, E]) OutgoingEdges(id VertexID) []Edge[E] {
	idxs := g.outgoing[id]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]Edge[E], 0, len(idxs))
	for _, i := range idxs {
		out = append(out, g.edges[i])
	}
	return out
}

// IncomingEdges returns the edges whose head is the given vertex, in
// insertion order.
func (g *Named[V, E]) IncomingEdges(id VertexID) []Edge[E] {
	idxs := g.incoming[id]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]Edge[E], 0, len(idxs))
	for _, i := range idxs {
		out = append(out, g.edges[i])
	}
	return out
}

// VertexCount returns the number of vertices.
func (g *Named[V, E]) VertexCount() int {
	return len(g.vertices)
}

// EdgeCount returns the number of edges.
func (g *Named[V, E]) EdgeCount() int {
	return len(g.edges)
}

// NameCount returns the number of distinct vertex names. When every name is
// unique it equals VertexCount.
func (g *Named[V, E]) NameCount() int {
	return len(g.names)
}

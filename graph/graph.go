// Package graph is the shared directed-graph utility used by every stage of
// the pipeline. Adjacency is insertion-ordered so that anything derived from
// iteration order before it reaches a sort boundary stays reproducible
// across runs, per spec.md section 5.
package graph

// Node is a stable handle into a Graph: a class identifier in a ClassGraph,
// a normalized absolute path in a FileGraph.
type Node string

// Graph is a directed graph with no self-loops. AddEdge silently drops a
// self-loop rather than erroring, since every caller that builds a Graph
// (collapse, mapping) is explicitly required to drop self-loops it
// introduces.
type Graph struct {
	order []Node
	seen  map[Node]bool
	adj   map[Node][]Node
	edge  map[Node]map[Node]bool
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		seen: make(map[Node]bool),
		adj:  make(map[Node][]Node),
		edge: make(map[Node]map[Node]bool),
	}
}

// AddNode registers n if it isn't already present. It is a no-op otherwise.
func (g *Graph) AddNode(n Node) {
	if g.seen[n] {
		return
	}
	g.seen[n] = true
	g.order = append(g.order, n)
}

// AddEdge registers u and v if needed, then adds the edge u->v. Self-loops
// and duplicate edges are dropped silently.
func (g *Graph) AddEdge(u, v Node) {
	g.AddNode(u)
	g.AddNode(v)
	if u == v {
		return
	}
	if g.edge[u] == nil {
		g.edge[u] = make(map[Node]bool)
	}
	if g.edge[u][v] {
		return
	}
	g.edge[u][v] = true
	g.adj[u] = append(g.adj[u], v)
}

// HasNode reports whether n was ever added.
func (g *Graph) HasNode(n Node) bool { return g.seen[n] }

// NumNodes returns the number of distinct nodes.
func (g *Graph) NumNodes() int { return len(g.order) }

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.order))
	copy(out, g.order)
	return out
}

// Neighbors returns n's out-edges in insertion order. Returns nil if n has
// no recorded out-edges, including when n was never added.
func (g *Graph) Neighbors(n Node) []Node {
	if len(g.adj[n]) == 0 {
		return nil
	}
	out := make([]Node, len(g.adj[n]))
	copy(out, g.adj[n])
	return out
}

// HasEdge reports whether u->v was added.
func (g *Graph) HasEdge(u, v Node) bool { return g.edge[u] != nil && g.edge[u][v] }

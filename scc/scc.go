// Package scc implements SccEngine (spec.md section 4.4): an iterative
// Tarjan's algorithm producing strongly connected components in
// reverse-topological order over the induced component DAG, plus the DAG
// itself. The implementation uses an explicit work-stack so it does not
// recurse, per spec.md section 4.4's implementation notes, and relies on
// graph.Graph's insertion-ordered adjacency so that component discovery
// order — and therefore emission order — is reproducible across runs.
package scc

import "github.com/bazelbuild/BUILD-file-generator/graph"

// Component is an immutable strongly connected component. Files are listed
// in Tarjan pop order, which BuildRuleBuilder uses as the "insertion order"
// for its multi-file target-name hash (spec.md section 4.7).
type Component struct {
	id    int
	Files []graph.Node
}

// DAG is the component DAG induced from the input FileGraph. Components()
// iterates in reverse-topological order: a component's dependencies always
// appear before it.
type DAG struct {
	components []*Component
	successors map[int][]int
	ownerOf    map[graph.Node]int
}

// Components returns every component in reverse-topological order.
func (d *DAG) Components() []*Component {
	out := make([]*Component, len(d.components))
	copy(out, d.components)
	return out
}

// Successors returns c's direct successor components (the components that
// contain a node c has an edge into), in the order they were first
// discovered. Callers needing a deterministic printed order must sort by
// label themselves, per spec.md section 4.8.
func (d *DAG) Successors(c *Component) []*Component {
	ids := d.successors[c.id]
	out := make([]*Component, len(ids))
	for i, id := range ids {
		out[i] = d.components[id]
	}
	return out
}

// OwnerOf returns the component containing node n, and whether n was part
// of the input graph.
func (d *DAG) OwnerOf(n graph.Node) (*Component, bool) {
	id, ok := d.ownerOf[n]
	if !ok {
		return nil, false
	}
	return d.components[id], true
}

type frame struct {
	node graph.Node
	iter int
}

// Compute runs the iterative Tarjan SCC algorithm over g.
func Compute(g *graph.Graph) *DAG {
	var (
		indexCounter int
		indices      = make(map[graph.Node]int)
		lowlink      = make(map[graph.Node]int)
		onStack      = make(map[graph.Node]bool)
		tstack       []graph.Node
		rawComps     [][]graph.Node
	)

	for _, root := range g.Nodes() {
		if _, visited := indices[root]; visited {
			continue
		}

		callStack := []frame{{node: root}}
		for len(callStack) > 0 {
			top := &callStack[len(callStack)-1]
			v := top.node

			if top.iter == 0 {
				indices[v] = indexCounter
				lowlink[v] = indexCounter
				indexCounter++
				tstack = append(tstack, v)
				onStack[v] = true
			}

			neighbors := g.Neighbors(v)
			descended := false
			for top.iter < len(neighbors) {
				w := neighbors[top.iter]
				top.iter++
				if _, visited := indices[w]; !visited {
					callStack = append(callStack, frame{node: w})
					descended = true
					break
				}
				if onStack[w] && lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			}
			if descended {
				continue
			}

			callStack = callStack[:len(callStack)-1]
			if len(callStack) > 0 {
				parent := &callStack[len(callStack)-1]
				if lowlink[v] < lowlink[parent.node] {
					lowlink[parent.node] = lowlink[v]
				}
			}

			if lowlink[v] == indices[v] {
				var comp []graph.Node
				for {
					n := len(tstack) - 1
					w := tstack[n]
					tstack = tstack[:n]
					onStack[w] = false
					comp = append(comp, w)
					if w == v {
						break
					}
				}
				rawComps = append(rawComps, comp)
			}
		}
	}

	dag := &DAG{
		successors: make(map[int][]int),
		ownerOf:    make(map[graph.Node]int),
	}
	for id, files := range rawComps {
		dag.components = append(dag.components, &Component{id: id, Files: files})
		for _, f := range files {
			dag.ownerOf[f] = id
		}
	}

	seenEdge := make(map[[2]int]bool)
	for _, u := range g.Nodes() {
		cu := dag.ownerOf[u]
		for _, v := range g.Neighbors(u) {
			cv := dag.ownerOf[v]
			if cu == cv {
				continue
			}
			key := [2]int{cu, cv}
			if seenEdge[key] {
				continue
			}
			seenEdge[key] = true
			dag.successors[cu] = append(dag.successors[cu], cv)
		}
	}

	return dag
}

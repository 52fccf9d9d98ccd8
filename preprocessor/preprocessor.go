// Package preprocessor implements GraphPreprocessor (spec.md section 4.1):
// trimming a ClassGraph against include/exclude patterns, then collapsing
// nested-class identifiers into their enclosing top-level identifier.
package preprocessor

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/bazelbuild/BUILD-file-generator/graph"
)

// Preprocessor holds the compiled include/exclude patterns.
type Preprocessor struct {
	Include *regexp2.Regexp
	Exclude *regexp2.Regexp
}

// New returns a Preprocessor over the already-compiled include and exclude
// patterns. A nil pattern matches nothing.
func New(include, exclude *regexp2.Regexp) *Preprocessor {
	return &Preprocessor{Include: include, Exclude: exclude}
}

func (p *Preprocessor) matches(re *regexp2.Regexp, s string) bool {
	if re == nil {
		return false
	}
	ok, err := re.MatchString(s)
	return err == nil && ok
}

func (p *Preprocessor) kept(id string) bool {
	return p.matches(p.Include, id) && !p.matches(p.Exclude, id)
}

// Preprocess runs the trim pass followed by the collapse pass, in that
// order, as required by spec.md section 4.1.
func (p *Preprocessor) Preprocess(g *graph.Graph) *graph.Graph {
	return p.collapse(p.trim(g))
}

// trim keeps a node iff it matches Include and not Exclude, and keeps only
// edges between two kept nodes.
func (p *Preprocessor) trim(g *graph.Graph) *graph.Graph {
	out := graph.New()
	for _, n := range g.Nodes() {
		if p.kept(string(n)) {
			out.AddNode(n)
		}
	}
	for _, n := range g.Nodes() {
		if !p.kept(string(n)) {
			continue
		}
		for _, m := range g.Neighbors(n) {
			if p.kept(string(m)) {
				out.AddEdge(n, m)
			}
		}
	}
	return out
}

// collapse replaces every surviving identifier with its enclosing
// top-level identifier (the prefix before the first "$"). Self-loops
// introduced by collapsing distinct inner classes of the same enclosing
// class are dropped by graph.Graph.AddEdge.
func (p *Preprocessor) collapse(g *graph.Graph) *graph.Graph {
	out := graph.New()
	topLevel := func(id string) graph.Node {
		if i := strings.IndexByte(id, '$'); i >= 0 {
			return graph.Node(id[:i])
		}
		return graph.Node(id)
	}
	for _, n := range g.Nodes() {
		out.AddNode(topLevel(string(n)))
	}
	for _, n := range g.Nodes() {
		for _, m := range g.Neighbors(n) {
			out.AddEdge(topLevel(string(n)), topLevel(string(m)))
		}
	}
	return out
}

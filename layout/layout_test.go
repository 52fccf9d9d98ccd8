package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bazelbuild/BUILD-file-generator/graph"
	"github.com/bazelbuild/BUILD-file-generator/scc"
)

func TestPlanGroupsMultiDirComponentUnderCommonAncestor(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("/x/foo/Foo.java", "/x/bar/Bar.java")
	g.AddEdge("/x/bar/Bar.java", "/x/foo/Foo.java")

	dag := scc.Compute(g)
	layoutMap := Plan(dag.Components())

	assert.Equal(t, "/x", layoutMap["/x/foo"])
	assert.Equal(t, "/x", layoutMap["/x/bar"])
}

func TestPlanKeepsIndependentComponentsInDistinctPackages(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddNode("/a/A.java")
	g.AddNode("/b/B.java")

	dag := scc.Compute(g)
	layoutMap := Plan(dag.Components())

	assert.Equal(t, "/a", layoutMap["/a"])
	assert.Equal(t, "/b", layoutMap["/b"])
}

func TestDirOf(t *testing.T) {
	t.Parallel()

	layoutMap := map[string]string{"/x/foo": "/x"}
	assert.Equal(t, "/x", DirOf(layoutMap, graph.Node("/x/foo/Foo.java")))
}

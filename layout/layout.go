// Package layout implements PackageLayoutPlanner (spec.md section 4.5): it
// assigns every component a BUILD-file directory by union-finding the
// directories its files live in and collapsing each equivalence class to
// its longest common path prefix.
package layout

import (
	"sort"

	"github.com/bazelbuild/BUILD-file-generator/graph"
	"github.com/bazelbuild/BUILD-file-generator/internal/pathutil"
	"github.com/bazelbuild/BUILD-file-generator/internal/unionfind"
	"github.com/bazelbuild/BUILD-file-generator/scc"
)

// Plan returns a mapping from every directory touched by any component to
// its assigned PackageDir.
func Plan(components []*scc.Component) map[string]string {
	uf := unionfind.New()

	dirsOf := func(c *scc.Component) []string {
		seen := make(map[string]bool)
		var dirs []string
		for _, f := range c.Files {
			d := pathutil.Dir(string(f))
			if !seen[d] {
				seen[d] = true
				dirs = append(dirs, d)
			}
		}
		return dirs
	}

	for _, c := range components {
		dirs := dirsOf(c)
		if len(dirs) == 0 {
			continue
		}
		first := dirs[0]
		uf.Find(first)
		for _, d := range dirs[1:] {
			uf.Union(first, d)
		}
	}

	result := make(map[string]string)
	for _, members := range uf.Groups() {
		sort.Strings(members)
		prefix := pathutil.LongestCommonPathPrefix(members)
		for _, m := range members {
			result[m] = prefix
		}
	}
	return result
}

// DirOf resolves the PackageDir assigned to a file, given the component it
// belongs to.
func DirOf(layoutMap map[string]string, file graph.Node) string {
	return layoutMap[pathutil.Dir(string(file))]
}

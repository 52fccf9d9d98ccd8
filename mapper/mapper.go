// Package mapper implements ClassToSourceMapper (spec.md section 4.3): it
// consumes the preprocessed ClassGraph and the class-to-file map supplied in
// ParserOutput and produces the FileGraph that SccEngine operates on.
package mapper

import (
	"strings"

	buildgenerrors "github.com/bazelbuild/BUILD-file-generator/errors"
	"github.com/bazelbuild/BUILD-file-generator/graph"
	"github.com/bazelbuild/BUILD-file-generator/internal/pathutil"
)

// Map builds the FileGraph. Classes absent from classToFile are excluded —
// they are out-of-project or externally-resolved and handled by
// BuildRuleBuilder instead (spec.md section 4.3).
func Map(cg *graph.Graph, classToFile map[string]string) (*graph.Graph, error) {
	for _, n := range cg.Nodes() {
		if strings.ContainsRune(string(n), '$') {
			return nil, buildgenerrors.NewInputInvariantError(
				"class-to-source mapping received inner-class id " + string(n))
		}
	}

	fg := graph.New()
	for _, n := range cg.Nodes() {
		if f, ok := classToFile[string(n)]; ok {
			fg.AddNode(graph.Node(pathutil.Normalize(f)))
		}
	}
	for _, u := range cg.Nodes() {
		fu, ok := classToFile[string(u)]
		if !ok {
			continue
		}
		for _, v := range cg.Neighbors(u) {
			fv, ok := classToFile[string(v)]
			if !ok {
				continue
			}
			fg.AddEdge(graph.Node(pathutil.Normalize(fu)), graph.Node(pathutil.Normalize(fv)))
		}
	}
	return fg, nil
}

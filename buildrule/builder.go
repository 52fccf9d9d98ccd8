// Package buildrule implements BuildRuleBuilder (spec.md section 4.7): for
// each component it derives a target name, a package-relative label, and
// the creation-command list, and it computes the deduplicated set of
// successor labels — both other project rules and externally-resolved
// dependencies — that CommandEmitter turns into "add deps" commands.
package buildrule

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/bazelbuild/BUILD-file-generator/graph"
	"github.com/bazelbuild/BUILD-file-generator/internal/pathutil"
	"github.com/bazelbuild/BUILD-file-generator/rulekind"
	"github.com/bazelbuild/BUILD-file-generator/scc"
)

// multiFileTargetPrefix names every hashed, multi-file (collapsed-cycle)
// target; spec.md section 4.7 calls this "a fixed identifier".
const multiFileTargetPrefix = "lib"

// Rule is a single project BUILD rule. External dependencies never get a
// Rule of their own — they are referenced purely by label.
type Rule struct {
	Package       string
	Target        string
	Label         string
	Kind          string
	Files         []string
	ExtraCommands []string
}

// CreationCommands returns the "new", "add srcs" and extra-command lines
// for this rule, in that order, per spec.md section 4.7.
func (r *Rule) CreationCommands() []string {
	pkgLabel := fmt.Sprintf("//%s:__pkg__", r.Package)
	sortedFiles := append([]string(nil), r.Files...)
	sort.Strings(sortedFiles)

	rel := make([]string, len(sortedFiles))
	for i, f := range sortedFiles {
		rel[i] = pathutil.Relativize(r.Package, f)
	}

	cmds := make([]string, 0, 2+len(r.ExtraCommands))
	cmds = append(cmds, fmt.Sprintf("new %s %s|%s", r.Kind, r.Target, pkgLabel))
	cmds = append(cmds, fmt.Sprintf("add srcs %s|%s", joinSpace(rel), r.Label))
	for _, extra := range r.ExtraCommands {
		cmds = append(cmds, fmt.Sprintf("%s|%s", extra, r.Label))
	}
	return cmds
}

func joinSpace(ss []string) string {
	out := ss[0]
	for _, s := range ss[1:] {
		out += " " + s
	}
	return out
}

// Builder constructs a Rule per component plus its successor labels.
type Builder struct {
	DAG           *scc.DAG
	ClassGraph    *graph.Graph
	ClassToFile   map[string]string
	ExternalRules map[string]string // class id -> label, from the resolver chain
	FileHints     map[string][]rulekind.Hint
	LayoutMap     map[string]string
	WorkspaceRoot string
}

// Result is the Builder's output for one component.
type Result struct {
	Component       *scc.Component
	Rule            *Rule
	SuccessorLabels []string
}

// Build returns one Result per component, in the DAG's reverse-topological
// order.
func (b *Builder) Build() ([]*Result, error) {
	fileToClasses := make(map[string][]string)
	for cls, file := range b.ClassToFile {
		fileToClasses[file] = append(fileToClasses[file], cls)
	}
	for _, classes := range fileToClasses {
		sort.Strings(classes)
	}

	components := b.DAG.Components()
	results := make([]*Result, 0, len(components))
	ruleLabelOf := make(map[*scc.Component]string, len(components))

	for _, c := range components {
		rule, err := b.buildRule(c)
		if err != nil {
			return nil, err
		}
		ruleLabelOf[c] = rule.Label
		results = append(results, &Result{Component: c, Rule: rule})
	}

	for i, c := range components {
		labels := make(map[string]bool)
		for _, succ := range b.DAG.Successors(c) {
			labels[ruleLabelOf[succ]] = true
		}
		for _, f := range c.Files {
			for _, cls := range fileToClasses[string(f)] {
				for _, neighbor := range b.ClassGraph.Neighbors(graph.Node(cls)) {
					if _, inProject := b.ClassToFile[string(neighbor)]; inProject {
						continue
					}
					if label, ok := b.ExternalRules[string(neighbor)]; ok {
						labels[label] = true
					}
				}
			}
		}
		sorted := make([]string, 0, len(labels))
		for l := range labels {
			sorted = append(sorted, l)
		}
		sort.Strings(sorted)
		results[i].SuccessorLabels = sorted
	}

	return results, nil
}

func (b *Builder) buildRule(c *scc.Component) (*Rule, error) {
	files := make([]string, len(c.Files))
	for i, f := range c.Files {
		files[i] = string(f)
	}

	pkgDir := pathutil.Dir(files[0])
	if mapped, ok := b.LayoutMap[pkgDir]; ok {
		pkgDir = mapped
	}

	var hints []rulekind.Hint
	for _, f := range files {
		hints = append(hints, b.FileHints[f]...)
	}
	kind, extra, err := rulekind.Merge(hints)
	if err != nil {
		return nil, err
	}

	target := targetName(pkgDir, files)
	relPkg := pathutil.Relativize(b.WorkspaceRoot, pkgDir)

	return &Rule{
		Package:       relPkg,
		Target:        target,
		Label:         fmt.Sprintf("//%s:%s", relPkg, target),
		Kind:          kind,
		Files:         files,
		ExtraCommands: extra,
	}, nil
}

// targetName implements spec.md section 4.7's target-name rule. files is
// in Tarjan pop order, which the multi-file hash treats as the
// "insertion order" of the component's files.
func targetName(pkgDir string, files []string) string {
	if len(files) == 1 {
		return pathutil.SingleFileTargetName(pkgDir, files[0])
	}

	var concat string
	for _, f := range files {
		concat += pathutil.Base(f)
	}
	sum := xxhash.Sum64String(concat)
	return multiFileTargetPrefix + "_" + strconv.FormatUint(sum, 16)
}

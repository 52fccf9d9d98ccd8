// Package pipeline implements the Pipeline orchestrator (spec.md section
// 4.9): the Loading -> Preprocessing -> Resolving -> Mapping -> SCC ->
// Planning -> Building -> Emitting -> Done state machine that wires every
// other package together for one run. Run stops after Building; the
// caller performs Emitting with the emit package.
package pipeline

import (
	"context"
	"os"
	"strings"

	buildgenerrors "github.com/bazelbuild/BUILD-file-generator/errors"
	"github.com/bazelbuild/BUILD-file-generator/graph"
	"github.com/bazelbuild/BUILD-file-generator/internal/pathutil"
	"github.com/bazelbuild/BUILD-file-generator/layout"
	"github.com/bazelbuild/BUILD-file-generator/mapper"
	"github.com/bazelbuild/BUILD-file-generator/options"
	"github.com/bazelbuild/BUILD-file-generator/parserio"
	"github.com/bazelbuild/BUILD-file-generator/preprocessor"
	"github.com/bazelbuild/BUILD-file-generator/resolve"
	"github.com/bazelbuild/BUILD-file-generator/rulekind"
	"github.com/bazelbuild/BUILD-file-generator/scc"

	"github.com/bazelbuild/BUILD-file-generator/buildrule"
)

// Pipeline runs one end-to-end build-rule generation over a single
// ParserOutput.
type Pipeline struct {
	Opts *options.Options
}

// New returns a Pipeline configured by opts.
func New(opts *options.Options) *Pipeline {
	return &Pipeline{Opts: opts}
}

// resolvers builds the ClassResolver chain. UserMappingResolver and the
// ExternalResolvers run first: both are authoritative, operator-curated
// sources for classes with no source file in this workspace (the common
// case for a genuine external dependency). SourceFileResolver runs last
// and only ever sees whatever neither of those claimed, so its built-in
// coverage threshold (spec.md section 4.2) reflects classes nothing could
// account for, rather than failing the run on the first external class it
// is asked about.
func (p *Pipeline) resolvers() ([]resolve.Resolver, error) {
	var chain []resolve.Resolver

	if p.Opts.UserMappingPath != "" {
		f, err := os.Open(p.Opts.UserMappingPath)
		if err != nil {
			return nil, buildgenerrors.WrapConfigError(err)
		}
		defer f.Close()
		r, err := resolve.LoadUserMapping(f)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}

	for _, cmd := range p.Opts.ExternalResolvers {
		chain = append(chain, resolve.NewExternalResolver(cmd))
	}

	chain = append(chain, resolve.NewSourceFileResolver(
		p.Opts.ContentRoots, p.Opts.WorkspaceRoot, p.Opts.SourceExt, p.Opts.ResolveThreshold))

	return chain, nil
}

// Run executes the state machine up to Building and returns the
// BuildRuleBuilder results; turning them into the command stream (with
// emit) is left to the caller.
func (p *Pipeline) Run(ctx context.Context, in *parserio.ParserOutput) ([]*buildrule.Result, error) {
	// Loading: the raw ClassGraph, as supplied.
	rawGraph := graph.New()
	for cls, deps := range in.ClassToClass {
		rawGraph.AddNode(graph.Node(cls))
		for _, dep := range deps {
			rawGraph.AddEdge(graph.Node(cls), graph.Node(dep))
		}
	}

	// Preprocessing: trim then collapse.
	pp := preprocessor.New(p.Opts.IncludePattern, p.Opts.ExcludePattern)
	classGraph := pp.Preprocess(rawGraph)

	p.logFilteredDependencies(rawGraph, classGraph)

	// Resolving: classes the preprocessed graph mentions but that have no
	// in-project source file, i.e. they need an external label.
	var unresolved []string
	for _, n := range classGraph.Nodes() {
		if _, inProject := in.ClassToFile[string(n)]; !inProject {
			unresolved = append(unresolved, string(n))
		}
	}

	resolvers, err := p.resolvers()
	if err != nil {
		return nil, err
	}

	externalRules, remaining, err := resolve.Chain(ctx, resolvers, unresolved)
	if err != nil {
		return nil, err
	}
	if len(remaining) > 0 && p.Opts.Logger != nil {
		p.Opts.Logger.Warnf("%d classes could not be resolved to a rule; omitting them", len(remaining))
	}

	// Mapping: ClassGraph + ClassToFile -> FileGraph.
	fileGraph, err := mapper.Map(classGraph, in.ClassToFile)
	if err != nil {
		return nil, err
	}

	// SCC: FileGraph -> ComponentDAG.
	dag := scc.Compute(fileGraph)

	// Planning: components -> package directories.
	layoutMap := layout.Plan(dag.Components())

	// Building: components -> rules + successor labels.
	fileHints := make(map[string][]rulekind.Hint, len(in.FileToRuleHint))
	for file, hint := range in.FileToRuleHint {
		normalized := pathutil.Normalize(file)
		fileHints[normalized] = append(fileHints[normalized], rulekind.Hint{
			Path:          normalized,
			Kind:          hint.Kind,
			ExtraCommands: hint.ExtraCommands,
		})
	}

	builder := &buildrule.Builder{
		DAG:           dag,
		ClassGraph:    classGraph,
		ClassToFile:   in.ClassToFile,
		ExternalRules: externalRules,
		FileHints:     fileHints,
		LayoutMap:     layoutMap,
		WorkspaceRoot: p.Opts.WorkspaceRoot,
	}

	return builder.Build()
}

// logFilteredDependencies warns, once per run, about dependency edges in
// the raw graph whose target class trim dropped because it did not pass
// the include/exclude filters. Inner-class targets are looked up by their
// top-level identifier, since collapsing renames rather than drops them.
// Per spec.md section 7 this is expected (they are presumed external) and
// must never fail the run.
func (p *Pipeline) logFilteredDependencies(raw, preprocessed *graph.Graph) {
	if p.Opts.Logger == nil {
		return
	}
	kept := make(map[graph.Node]bool, preprocessed.NumNodes())
	for _, n := range preprocessed.Nodes() {
		kept[n] = true
	}
	dropped := 0
	for _, n := range raw.Nodes() {
		for _, m := range raw.Neighbors(n) {
			if i := strings.IndexByte(string(m), '$'); i >= 0 {
				m = m[:i]
			}
			if !kept[m] {
				dropped++
			}
		}
	}
	if dropped > 0 {
		p.Opts.Logger.Warnf("%d dependency edges target classes outside the include/exclude filters; treating them as external", dropped)
	}
}

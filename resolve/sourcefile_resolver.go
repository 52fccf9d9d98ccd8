package resolve

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	buildgenerrors "github.com/bazelbuild/BUILD-file-generator/errors"
	"github.com/bazelbuild/BUILD-file-generator/internal/pathutil"
)

// SourceFileResolver turns a.b.C into candidate paths
// root/a/b/C.<SourceExt> across ContentRoots, in order, and resolves to
// the first hit. A class resolved this way is assumed to already have a
// rule declared in its natural package, so it resolves to a label rather
// than being folded into this run's FileGraph (spec.md section 4.2; the
// "classic filesystem-probing resolver" of the Open Question in section 9).
//
// It enforces the coverage threshold itself: if more than Threshold of the
// classes it is asked about fail to resolve, the run fails with
// ResolveCoverageError (spec.md sections 4.2, 7, and 9).
type SourceFileResolver struct {
	ContentRoots  []string
	WorkspaceRoot string
	SourceExt     string
	Threshold     float64

	// stat is overridable for tests.
	stat func(string) (os.FileInfo, error)
}

func NewSourceFileResolver(contentRoots []string, workspaceRoot, sourceExt string, threshold float64) *SourceFileResolver {
	return &SourceFileResolver{
		ContentRoots:  contentRoots,
		WorkspaceRoot: workspaceRoot,
		SourceExt:     sourceExt,
		Threshold:     threshold,
		stat:          os.Stat,
	}
}

func (r *SourceFileResolver) Name() string { return "source-file" }

func (r *SourceFileResolver) Resolve(_ context.Context, classes []string) (map[string]string, error) {
	resolved := make(map[string]string)

	for _, cls := range classes {
		if strings.ContainsRune(cls, '$') {
			return nil, buildgenerrors.NewInputInvariantError(
				"SourceFileResolver received inner-class id " + cls)
		}

		relPath := strings.ReplaceAll(cls, ".", "/") + r.SourceExt
		for _, root := range r.ContentRoots {
			candidate := pathutil.Normalize(filepath.Join(root, relPath))
			if r.exists(candidate) {
				resolved[cls] = r.labelFor(candidate)
				break
			}
		}
	}

	if len(classes) > 0 {
		unresolvedFraction := float64(len(classes)-len(resolved)) / float64(len(classes))
		if unresolvedFraction > r.Threshold {
			return nil, buildgenerrors.NewResolveCoverageError(len(classes), len(classes)-len(resolved))
		}
	}

	return resolved, nil
}

func (r *SourceFileResolver) exists(path string) bool {
	statFn := r.stat
	if statFn == nil {
		statFn = os.Stat
	}
	info, err := statFn(path)
	return err == nil && !info.IsDir()
}

func (r *SourceFileResolver) labelFor(absPath string) string {
	pkgDir := pathutil.Dir(absPath)
	relPkg := pathutil.Relativize(r.WorkspaceRoot, pkgDir)
	target := pathutil.SingleFileTargetName(pkgDir, absPath)
	return "//" + relPkg + ":" + target
}

// Package options implements Options & configuration validation
// (SPEC_FULL.md section 4.10): compiling the include/exclude patterns,
// resolving paths, and merging CLI-supplied fields over sane defaults.
package options

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/dlclark/regexp2"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	buildgenerrors "github.com/bazelbuild/BUILD-file-generator/errors"
)

// DefaultExcludePattern mirrors spec.md section 6: classes generated by
// AutoValue never get a rule of their own.
const DefaultExcludePattern = "AutoValue_.*"

// DefaultResolveThreshold is the maximum fraction of include-matched
// classes SourceFileResolver is allowed to leave unresolved before Pipeline
// fails the run.
const DefaultResolveThreshold = 0.70

// DefaultSourceExt is the file extension SourceFileResolver probes for.
const DefaultSourceExt = ".java"

// Raw carries the as-parsed CLI flag values, before pattern compilation or
// path resolution. Any field left at its zero value is filled in from
// DefaultOptions by NewOptions.
type Raw struct {
	IncludePattern    string
	ExcludePattern    string
	ContentRoots      []string
	UserMappingPath   string
	ExternalResolvers []string
	WorkspaceRoot     string
	DryRun            bool
	ResolveThreshold  float64
	LogLevel          string
}

// ResolveThreshold above is a ceiling on the unresolved fraction, not a
// floor on the resolved fraction: at the default 0.70, a run where 70% or
// fewer of the include-matched classes fail to resolve still succeeds.
//
// Options is the fully validated, ready-to-use configuration for one run.
type Options struct {
	IncludePattern    *regexp2.Regexp
	ExcludePattern    *regexp2.Regexp
	ContentRoots      []string
	UserMappingPath   string
	ExternalResolvers []string
	WorkspaceRoot     string
	DryRun            bool
	ResolveThreshold  float64
	SourceExt         string

	Logger   *logrus.Entry
	Writer   io.Writer
	ErrWriter io.Writer
}

// DefaultOptions returns the baseline Raw configuration: no content roots,
// no user mapping, no external resolvers, the AutoValue exclude pattern,
// the default resolve threshold, and the current working directory as the
// workspace root.
func DefaultOptions() Raw {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Raw{
		IncludePattern:   ".*",
		ExcludePattern:   DefaultExcludePattern,
		WorkspaceRoot:    cwd,
		ResolveThreshold: DefaultResolveThreshold,
		LogLevel:         "info",
	}
}

// NewOptions merges raw over DefaultOptions() with dario.cat/mergo, then
// compiles patterns and resolves paths. Every validation failure is
// collected into a single *multierror.Error rather than returning on the
// first one, so a ConfigError reports every problem in one run.
func NewOptions(raw Raw) (*Options, error) {
	merged := DefaultOptions()
	if err := mergo.Merge(&merged, raw, mergo.WithOverride); err != nil {
		return nil, buildgenerrors.WrapConfigError(err)
	}

	var errs *multierror.Error

	include, err := regexp2.Compile(merged.IncludePattern, regexp2.None)
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	exclude, err := regexp2.Compile(merged.ExcludePattern, regexp2.None)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	if merged.ResolveThreshold < 0 || merged.ResolveThreshold > 1 {
		errs = multierror.Append(errs, buildgenerrors.NewConfigError(
			"--resolve-threshold must be between 0 and 1"))
	}

	for _, resolver := range merged.ExternalResolvers {
		if filepath.IsAbs(resolver) {
			continue
		}
		if _, lookErr := exec.LookPath(resolver); lookErr != nil {
			errs = multierror.Append(errs, buildgenerrors.NewConfigError(
				"--external-resolver "+resolver+" is not an absolute path and was not found on PATH"))
		}
	}

	workspaceRoot, err := filepath.Abs(merged.WorkspaceRoot)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	contentRoots := make([]string, len(merged.ContentRoots))
	for i, root := range merged.ContentRoots {
		abs, err := filepath.Abs(root)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		contentRoots[i] = abs
	}

	if errs.ErrorOrNil() != nil {
		return nil, buildgenerrors.WrapConfigError(errs)
	}

	level, err := logrus.ParseLevel(merged.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger := logrus.New()
	logger.SetLevel(level)

	return &Options{
		IncludePattern:    include,
		ExcludePattern:    exclude,
		ContentRoots:      contentRoots,
		UserMappingPath:   merged.UserMappingPath,
		ExternalResolvers: merged.ExternalResolvers,
		WorkspaceRoot:     workspaceRoot,
		DryRun:            merged.DryRun,
		ResolveThreshold:  merged.ResolveThreshold,
		SourceExt:         DefaultSourceExt,
		Logger:            logger.WithFields(logrus.Fields{}),
		Writer:            os.Stdout,
		ErrWriter:         os.Stderr,
	}, nil
}

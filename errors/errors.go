// Package errors defines the taxonomy of fatal conditions the pipeline can
// raise and maps each one to the process exit code it carries.
package errors

import (
	goerrors "github.com/go-errors/errors"
)

// ConfigError wraps a bad flag or unparseable pattern caught at the CLI
// boundary. Exit code 1.
type ConfigError struct {
	cause error
}

func NewConfigError(msg string) *ConfigError {
	return &ConfigError{cause: goerrors.Errorf(msg)}
}

func WrapConfigError(err error) *ConfigError {
	return &ConfigError{cause: goerrors.Wrap(err, 1)}
}

func (e *ConfigError) Error() string { return e.cause.Error() }
func (e *ConfigError) Unwrap() error { return e.cause }

// InputInvariantError is raised when an inner-class identifier (containing
// "$") is found where the pipeline requires a top-level identifier.
type InputInvariantError struct {
	cause error
}

func NewInputInvariantError(msg string) *InputInvariantError {
	return &InputInvariantError{cause: goerrors.Errorf(msg)}
}

func (e *InputInvariantError) Error() string { return e.cause.Error() }
func (e *InputInvariantError) Unwrap() error { return e.cause }

// ResolveCoverageError is raised when SourceFileResolver fails to resolve
// more than the configured fraction of include-matched classes.
type ResolveCoverageError struct {
	cause                error
	Attempted, Unresolved int
}

func NewResolveCoverageError(attempted, unresolved int) *ResolveCoverageError {
	return &ResolveCoverageError{
		cause: goerrors.Errorf(
			"resolved %d/%d include-matched classes; verify the include pattern and content roots",
			attempted-unresolved, attempted,
		),
		Attempted:  attempted,
		Unresolved: unresolved,
	}
}

func (e *ResolveCoverageError) Error() string { return e.cause.Error() }
func (e *ResolveCoverageError) Unwrap() error { return e.cause }

// ResolveConflictError is raised when two resolvers disagree on the label
// for the same class id.
type ResolveConflictError struct {
	cause                error
	ClassID              string
	FirstLabel, SecondLabel string
}

func NewResolveConflictError(classID, first, second string) *ResolveConflictError {
	return &ResolveConflictError{
		cause:       goerrors.Errorf("class %q resolved to both %q and %q", classID, first, second),
		ClassID:     classID,
		FirstLabel:  first,
		SecondLabel: second,
	}
}

func (e *ResolveConflictError) Error() string { return e.cause.Error() }
func (e *ResolveConflictError) Unwrap() error { return e.cause }

// UserMappingError is raised for a malformed user-mapping file: a duplicate
// key, a "$" in a key, or an unparseable line.
type UserMappingError struct {
	cause error
}

func NewUserMappingError(msg string) *UserMappingError {
	return &UserMappingError{cause: goerrors.Errorf(msg)}
}

func (e *UserMappingError) Error() string { return e.cause.Error() }
func (e *UserMappingError) Unwrap() error { return e.cause }

// RuleKindPrefixMismatchError is raised when a component's hinted rule
// kinds do not share a common "prefix_" language family.
type RuleKindPrefixMismatchError struct {
	cause error
}

func NewRuleKindPrefixMismatchError(msg string) *RuleKindPrefixMismatchError {
	return &RuleKindPrefixMismatchError{cause: goerrors.Errorf(msg)}
}

func (e *RuleKindPrefixMismatchError) Error() string { return e.cause.Error() }
func (e *RuleKindPrefixMismatchError) Unwrap() error { return e.cause }

// RuleKindMergeAmbiguousError is raised when a component's hinted rule
// kind suffixes don't match one of the known merge recipes.
type RuleKindMergeAmbiguousError struct {
	cause error
}

func NewRuleKindMergeAmbiguousError(msg string) *RuleKindMergeAmbiguousError {
	return &RuleKindMergeAmbiguousError{cause: goerrors.Errorf(msg)}
}

func (e *RuleKindMergeAmbiguousError) Error() string { return e.cause.Error() }
func (e *RuleKindMergeAmbiguousError) Unwrap() error { return e.cause }

// ExternalResolverError is raised when a child resolver process exits
// non-zero or closes its output prematurely.
type ExternalResolverError struct {
	cause error
}

func NewExternalResolverError(msg string, cause error) *ExternalResolverError {
	if cause != nil {
		return &ExternalResolverError{cause: goerrors.WrapPrefix(cause, msg, 1)}
	}
	return &ExternalResolverError{cause: goerrors.Errorf(msg)}
}

func (e *ExternalResolverError) Error() string { return e.cause.Error() }
func (e *ExternalResolverError) Unwrap() error { return e.cause }

// ExitCode maps an error produced anywhere in the pipeline to the exit code
// defined in spec.md section 6: 0 for nil, 1 for configuration mistakes, 2
// for every other taxonomy member.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if _, ok := err.(*ConfigError); ok {
		return 1
	}
	return 2
}

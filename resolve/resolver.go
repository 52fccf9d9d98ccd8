// Package resolve implements ClassResolver and its three variants
// (spec.md section 4.2): SourceFileResolver, UserMappingResolver and
// ExternalResolver. Each resolver maps a subset of the classes it is
// handed to a BUILD-rule label, silently omitting the rest; the Pipeline
// composes them in priority order.
package resolve

import "context"

// Resolver maps class identifiers to rule labels. Implementations resolve
// whatever subset of classes they can and omit the rest from the returned
// map — they never error just because a class was unresolvable.
type Resolver interface {
	// Name identifies the resolver for diagnostics.
	Name() string
	// Resolve attempts to resolve every id in classes, returning a map of
	// only the ones it could.
	Resolve(ctx context.Context, classes []string) (map[string]string, error)
}

// Chain runs resolvers in priority order against the still-unresolved set,
// returning the merged class->label map. It fails with ResolveConflictError
// if two resolvers disagree on the same class, which should be impossible
// in normal operation since each resolver is only offered classes no
// earlier resolver claimed — the check exists because a resolver is not
// required to only return classes it was offered.
func Chain(ctx context.Context, resolvers []Resolver, classes []string) (map[string]string, []string, error) {
	resolved := make(map[string]string)
	remaining := append([]string(nil), classes...)

	for _, r := range resolvers {
		if len(remaining) == 0 {
			break
		}
		found, err := r.Resolve(ctx, remaining)
		if err != nil {
			return nil, nil, err
		}

		for _, cls := range classes {
			existing, done := resolved[cls]
			if !done {
				continue
			}
			if label, ok := found[cls]; ok && label != existing {
				return nil, nil, conflictError(cls, existing, label)
			}
		}

		next := remaining[:0:0]
		for _, cls := range remaining {
			label, ok := found[cls]
			if !ok {
				next = append(next, cls)
				continue
			}
			resolved[cls] = label
		}
		remaining = next
	}

	return resolved, remaining, nil
}

// Package rulekind implements RuleKindMerger (spec.md section 4.6):
// deriving a single rule kind for a component from the multiset of
// per-file rule-kind hints contributed by its files.
package rulekind

import (
	"sort"
	"strings"

	buildgenerrors "github.com/bazelbuild/BUILD-file-generator/errors"
)

// Hint is one file's rule-kind contribution, as carried in ParserOutput's
// file_to_rule_hint field.
type Hint struct {
	Path          string
	Kind          string
	ExtraCommands []string
}

// Merge elects a single kind for the component and returns the
// deduplicated union of every hint's extra commands, in first-seen order.
func Merge(hints []Hint) (kind string, extra []string, err error) {
	kindSet := make(map[string]bool)
	for _, h := range hints {
		kindSet[h.Kind] = true
	}

	kinds := make([]string, 0, len(kindSet))
	for k := range kindSet {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	switch len(kinds) {
	case 0:
		return "", nil, buildgenerrors.NewRuleKindMergeAmbiguousError("no rule-kind hints for component")
	case 1:
		kind = kinds[0]
	default:
		kind, err = mergeMultiple(kinds)
		if err != nil {
			return "", nil, err
		}
	}

	seen := make(map[string]bool)
	for _, h := range hints {
		for _, e := range h.ExtraCommands {
			if seen[e] {
				continue
			}
			seen[e] = true
			extra = append(extra, e)
		}
	}
	return kind, extra, nil
}

func mergeMultiple(kinds []string) (string, error) {
	var prefix string
	suffixes := make(map[string]bool)
	for i, k := range kinds {
		parts := strings.SplitN(k, "_", 2)
		if len(parts) != 2 {
			return "", buildgenerrors.NewRuleKindPrefixMismatchError(
				"rule kind " + k + " has no language prefix to merge on")
		}
		p, s := parts[0], parts[1]
		if i == 0 {
			prefix = p
		} else if p != prefix {
			return "", buildgenerrors.NewRuleKindPrefixMismatchError(
				"rule kinds " + strings.Join(kinds, ", ") + " do not share a common prefix")
		}
		suffixes[s] = true
	}

	switch {
	case setEquals(suffixes, "library", "test"):
		return prefix + "_test", nil
	case setEquals(suffixes, "library", "binary"):
		return prefix + "_binary", nil
	case suffixes["image"] && isSubsetOf(suffixes, "library", "binary", "image"):
		return prefix + "_image", nil
	default:
		return "", buildgenerrors.NewRuleKindMergeAmbiguousError(
			"rule kind suffixes " + strings.Join(kinds, ", ") + " do not match a known merge recipe")
	}
}

func setEquals(set map[string]bool, members ...string) bool {
	if len(set) != len(members) {
		return false
	}
	for _, m := range members {
		if !set[m] {
			return false
		}
	}
	return true
}

func isSubsetOf(set map[string]bool, allowed ...string) bool {
	allowedSet := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = true
	}
	for k := range set {
		if !allowedSet[k] {
			return false
		}
	}
	return true
}

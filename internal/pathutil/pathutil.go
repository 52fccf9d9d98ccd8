// Package pathutil holds the small set of path-segment operations shared by
// PackageLayoutPlanner and BuildRuleBuilder: normalization, component-wise
// (not character-wise) common-prefix computation, and relativization.
// Everything here treats paths as "/"-separated after normalization,
// regardless of host OS, so that emitted labels are stable across
// platforms per spec.md section 5.
package pathutil

import (
	"path"
	"strings"
)

// Normalize cleans p and converts OS separators to "/".
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Clean(p)
}

// Dir returns the "/"-normalized parent directory of p.
func Dir(p string) string {
	return path.Dir(Normalize(p))
}

// Base returns the final path segment of p.
func Base(p string) string {
	return path.Base(Normalize(p))
}

// Segments splits a normalized absolute path into its components, dropping
// the leading empty component produced by the leading "/".
func Segments(p string) []string {
	p = Normalize(p)
	if p == "/" {
		return nil
	}
	trimmed := strings.TrimPrefix(p, "/")
	return strings.Split(trimmed, "/")
}

// Join rebuilds an absolute path from segments produced by Segments.
func Join(segments []string) string {
	return "/" + strings.Join(segments, "/")
}

// CommonPrefixSegments returns the longest sequence of leading segments
// shared by a and b.
func CommonPrefixSegments(a, b []string) []string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	out := make([]string, i)
	copy(out, a[:i])
	return out
}

// LongestCommonPathPrefix returns the longest path that is a
// component-wise prefix of every directory in dirs. The absolute root "/"
// is always a valid (if degenerate) answer.
func LongestCommonPathPrefix(dirs []string) string {
	if len(dirs) == 0 {
		return "/"
	}
	common := Segments(dirs[0])
	for _, d := range dirs[1:] {
		common = CommonPrefixSegments(common, Segments(d))
	}
	return Join(common)
}

// Relativize returns path p expressed relative to directory base, using
// "/" separators. Both must already be normalized absolute paths.
func Relativize(base, p string) string {
	baseSegs := Segments(base)
	pathSegs := Segments(p)
	i := 0
	for i < len(baseSegs) && i < len(pathSegs) && baseSegs[i] == pathSegs[i] {
		i++
	}
	return strings.Join(pathSegs[i:], "/")
}

// StripExt removes a single trailing filename extension, if present.
func StripExt(name string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext)
}

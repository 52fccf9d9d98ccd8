package pathutil

import "strings"

// SingleFileTargetName derives the target name for a single-file component
// or for a filesystem-probed external reference: the dash-joined path
// segments of file relative to pkgDir, with the trailing extension
// removed, per spec.md section 4.7.
func SingleFileTargetName(pkgDir, file string) string {
	rel := Relativize(pkgDir, file)
	segments := strings.Split(rel, "/")
	if n := len(segments); n > 0 {
		segments[n-1] = StripExt(segments[n-1])
	}
	return strings.Join(segments, "-")
}

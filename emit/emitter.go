// Package emit implements CommandEmitter (spec.md section 4.8): it walks
// the BuildRuleBuilder results in reverse-topological order and writes the
// creation commands for each rule followed by a single sorted "add deps"
// command, when that rule has successors.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bazelbuild/BUILD-file-generator/buildrule"
)

// Lines returns the full command stream for results as individual lines,
// in the order CommandEmitter defines: results must already be in the
// BuildRuleBuilder's reverse-topological order; Lines does not reorder
// them.
func Lines(results []*buildrule.Result) []string {
	var cmds []string
	for _, r := range results {
		cmds = append(cmds, r.Rule.CreationCommands()...)
		if len(r.SuccessorLabels) == 0 {
			continue
		}
		cmds = append(cmds, fmt.Sprintf("add deps %s|%s", strings.Join(r.SuccessorLabels, " "), r.Rule.Label))
	}
	return cmds
}

// Emit writes the full command stream for results to w, newline-terminated.
func Emit(w io.Writer, results []*buildrule.Result) error {
	bw := bufio.NewWriter(w)
	for _, cmd := range Lines(results) {
		if _, err := fmt.Fprintln(bw, cmd); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Package parserio implements the wire boundary (SPEC_FULL.md section
// 4.13): decoding the MessagePack-encoded ParserOutput from the upstream
// AST parser, and writing the newline-terminated CommandStream.
package parserio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// RuleHint is one file's contribution to the rule-kind election and extra
// commands, the wire shape of spec.md section 6's file_to_rule_hint value.
type RuleHint struct {
	Kind          string   `msgpack:"kind"`
	ExtraCommands []string `msgpack:"extra_commands"`
}

// ParserOutput is the complete input to one pipeline run, as produced by
// the upstream AST parser (out of scope for this repository per spec.md
// section 1).
type ParserOutput struct {
	ClassToClass   map[string][]string `msgpack:"class_to_class"`
	FileToRuleHint map[string]RuleHint `msgpack:"file_to_rule_hint"`
	ClassToFile    map[string]string   `msgpack:"class_to_file"`
}

// Decode reads a MessagePack-encoded ParserOutput from r.
func Decode(r io.Reader) (*ParserOutput, error) {
	var out ParserOutput
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding parser output: %w", err)
	}
	if out.ClassToClass == nil {
		out.ClassToClass = map[string][]string{}
	}
	if out.FileToRuleHint == nil {
		out.FileToRuleHint = map[string]RuleHint{}
	}
	if out.ClassToFile == nil {
		out.ClassToFile = map[string]string{}
	}
	return &out, nil
}

// WriteCommandStream writes cmds to w, one per line, newline-terminated,
// per spec.md section 6: the command stream is always plain UTF-8 text,
// never MessagePack-framed, regardless of how ParserOutput arrived.
func WriteCommandStream(w io.Writer, cmds []string) error {
	bw := bufio.NewWriter(w)
	for _, cmd := range cmds {
		if _, err := fmt.Fprintln(bw, cmd); err != nil {
			return err
		}
	}
	return bw.Flush()
}

package resolve

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	buildgenerrors "github.com/bazelbuild/BUILD-file-generator/errors"
)

// ExternalResolver launches a child process, writes every unresolved class
// name on its own line to the child's stdin, then closes it, reads
// (class, label) line pairs from the child's stdout until EOF, and waits
// for the child to exit. The three steps are strictly sequential — no
// internal concurrency — per spec.md section 5, and every handle is
// released on all exit paths, including failures.
type ExternalResolver struct {
	Command string
	Args    []string

	// newCmd is overridable for tests.
	newCmd func(ctx context.Context, name string, args ...string) *exec.Cmd
}

func NewExternalResolver(command string, args ...string) *ExternalResolver {
	return &ExternalResolver{
		Command: command,
		Args:    args,
		newCmd:  exec.CommandContext,
	}
}

func (r *ExternalResolver) Name() string { return "external:" + r.Command }

func (r *ExternalResolver) Resolve(ctx context.Context, classes []string) (map[string]string, error) {
	if len(classes) == 0 {
		return nil, nil
	}

	newCmd := r.newCmd
	if newCmd == nil {
		newCmd = exec.CommandContext
	}
	cmd := newCmd(ctx, r.Command, r.Args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, buildgenerrors.NewExternalResolverError("opening stdin to "+r.Command, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, buildgenerrors.NewExternalResolverError("opening stdout from "+r.Command, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, buildgenerrors.NewExternalResolverError("starting "+r.Command, err)
	}

	for _, cls := range classes {
		if _, err := fmt.Fprintln(stdin, cls); err != nil {
			_ = stdin.Close()
			_ = cmd.Wait()
			return nil, buildgenerrors.NewExternalResolverError("writing class name to "+r.Command, err)
		}
	}
	if err := stdin.Close(); err != nil {
		_ = cmd.Wait()
		return nil, buildgenerrors.NewExternalResolverError("closing stdin to "+r.Command, err)
	}

	resolved, readErr := readPairs(stdout)

	waitErr := cmd.Wait()
	if waitErr != nil {
		return nil, buildgenerrors.NewExternalResolverError(r.Command+" exited with an error", waitErr)
	}
	if readErr != nil {
		return nil, buildgenerrors.NewExternalResolverError(r.Command+" closed its output prematurely", readErr)
	}

	return resolved, nil
}

func readPairs(r io.Reader) (map[string]string, error) {
	resolved := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for {
		classID, ok, err := nextLine(scanner)
		if err != nil {
			return resolved, err
		}
		if !ok {
			return resolved, nil
		}
		label, ok, err := nextLine(scanner)
		if err != nil {
			return resolved, err
		}
		if !ok {
			return resolved, fmt.Errorf("unpaired class name %q at end of output", classID)
		}
		resolved[classID] = label
	}
}

func nextLine(scanner *bufio.Scanner) (string, bool, error) {
	if !scanner.Scan() {
		return "", false, scanner.Err()
	}
	return strings.TrimRight(scanner.Text(), "\r"), true, nil
}

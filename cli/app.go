// Package cli wires the buildgen urfave/cli/v2 app: flag parsing into
// options.Options, reading ParserOutput from stdin, running the Pipeline,
// and either printing or dispatching the resulting CommandStream
// (SPEC_FULL.md section 4.11).
package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	buildgenerrors "github.com/bazelbuild/BUILD-file-generator/errors"
	"github.com/bazelbuild/BUILD-file-generator/emit"
	"github.com/bazelbuild/BUILD-file-generator/options"
	"github.com/bazelbuild/BUILD-file-generator/parserio"
	"github.com/bazelbuild/BUILD-file-generator/pipeline"
)

// EditTool dispatches a non-dry-run command stream to the downstream BUILD
// file edit tool. This repository's core stops at the command stream
// (spec.md section 1); EditTool is the single injection point a caller
// that owns such a tool would fill in.
type EditTool func(cmds []string) error

// App wraps the urfave/cli/v2 app with the one field NewApp needs beyond
// what Options already carries.
type App struct {
	*cli.App
	editTool EditTool
}

// NewApp builds the buildgen CLI app. editTool may be nil, in which case
// a non-dry-run invocation still prints the stream to stdout and logs a
// warning that no edit tool is configured.
//
// ExitErrHandler only writes the diagnostic; it never exits the process
// itself (unlike cli.HandleExitCoder's default), so the exit code chosen
// by the errors package stays reachable to the caller of Run, which
// cmd/buildgen needs to call os.Exit with it.
func NewApp(stdin io.Reader, stdout, stderr io.Writer, editTool EditTool) *App {
	app := cli.NewApp()
	app.Name = "buildgen"
	app.Usage = "buildgen [options] < parser-output.msgpack"
	app.UsageText = "buildgen analyzes a class-dependency graph and emits a deterministic BUILD-file edit-command stream."
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = flags()
	app.ExitErrHandler = exitErrHandler
	app.Action = action(stdin, editTool)

	return &App{App: app, editTool: editTool}
}

func exitErrHandler(c *cli.Context, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(c.App.ErrWriter, err.Error())
}

func action(stdin io.Reader, editTool EditTool) cli.ActionFunc {
	return func(c *cli.Context) error {
		opts, err := options.NewOptions(rawOptionsFromContext(c))
		if err != nil {
			return err
		}
		opts.Writer = c.App.Writer
		opts.ErrWriter = c.App.ErrWriter
		if level, parseErr := logrus.ParseLevel(c.String(flagLogLevel)); parseErr == nil {
			opts.Logger.Logger.SetLevel(level)
		}

		in, err := parserio.Decode(stdin)
		if err != nil {
			return buildgenerrors.WrapConfigError(err)
		}

		results, err := pipeline.New(opts).Run(c.Context, in)
		if err != nil {
			return err
		}

		cmds := emit.Lines(results)

		if opts.DryRun || editTool == nil {
			if editTool == nil && !opts.DryRun {
				opts.Logger.Warn("no downstream edit tool configured; printing the command stream instead")
			}
			return parserio.WriteCommandStream(opts.Writer, cmds)
		}
		return editTool(cmds)
	}
}

// Run is a convenience wrapper over the embedded *cli.App's Run, matching
// the os.Args calling convention cmd/buildgen uses.
func (a *App) Run(args []string) error {
	return a.App.Run(args)
}

// ExitCode maps a Run error to the process exit code spec.md section 6
// requires. cmd/buildgen is the only caller expected to act on it.
func ExitCode(err error) int {
	return buildgenerrors.ExitCode(err)
}

// Command buildgen reads a ParserOutput from stdin and writes the
// resulting BUILD-file edit-command stream to stdout.
package main

import (
	"os"

	buildgencli "github.com/bazelbuild/BUILD-file-generator/cli"
)

func main() {
	app := buildgencli.NewApp(os.Stdin, os.Stdout, os.Stderr, nil)
	err := app.Run(os.Args)
	os.Exit(buildgencli.ExitCode(err))
}

package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/bazelbuild/BUILD-file-generator/options"
)

const (
	flagIncludePattern    = "include-pattern"
	flagExcludePattern    = "exclude-pattern"
	flagContentRoot       = "content-root"
	flagUserMappingPath   = "user-mapping-path"
	flagExternalResolver  = "external-resolver"
	flagWorkspaceRoot     = "workspace-root"
	flagDryRun            = "dry-run"
	flagResolveThreshold  = "resolve-threshold"
	flagLogLevel          = "log-level"
)

// flags returns the flag set named in SPEC_FULL.md section 4.11, mirroring
// spec.md section 6's recognized options exactly.
func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  flagIncludePattern,
			Value: ".*",
			Usage: "regex the trim phase's accept predicate tests class identifiers against",
		},
		&cli.StringFlag{
			Name:  flagExcludePattern,
			Value: options.DefaultExcludePattern,
			Usage: "regex excluding generated identifiers from the trim phase",
		},
		&cli.StringSliceFlag{
			Name:  flagContentRoot,
			Usage: "directory searched by the source-file resolver, in priority order (repeatable)",
		},
		&cli.StringFlag{
			Name:  flagUserMappingPath,
			Usage: "text file of \"classid,label\" lines consumed by the user-mapping resolver",
		},
		&cli.StringSliceFlag{
			Name:  flagExternalResolver,
			Usage: "executable invoked as an external class resolver, in priority order (repeatable)",
		},
		&cli.StringFlag{
			Name:  flagWorkspaceRoot,
			Usage: "base directory for label computation (default: current directory)",
		},
		&cli.BoolFlag{
			Name:  flagDryRun,
			Usage: "print the command stream instead of handing it to the downstream edit tool",
		},
		&cli.Float64Flag{
			Name:  flagResolveThreshold,
			Value: options.DefaultResolveThreshold,
			Usage: "maximum fraction of include-matched classes the source-file resolver may leave unresolved",
		},
		&cli.StringFlag{
			Name:  flagLogLevel,
			Value: "info",
			Usage: "debug, info, warn, or error",
		},
	}
}

// rawOptionsFromContext reads every flag named above into an options.Raw.
// A flag the user didn't set carries its Value from flags() if it has one,
// and is otherwise left at its zero value so NewOptions' mergo pass fills
// it in from DefaultOptions.
func rawOptionsFromContext(c *cli.Context) options.Raw {
	return options.Raw{
		IncludePattern:    c.String(flagIncludePattern),
		ExcludePattern:    c.String(flagExcludePattern),
		ContentRoots:      c.StringSlice(flagContentRoot),
		UserMappingPath:   c.String(flagUserMappingPath),
		ExternalResolvers: c.StringSlice(flagExternalResolver),
		WorkspaceRoot:     c.String(flagWorkspaceRoot),
		DryRun:            c.Bool(flagDryRun),
		ResolveThreshold:  c.Float64(flagResolveThreshold),
		LogLevel:          c.String(flagLogLevel),
	}
}

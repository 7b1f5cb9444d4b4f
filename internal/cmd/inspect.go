package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/pmx/internal/pmx"
)

// inspect returns the pmx inspect subcommand.
func inspect() (*cli.Command, error) {
	var (
		options pmx.InspectOptions
		file    string
	)

	return cli.New(
		"inspect",
		cli.Short("Show how pmx reads a collection or test plan"),
		cli.Arg(&file, "file", "Path to the .json or .jmx file"),
		cli.Flag(
			&options.Format,
			"format",
			'f',
			"Output format, one of (json|yaml|toml|curl)",
			cli.FlagDefault("json"),
		),
		cli.Flag(&options.Strict, "strict", flag.NoShortHand, "Fail on unsupported features e.g. file uploads"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := pmx.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Inspect(ctx, file, options)
		}),
	)
}

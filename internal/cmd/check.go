package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/pmx/internal/pmx"
)

const checkLong = `
The path argument may be a directory or a file.

If it is the name of a .json or .jmx file, then this file alone is checked
for validity. Collections must also satisfy the Postman collection v2.1 schema.

If it is a directory, this directory is scanned recursively for all
files with the '.json' or '.jmx' extension and any matching files will be validated.
`

// check returns the check subcommand.
func check() (*cli.Command, error) {
	var options pmx.CheckOptions

	return cli.New(
		"check",
		cli.Short("Check collections and test plans for errors"),
		cli.Long(checkLong),
		cli.Arg(&options.Path, "path", "Path to check, may be directory or file", cli.ArgDefault(".")),
		cli.Flag(&options.Config, "config", 'c', "Path to a config file", cli.FlagDefault(pmx.ConfigFile)),
		cli.Flag(&options.Strict, "strict", flag.NoShortHand, "Fail on unsupported features e.g. file uploads"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := pmx.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Check(ctx, options)
		}),
	)
}

package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/pmx/internal/pmx"
)

const convertLong = `
The path argument may be a directory or a file.

If it is the name of a .json or .jmx file, then this file alone is converted.
Collections (.json) become test plans and test plans (.jmx) become collections,
unless '--to' says otherwise.

If it is a directory, this directory is scanned recursively for all files
with either extension, or only the one '--to' converts from, and every
matching file is converted.

The result is written next to the input unless '--output' is given. An output
ending in the target extension is used as the file name, anything else is
treated as a directory.

Defaults for '--host', '--output' and '--strict' may be set in a pmx.toml file.
`

// convert returns the convert subcommand.
func convert() (*cli.Command, error) {
	var options pmx.ConvertOptions

	return cli.New(
		"convert",
		cli.Short("Convert collections and test plans"),
		cli.Long(convertLong),
		cli.Arg(&options.Path, "path", "Path to convert, may be directory or file", cli.ArgDefault(".")),
		cli.Flag(&options.Output, "output", 'o', "Output file or directory"),
		cli.Flag(&options.Direction, "to", 't', "Target format, one of (jmx|postman)"),
		cli.Flag(
			&options.HostVariable,
			"host",
			flag.NoShortHand,
			"JMeter variable standing in for the scheme and host (default tests_url)",
		),
		cli.Flag(&options.Config, "config", 'c', "Path to a config file", cli.FlagDefault(pmx.ConfigFile)),
		cli.Flag(&options.Strict, "strict", flag.NoShortHand, "Fail on unsupported features e.g. file uploads"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := pmx.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Convert(ctx, options)
		}),
	)
}

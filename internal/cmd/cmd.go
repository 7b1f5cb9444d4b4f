// Package cmd implements pmx's CLI.
package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/pmx/internal/pmx"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the pmx CLI.
func Build() (*cli.Command, error) {
	var (
		debug  bool
		config string
	)

	return cli.New(
		"pmx",
		cli.Short("Convert between Postman collections and JMeter test plans"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Pick a file and a conversion interactively", "pmx"),
		cli.Example("Convert a Postman collection into a JMeter test plan", "pmx convert ./pets.json"),
		cli.Example("Convert a JMeter test plan into a Postman collection", "pmx convert ./pets.jmx --output ./collections"),
		cli.Example("Convert every collection in a directory (recursively)", "pmx convert ./api --to jmx"),
		cli.Example("Check collections and test plans for errors", "pmx check ./api"),
		cli.Example("Show what pmx makes of a collection as curl commands", "pmx inspect ./pets.json --format curl"),
		cli.Flag(&debug, "debug", 'd', "Enable debug logs"),
		cli.Flag(&config, "config", 'c', "Path to a config file", cli.FlagDefault(pmx.ConfigFile)),
		cli.SubCommands(convert, check, inspect),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := pmx.New(debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Interactive(ctx, config, debug)
		}),
	)
}

package pmx

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/pmx/internal/convert"
	"go.followtheprocess.codes/pmx/internal/format"
	"golang.org/x/sync/errgroup"
)

// CheckOptions are the options passed to the check subcommand.
type CheckOptions struct {
	// Path is the path (file or directory) to check.
	Path string

	// Config is the path to a pmx.toml config file.
	Config string

	// Strict makes unsupported features an error.
	Strict bool

	// Debug enables debug logging.
	Debug bool
}

// Check implements the check subcommand.
//
// A file is valid if it parses, a collection must also satisfy the collection schema.
func (a App) Check(ctx context.Context, options CheckOptions) error {
	logger := a.logger.Prefixed("check").With(slog.String("path", options.Path))
	logger.Debug("Checking path")

	config, err := LoadConfig(options.Config)
	if err != nil {
		return err
	}

	strict := options.Strict || config.Strict

	paths, err := collect(options.Path, convert.CollectionExt, convert.TestPlanExt)
	if err != nil {
		return err
	}

	logger.Debug("Checking files given by path", slog.Int("number", len(paths)), slog.Bool("strict", strict))

	group, ctx := errgroup.WithContext(ctx)

	for _, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return a.checkFile(path, strict)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for _, path := range paths {
		msg.Fsuccess(a.stdout, "%s is valid", path)
	}

	return nil
}

// checkFile runs a parse check on a single file.
func (a App) checkFile(path string, strict bool) error {
	importer, err := format.ForFile(path, nil, strict)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	// We don't actually care about the result, just that it parses
	if _, err := importer.Import(file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

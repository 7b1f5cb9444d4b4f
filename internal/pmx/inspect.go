package pmx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.followtheprocess.codes/pmx/internal/format"
)

// InspectOptions are the flags passed to the inspect subcommand.
type InspectOptions struct {
	// Format is the format of the dump e.g. json, curl etc.
	Format string

	// Strict makes unsupported features an error.
	Strict bool

	// Debug controls debug logging.
	Debug bool
}

// Validate reports whether the InspectOptions is valid, returning a non-nil
// error if it's not.
func (i InspectOptions) Validate() error {
	if i.Format == "" {
		return errors.New("--format cannot be empty")
	}

	if _, err := format.Lookup(i.Format); err != nil {
		return fmt.Errorf("invalid option for --format: %w", err)
	}

	return nil
}

// Inspect handles the inspect subcommand, it parses file and dumps the resulting
// tree to stdout in the requested format.
func (a App) Inspect(ctx context.Context, file string, options InspectOptions) error {
	logger := a.logger.Prefixed("inspect")

	logger.Debug("Inspect configuration", slog.String("options", fmt.Sprintf("%+v", options)))

	if err := options.Validate(); err != nil {
		return err
	}

	// Validated above
	exporter, _ := format.Lookup(options.Format)

	importer, err := format.ForFile(file, nil, options.Strict)
	if err != nil {
		return err
	}

	start := time.Now()

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	root, err := importer.Import(f)
	if err != nil {
		return err
	}

	logger.Debug(
		"Parsed file successfully",
		slog.String("file", file),
		slog.Int("requests", len(root.Requests())),
		slog.Duration("took", time.Since(start)),
	)

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := exporter.Export(a.stdout, root); err != nil {
		return fmt.Errorf("could not export %s as %s: %w", file, options.Format, err)
	}

	return nil
}

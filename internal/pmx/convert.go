package pmx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/pmx/internal/convert"
	"go.followtheprocess.codes/pmx/internal/testplan"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentConversions bounds the number of files converted at once.
const maxConcurrentConversions = 8

// ConvertOptions are the options passed to the convert subcommand.
type ConvertOptions struct {
	// Path is the file or directory to convert.
	Path string

	// Output is the output file or directory, empty means next to each input.
	Output string

	// Direction is the name of the conversion direction, empty means detect it
	// from each file's extension.
	Direction string

	// HostVariable is the JMeter variable prefixed to sampler paths.
	HostVariable string

	// Config is the path to a pmx.toml config file.
	Config string

	// Strict makes unsupported features an error.
	Strict bool

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the ConvertOptions is valid, returning an error
// if it's not.
//
// nil means the options are valid.
func (c ConvertOptions) Validate() error {
	if c.Path == "" {
		return errors.New("path cannot be empty")
	}

	if c.Direction != "" {
		if _, err := convert.ParseDirection(c.Direction); err != nil {
			return fmt.Errorf("invalid option for --to: %w", err)
		}
	}

	return nil
}

// merge fills anything not set on the command line from config.
func (c ConvertOptions) merge(config Config) ConvertOptions {
	if c.HostVariable == "" {
		c.HostVariable = config.HostVariable
	}

	if c.Output == "" {
		c.Output = config.Output
	}

	c.Strict = c.Strict || config.Strict

	return c
}

// Convert implements the convert subcommand.
//
// Every file is converted independently, a failure in one does not stop the others
// but is reported once all of them are done. Files whose target is another input of
// the batch, or shared with another file, are not converted at all.
func (a App) Convert(ctx context.Context, options ConvertOptions) error {
	logger := a.logger.Prefixed("convert").With(slog.String("path", options.Path))

	if err := options.Validate(); err != nil {
		return err
	}

	config, err := LoadConfig(options.Config)
	if err != nil {
		return err
	}

	options = options.merge(config)
	logger.Debug("Convert configuration", slog.String("options", fmt.Sprintf("%+v", options)))

	direction := convert.Unknown
	exts := []string{convert.CollectionExt, convert.TestPlanExt}

	if options.Direction != "" {
		// Already validated
		direction, _ = convert.ParseDirection(options.Direction)
		exts = []string{direction.SourceExt()}
	}

	paths, err := collect(options.Path, exts...)
	if err != nil {
		return err
	}

	logger.Debug("Converting files given by path", slog.Int("number", len(paths)))

	if len(paths) == 0 {
		msg.Fwarn(a.stdout, "No files to convert in %s", options.Path)
		return nil
	}

	settings := convert.Options{
		Logger:       logger,
		HostVariable: options.HostVariable,
		Strict:       options.Strict,
	}

	if settings.HostVariable == "" {
		settings.HostVariable = testplan.DefaultHostVariable
	}

	written := make([]string, len(paths))
	errs := plan(paths, options.Output, direction)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentConversions)

	for i, path := range paths {
		if errs[i] != nil {
			logger.Debug("Skipping file", slog.String("source", path), slog.String("reason", errs[i].Error()))
			continue
		}

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return err
			}

			start := time.Now()

			out, err := convert.File(path, options.Output, direction, settings)
			if err != nil {
				errs[i] = fmt.Errorf("could not convert %s: %w", path, err)
				return nil
			}

			logger.Debug(
				"Converted file",
				slog.String("source", path),
				slog.String("target", out),
				slog.Duration("took", time.Since(start)),
			)

			written[i] = out

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for i, path := range paths {
		if errs[i] != nil {
			fmt.Fprintf(a.stderr, "%s %s\n", failure.Text("Failed:"), dimmed.Text(path))
			continue
		}

		msg.Fsuccess(a.stdout, "Converted %s to %s", path, written[i])
	}

	return errors.Join(errs...)
}

package pmx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"go.followtheprocess.codes/pmx/internal/convert"
)

// Answers are the responses to the interactive conversion prompts.
type Answers struct {
	// Direction is the name of the chosen conversion
	Direction string

	// Source is the file or directory to convert
	Source string

	// Output is where to put the result, empty for next to the source
	Output string
}

// Options returns the [ConvertOptions] the answers describe.
func (a Answers) Options(config string, debug bool) ConvertOptions {
	return ConvertOptions{
		Path:      strings.TrimSpace(a.Source),
		Output:    strings.TrimSpace(a.Output),
		Direction: a.Direction,
		Config:    config,
		Debug:     debug,
	}
}

// Interactive prompts for a conversion and then runs it, it is what pmx does
// when invoked with no subcommand.
func (a App) Interactive(ctx context.Context, config string, debug bool) error {
	logger := a.logger.Prefixed("interactive")

	answers, err := a.ask(ctx)
	if err != nil {
		return err
	}

	logger.Debug(
		"Got answers",
		slog.String("direction", answers.Direction),
		slog.String("source", answers.Source),
		slog.String("output", answers.Output),
	)

	return a.Convert(ctx, answers.Options(config, debug))
}

// ask runs the prompts.
func (a App) ask(ctx context.Context) (Answers, error) {
	answers := Answers{Direction: "jmx"}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("pmx %s", a.version)).
				Description("What would you like to convert?").
				Options(
					huh.NewOption("Postman collection to JMeter test plan", "jmx"),
					huh.NewOption("JMeter test plan to Postman collection", "postman"),
				).
				Value(&answers.Direction),
			huh.NewInput().
				Title("Source").
				Description("A file or a directory to convert every file in").
				Value(&answers.Source).
				Validate(validateSource),
			huh.NewInput().
				Title("Output").
				Description("A file or directory, leave empty to write next to the source").
				Value(&answers.Output),
		),
	).WithInput(a.stdin).WithOutput(a.stdout)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Answers{}, errors.New("conversion cancelled")
		}

		return Answers{}, fmt.Errorf("could not run prompts: %w", err)
	}

	return answers, nil
}

// validateSource checks the answer to the source prompt exists.
func validateSource(source string) error {
	source = strings.TrimSpace(source)
	if source == "" {
		return errors.New("source cannot be empty")
	}

	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("%s does not exist", source)
	}

	if !info.IsDir() {
		if _, err := convert.Detect(source); err != nil {
			return err
		}
	}

	return nil
}

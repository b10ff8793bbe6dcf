// Command probegrid writes a uniform (r, z) probe-point grid to a text file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/RMahshie/probegrid/internal/config"
	"github.com/RMahshie/probegrid/internal/grid"
)

// ExitError is an error that carries a specific process exit code.
// An empty Message means the failure was already reported.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func main() {
	os.Exit(report(run(os.Args[1:], os.Stderr), os.Stderr))
}

// report prints err to stderr unless it was already logged and returns the exit code.
func report(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(stderr, exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintln(stderr, err)
	return 1
}

// run parses args, writes the grid and reports progress to stderr.
func run(args []string, stderr io.Writer) error {
	flags := pflag.NewFlagSet("probegrid", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, `
probegrid - write a uniform (r, z) probe-point grid.

Usage:
  probegrid [options]

Every option can also be set through the environment (R_MIN, R_STEPS, OUTPUT_PATH, ...)
or a .env.<ENVIRONMENT> file in the working directory.

Options:
`)
		flags.PrintDefaults()
	}
	config.RegisterFlags(flags)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}
	if flags.NArg() > 0 {
		return &ExitError{Code: 2, Message: "unexpected arguments: " + strings.Join(flags.Args(), " ")}
	}

	cfg, err := config.LoadWithFlags(flags)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	level, err := cfg.Log.ParseLevel()
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	r, z := cfg.Grid.R, cfg.Grid.Z
	logger.Info().
		Interface("r", r).
		Interface("z", z).
		Str("path", cfg.Grid.OutputPath).
		Msg("Writing probe grid")

	start := time.Now()
	if err := grid.WriteGrid(r, z, cfg.Grid.OutputPath); err != nil {
		logger.Error().Err(err).Msg("Failed to write probe grid")
		return &ExitError{Code: 1, Err: err}
	}

	logger.Info().
		Int64("lines", grid.LineCount(r, z)).
		Str("path", cfg.Grid.OutputPath).
		Dur("elapsed", time.Since(start)).
		Msg("Probe grid written")

	return nil
}

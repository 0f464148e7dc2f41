package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/ninjagen/internal/app"
	"github.com/vk/ninjagen/internal/ninja"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
// The command may appear before, between or after the flags.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("ninjagen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ninjagen - Generate ninja build files for C and C++ projects.

Usage:
  ninjagen [options] [COMMAND]

Commands:
  generate  Write <dest>/build.ninja (default)
  build     Generate, then run ninja in the build directory
  run       Generate, build, then run the produced executable

Options:
`)
		flagSet.PrintDefaults()
	}

	projectFlag := flagSet.String("C", ".", "Project directory.")
	destFlag := flagSet.String("dest", "build", "Build directory, relative to the project directory.")
	configFlag := flagSet.String("config", "", "Project file. Defaults to the first of ninjagen.hcl, ninjagen.yml, ninjagen.yaml.")
	widthFlag := flagSet.Int("width", ninja.DefaultWidth, "Line width of the generated file.")
	printFlag := flagSet.Bool("print", false, "Print the build file to stdout instead of writing it.")
	colorFlag := flagSet.String("color", app.ColorAuto, "Colorize printed output. Options: 'auto', 'always', 'never'.")
	treeFlag := flagSet.Bool("tree", false, "Build through the per-artifact tree instead of the dependency graph.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var positional []string
	rest := args
	for {
		if err := flagSet.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, true, nil
			}
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		if flagSet.NArg() == 0 {
			break
		}
		positional = append(positional, flagSet.Arg(0))
		rest = flagSet.Args()[1:]
	}
	slog.Debug("Arguments parsed successfully.", "positional", positional)

	if len(positional) > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("too many arguments: %s", strings.Join(positional, " "))}
	}
	command := app.CmdGenerate
	if len(positional) == 1 {
		command = app.Command(positional[0])
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ProjectDir: *projectFlag,
		BuildDir:   *destFlag,
		ConfigPath: *configFlag,
		Command:    command,
		Width:      *widthFlag,
		Print:      *printFlag,
		Color:      strings.ToLower(*colorFlag),
		Tree:       *treeFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

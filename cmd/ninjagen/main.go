package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/ninjagen/internal/app"
	"github.com/vk/ninjagen/internal/cli"
)

func main() {
	// Minimal logger until the app configures its own.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

// exitCode reports err on errW and maps it to a process exit code. A failed
// child process already reported its own failure, so only its code is kept.
func exitCode(err error, errW io.Writer) int {
	if err == nil {
		return 0
	}
	var procErr *app.ProcessExitError
	if errors.As(err, &procErr) {
		if procErr.Code <= 0 {
			return 1
		}
		return procErr.Code
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(errW, exitErr.Message)
		return exitErr.Code
	}
	fmt.Fprintln(errW, err)
	return 1
}

// run parses args and drives one App invocation.
func run(ctx context.Context, outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The writer panics on programming errors; surface them as a failure
	// instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	return app.NewApp(outW, errW, appConfig, app.Deps{}).Run(ctx)
}

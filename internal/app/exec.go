package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"
)

// Executor runs a program to completion and returns its exit code. A program
// that ran but failed is not an error; failing to start it is.
type Executor func(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error)

// ProcessExitError reports that a child process exited with a non-zero code.
// The code is meant to become the exit code of this process unmodified.
type ProcessExitError struct {
	Program string
	Code    int
}

func (e *ProcessExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Program, e.Code)
}

func execCommand(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitStatus(exitErr.ExitCode(), exitErr.Sys()), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

// exitStatus maps a child's exit code to the status a shell would report:
// 128+signal for a child killed by a signal, and 1 for any other negative
// code.
func exitStatus(code int, sys any) int {
	if code >= 0 {
		return code
	}
	if ws, ok := sys.(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return 1
}

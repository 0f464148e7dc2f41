// Package pkgconfig queries compile and link flags of system libraries
// through the pkg-config program.
package pkgconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrNotFound is returned by Query for packages pkg-config does not know.
var ErrNotFound = errors.New("package not found by pkg-config")

// Runner executes name with args and returns its standard output. A non-zero
// exit status must be reported as an *exec.ExitError.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Package holds the flags pkg-config reports for one library.
type Package struct {
	Name   string
	CFlags []string
	Libs   []string
}

// Client talks to pkg-config.
type Client struct {
	// Program is the pkg-config binary.
	Program string
	// Run executes Program; nil means os/exec.
	Run Runner
}

// New returns a client for $PKG_CONFIG, or pkg-config when unset.
func New() *Client {
	prog := os.Getenv("PKG_CONFIG")
	if prog == "" {
		prog = "pkg-config"
	}
	return &Client{Program: prog}
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stderr.Len() > 0 {
			exitErr.Stderr = stderr.Bytes()
		}
		return nil, err
	}
	return out, nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	if c.Run != nil {
		return c.Run(ctx, c.Program, args...)
	}
	return execRunner(ctx, c.Program, args...)
}

// Exists reports whether pkg-config knows name. Failing to run pkg-config at
// all is an error.
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	_, err := c.run(ctx, "--exists", name)
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, fmt.Errorf("run %s: %w", c.Program, err)
}

// Query returns the cflags and libs of name. Unknown packages fail with
// ErrNotFound.
func (c *Client) Query(ctx context.Context, name string) (*Package, error) {
	ok, err := c.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	cflags, err := c.words(ctx, "--cflags", name)
	if err != nil {
		return nil, err
	}
	libs, err := c.words(ctx, "--libs", name)
	if err != nil {
		return nil, err
	}
	return &Package{Name: name, CFlags: cflags, Libs: libs}, nil
}

// words runs pkg-config and splits its output with shell quoting rules.
func (c *Client) words(ctx context.Context, flag, name string) ([]string, error) {
	out, err := c.run(ctx, flag, name)
	if err != nil {
		return nil, fmt.Errorf("pkg-config %s %s: %w", flag, name, err)
	}
	words, err := shellquote.Split(strings.TrimSpace(string(out)))
	if err != nil {
		return nil, fmt.Errorf("pkg-config %s %s: parse output %q: %w", flag, name, out, err)
	}
	return words, nil
}

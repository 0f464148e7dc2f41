package app

import (
	"errors"
	"fmt"
)

// Command selects what happens after build.ninja is written.
type Command string

const (
	// CmdGenerate only writes the build file.
	CmdGenerate Command = "generate"
	// CmdBuild runs ninja on the build directory.
	CmdBuild Command = "build"
	// CmdRun builds, then runs the produced executable.
	CmdRun Command = "run"
)

// Color modes for printed output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds everything an App needs for one invocation.
type Config struct {
	ProjectDir string
	// BuildDir is resolved against ProjectDir when relative.
	BuildDir string
	// ConfigPath is resolved against ProjectDir when relative. Empty means
	// discover one of config.FileNames.
	ConfigPath string

	Command Command
	Width   int
	// Print renders to the output writer instead of build.ninja.
	Print bool
	Color string
	// Tree builds through ninja.Tree instead of the dependency graph.
	Tree bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectDir == "" {
		return nil, errors.New("ProjectDir is a required configuration field and cannot be empty")
	}
	if cfg.BuildDir == "" {
		return nil, errors.New("BuildDir is a required configuration field and cannot be empty")
	}
	switch cfg.Command {
	case "":
		cfg.Command = CmdGenerate
	case CmdGenerate, CmdBuild, CmdRun:
	default:
		return nil, fmt.Errorf("unknown command %q: must be %q, %q or %q", cfg.Command, CmdGenerate, CmdBuild, CmdRun)
	}
	if cfg.Print && cfg.Command != CmdGenerate {
		return nil, fmt.Errorf("-print cannot be combined with %q", cfg.Command)
	}
	switch cfg.Color {
	case "":
		cfg.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return nil, fmt.Errorf("invalid color mode %q: must be %q, %q or %q", cfg.Color, ColorAuto, ColorAlways, ColorNever)
	}
	if cfg.Width < 0 {
		return nil, fmt.Errorf("width must not be negative, got %d", cfg.Width)
	}
	return &cfg, nil
}

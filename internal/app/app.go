package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/vk/ninjagen/internal/config"
	"github.com/vk/ninjagen/internal/ctxlog"
	"github.com/vk/ninjagen/internal/hcl_adapter"
	"github.com/vk/ninjagen/internal/pkgconfig"
	"github.com/vk/ninjagen/internal/project"
	"github.com/vk/ninjagen/internal/toolchain"
	"github.com/vk/ninjagen/internal/yaml_adapter"
)

// Deps are the collaborators of an App. Nil fields get the real
// implementations.
type Deps struct {
	Loaders  config.Loaders
	Finder   *toolchain.Finder
	Packages project.PackageQuerier
	Exec     Executor
	// IsTerminal decides whether the output writer gets colors in auto mode.
	IsTerminal func(w io.Writer) bool
}

// App encapsulates the dependencies and configuration of one invocation.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config
	deps   Deps
}

// NewApp builds an App writing results to outW and logs and child stderr to
// errW.
func NewApp(outW, errW io.Writer, cfg *Config, deps Deps) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)

	if deps.Loaders == nil {
		deps.Loaders = config.Loaders{
			".hcl":  hcl_adapter.NewLoader(),
			".yml":  yaml_adapter.NewLoader(),
			".yaml": yaml_adapter.NewLoader(),
		}
	}
	if deps.Finder == nil {
		deps.Finder = &toolchain.Finder{}
	}
	if deps.Packages == nil {
		deps.Packages = pkgconfig.New()
	}
	if deps.Exec == nil {
		deps.Exec = execCommand
	}
	if deps.IsTerminal == nil {
		deps.IsTerminal = isTerminal
	}

	logger.Debug("App configured.", "project_dir", cfg.ProjectDir, "build_dir", cfg.BuildDir, "command", cfg.Command)
	return &App{outW: outW, errW: errW, logger: logger, config: cfg, deps: deps}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

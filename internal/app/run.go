package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vk/ninjagen/internal/config"
	"github.com/vk/ninjagen/internal/ninja"
	"github.com/vk/ninjagen/internal/pretty"
	"github.com/vk/ninjagen/internal/project"
)

// BuildFileName is the file written into the build directory.
const BuildFileName = "build.ninja"

// Run generates the build file and executes the configured command. A child
// process that fails yields a *ProcessExitError carrying its exit code.
func (a *App) Run(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	a.logger.Debug("App.Run method started.")

	layout, err := a.layout()
	if err != nil {
		return err
	}

	srcDir := filepath.Join(layout.ProjectDir, project.SourceDir)
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		return fmt.Errorf("source folder does not exist: %s", srcDir)
	}

	proj, err := a.loadProject(ctx, layout.ProjectDir)
	if err != nil {
		return err
	}

	w, err := a.generate(ctx, layout, proj)
	if err != nil {
		return err
	}

	if a.config.Print {
		return a.print(w)
	}

	if err := os.MkdirAll(layout.BuildDir, 0o755); err != nil {
		return fmt.Errorf("create build dir: %w", err)
	}
	if err := a.writeFile(w, filepath.Join(layout.BuildDir, BuildFileName)); err != nil {
		return err
	}

	switch a.config.Command {
	case CmdBuild:
		return a.ninja(ctx, layout)
	case CmdRun:
		if proj.Type.IsLibrary() {
			return fmt.Errorf("cannot run project %q: it builds a %s", proj.Name, proj.Type)
		}
		if err := a.ninja(ctx, layout); err != nil {
			return err
		}
		fmt.Fprintln(a.outW)
		return a.exec(ctx, filepath.Join(layout.BuildDir, proj.Name))
	default:
		fmt.Fprintf(a.outW, "Wrote output to %s\n", layout.BuildDir)
		return nil
	}
}

func (a *App) layout() (project.Layout, error) {
	projectDir, err := filepath.Abs(a.config.ProjectDir)
	if err != nil {
		return project.Layout{}, fmt.Errorf("resolve project dir: %w", err)
	}
	buildDir := a.config.BuildDir
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(projectDir, buildDir)
	}
	return project.Layout{ProjectDir: projectDir, BuildDir: filepath.Clean(buildDir)}, nil
}

// loadProject reads the project file, or uses defaults when there is none.
// The default name is the project directory's base name.
func (a *App) loadProject(ctx context.Context, projectDir string) (*config.Project, error) {
	path := a.config.ConfigPath
	switch {
	case path == "":
		found, err := config.Discover(projectDir)
		if err != nil {
			return nil, err
		}
		path = found
	case !filepath.IsAbs(path):
		path = filepath.Join(projectDir, path)
	}

	proj := &config.Project{}
	if path == "" {
		a.logger.Debug("No project file found, using defaults.", "dir", projectDir)
	} else {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		loader, err := a.deps.Loaders.For(path)
		if err != nil {
			return nil, err
		}
		if proj, err = loader.Load(ctx, path); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	proj.ApplyDefaults(filepath.Base(projectDir))
	if err := proj.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project configuration: %w", err)
	}
	a.logger.Debug("Project configuration loaded.", "path", path, "name", proj.Name, "language", proj.Language, "type", proj.Type)
	return proj, nil
}

// generate builds the project description and feeds it to a fresh writer.
func (a *App) generate(ctx context.Context, layout project.Layout, proj *config.Project) (*ninja.Writer, error) {
	compiler, linker, err := a.deps.Finder.Discover(proj.Language)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Toolchain discovered.", "compiler", compiler.Path(), "linker", linker.Path())

	b := &project.Builder{Compiler: compiler, Linker: linker, Packages: a.deps.Packages}
	w := ninja.NewWriter()

	if a.config.Tree {
		tree, err := b.Tree(ctx, layout, proj)
		if err != nil {
			return nil, fmt.Errorf("failed to build project tree: %w", err)
		}
		w.AddTree(tree)
		return w, nil
	}

	g, err := b.Graph(ctx, layout, proj)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.logger.Debug("Dependency graph built.", "node_count", g.Len(), "edge_count", g.EdgeCount())
	if err := g.WriteNinja(w); err != nil {
		return nil, fmt.Errorf("failed to emit dependency graph: %w", err)
	}
	return w, nil
}

func (a *App) writeFile(w *ninja.Writer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := w.Render(f, a.width()); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("Build file written.", "path", path)
	return nil
}

func (a *App) print(w *ninja.Writer) error {
	var err error
	switch {
	case a.config.Color == ColorAlways:
		pretty.ForceColor()
		err = w.RenderStyled(a.outW, a.width(), pretty.NewANSIStyler())
	case a.config.Color == ColorAuto && a.deps.IsTerminal(a.outW):
		err = w.RenderStyled(a.outW, a.width(), pretty.NewANSIStyler())
	default:
		err = w.Render(a.outW, a.width())
	}
	if err != nil {
		return fmt.Errorf("print build file: %w", err)
	}
	return nil
}

func (a *App) width() int {
	if a.config.Width == 0 {
		return ninja.DefaultWidth
	}
	return a.config.Width
}

func (a *App) ninja(ctx context.Context, layout project.Layout) error {
	return a.exec(ctx, "ninja", "-C", layout.BuildDir)
}

func (a *App) exec(ctx context.Context, name string, args ...string) error {
	a.logger.Debug("Running command.", "program", name, "args", args)
	code, err := a.deps.Exec(ctx, a.outW, a.errW, name, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if code != 0 {
		return &ProcessExitError{Program: name, Code: code}
	}
	return nil
}

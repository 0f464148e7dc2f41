package project

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/vk/ninjagen/internal/config"
	"github.com/vk/ninjagen/internal/ctxlog"
	"github.com/vk/ninjagen/internal/dag"
	"github.com/vk/ninjagen/internal/fsutil"
	"github.com/vk/ninjagen/internal/ninja"
	"github.com/vk/ninjagen/internal/pkgconfig"
	"github.com/vk/ninjagen/internal/toolchain"
)

// SourceDir is the directory, relative to the project root, scanned for
// sources.
const SourceDir = "src"

// ErrNoSources is returned when the source directory holds no compilable file.
var ErrNoSources = errors.New("no source files found")

// Layout locates a project on disk.
type Layout struct {
	ProjectDir string
	BuildDir   string
}

// PackageQuerier resolves system dependencies. *pkgconfig.Client implements
// it.
type PackageQuerier interface {
	Query(ctx context.Context, name string) (*pkgconfig.Package, error)
}

// Builder produces build descriptions with the configured toolchain.
type Builder struct {
	Compiler toolchain.Compiler
	Linker   toolchain.Linker
	Packages PackageQuerier
}

// step is one compilation: source path and object path, both relative to
// the build directory.
type step struct {
	source string
	object string
}

type plan struct {
	steps       []step
	entry       string
	compileRule ninja.Rule
	linkRule    ninja.Rule
	compileVars map[string]string
	linkVars    map[string]string
}

// Graph builds the dependency graph of proj. Objects are shared nodes, and
// the entrypoint is the only root.
func (b *Builder) Graph(ctx context.Context, layout Layout, proj *config.Project) (*dag.Graph, error) {
	p, err := b.plan(ctx, layout, proj)
	if err != nil {
		return nil, err
	}

	g := dag.New()
	objects := make([]dag.Handle, 0, len(p.steps))
	for _, s := range p.steps {
		src, err := g.AddSource(s.source)
		if err != nil {
			return nil, err
		}
		obj, err := g.AddNode(&dag.GeneratedNode{
			Rule:    p.compileRule,
			Outputs: []string{s.object},
			Vars:    p.compileVars,
		})
		if err != nil {
			return nil, err
		}
		if err := g.AddDependency(obj, src); err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}

	entry, err := g.AddNode(&dag.GeneratedNode{
		Rule:    p.linkRule,
		Outputs: []string{p.entry},
		Vars:    p.linkVars,
	})
	if err != nil {
		return nil, err
	}
	if err := g.AddDependencies(entry, objects...); err != nil {
		return nil, err
	}
	return g, nil
}

// Tree builds the same description as Graph as a ninja.Tree whose root is
// the entrypoint marked as the default target.
func (b *Builder) Tree(ctx context.Context, layout Layout, proj *config.Project) (ninja.Tree, error) {
	p, err := b.plan(ctx, layout, proj)
	if err != nil {
		return nil, err
	}

	deps := make([]ninja.Tree, 0, len(p.steps))
	for _, s := range p.steps {
		deps = append(deps, ninja.Generated{
			Name: s.object,
			Rule: p.compileRule,
			Deps: []ninja.Tree{ninja.Source{Path: s.source}},
			Vars: p.compileVars,
		})
	}
	return ninja.DefaultTarget{Inner: ninja.Generated{
		Name: p.entry,
		Rule: p.linkRule,
		Deps: deps,
		Vars: p.linkVars,
	}}, nil
}

func (b *Builder) plan(ctx context.Context, layout Layout, proj *config.Project) (*plan, error) {
	logger := ctxlog.FromContext(ctx)

	srcDir := filepath.Join(layout.ProjectDir, SourceDir)
	files, err := fsutil.FindFilesByExtension(srcDir, proj.Language.SourceExtensions()...)
	if err != nil {
		return nil, fmt.Errorf("scan sources in %s: %w", srcDir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, srcDir)
	}
	logger.Debug("Sources discovered.", "count", len(files), "dir", srcDir)

	kind := "exe"
	if proj.Type.IsLibrary() {
		kind = "lib"
	}
	objDir := kind + "." + proj.Name

	p := &plan{entry: entrypoint(proj)}
	seen := make(map[string]string, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(layout.BuildDir, f)
		if err != nil {
			return nil, fmt.Errorf("relativize %s: %w", f, err)
		}
		base := filepath.Base(f)
		obj := path.Join(objDir, strings.TrimSuffix(base, filepath.Ext(base))+".o")
		if prev, dup := seen[obj]; dup {
			return nil, fmt.Errorf("%s and %s: %w", prev, rel, &dag.DuplicateOutputError{Output: obj})
		}
		seen[obj] = rel
		p.steps = append(p.steps, step{source: filepath.ToSlash(rel), object: obj})
	}

	cflags, libs, err := b.systemFlags(ctx, proj.SystemDependencies)
	if err != nil {
		return nil, err
	}
	cflags = append(cflags, proj.DefineFlags()...)
	if proj.Type == config.SharedLibrary {
		cflags = append(cflags, "-fPIC")
	}
	cflags = append(cflags, proj.ExtraBuildFlags...)
	libs = append(libs, proj.ExtraLinkFlags...)
	p.compileVars = flagVars(cflags)
	p.linkVars = flagVars(libs)

	b.Compiler.SetShared(proj.Type.IsShared())
	b.Linker.SetShared(proj.Type.IsShared())
	b.Linker.SetPositionIndependent(proj.Type.IsLibrary())
	p.compileRule = b.Compiler.Rule()
	if proj.Type.IsLibrary() {
		p.linkRule = b.Linker.LibraryRule()
	} else {
		p.linkRule = b.Linker.ExecutableRule()
	}
	return p, nil
}

// systemFlags queries every system dependency once. Packages pkg-config does
// not know are skipped with a warning.
func (b *Builder) systemFlags(ctx context.Context, deps []string) (cflags, libs []string, err error) {
	logger := ctxlog.FromContext(ctx)
	for _, name := range dedupe(deps) {
		pkg, err := b.Packages.Query(ctx, name)
		if errors.Is(err, pkgconfig.ErrNotFound) {
			logger.Warn("System dependency not found, skipping.", "dependency", name)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("query system dependency %s: %w", name, err)
		}
		logger.Debug("System dependency resolved.", "dependency", name, "cflags", pkg.CFlags, "libs", pkg.Libs)
		cflags = append(cflags, pkg.CFlags...)
		cflags = append(cflags, "-DHAS_"+macroName(name))
		libs = append(libs, pkg.Libs...)
	}
	return dedupe(cflags), dedupe(libs), nil
}

func entrypoint(proj *config.Project) string {
	switch proj.Type {
	case config.SharedLibrary:
		return proj.Name + ".so"
	case config.StaticLibrary:
		return proj.Name + ".a"
	default:
		return proj.Name
	}
}

// macroName upper-cases name and replaces anything outside [A-Z0-9] with '_'.
func macroName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		default:
			return '_'
		}
	}, name)
}

func flagVars(flags []string) map[string]string {
	if len(flags) == 0 {
		return nil
	}
	// Ninja reads '$' in variable values as an escape.
	return map[string]string{"flags": strings.ReplaceAll(shellquote.Join(flags...), "$", "$$")}
}

// dedupe drops repeated entries, keeping the first occurrence.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

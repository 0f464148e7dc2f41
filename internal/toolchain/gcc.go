package toolchain

import (
	"strconv"
	"strings"

	"github.com/vk/ninjagen/internal/ninja"
)

// Rule names emitted by GCC.
const (
	CompileRule        = "cc"
	LinkExecutableRule = "ldexe"
	LinkLibraryRule    = "ldlib"
)

// GCC drives gcc, g++, clang or clang++. It implements both Compiler and
// Linker; a zero GCC is not usable, build one with NewGCC.
type GCC struct {
	path     string
	incDirs  []string
	libDirs  []string
	shared   bool
	opt      int
	warnings []string
	werror   bool
	pic      bool
}

var (
	_ Compiler = (*GCC)(nil)
	_ Linker   = (*GCC)(nil)
)

// NewGCC returns a shared, unoptimized toolchain invoking path.
func NewGCC(path string) *GCC {
	return &GCC{path: path, shared: true}
}

// Path returns the driver binary.
func (g *GCC) Path() string { return g.path }

// AddIncludeDirs implements Compiler.
func (g *GCC) AddIncludeDirs(dirs ...string) {
	g.incDirs = append(g.incDirs, dirs...)
}

// SetOptimization implements Compiler. Zero omits the -O flag.
func (g *GCC) SetOptimization(level int) {
	g.opt = level
}

// SetWarningLevel implements Compiler. Level 2 enables -Wall, level 3 adds
// -Wextra.
func (g *GCC) SetWarningLevel(level int) {
	var w []string
	if level > 1 {
		w = append(w, "all")
	}
	if level > 2 {
		w = append(w, "extra")
	}
	g.warnings = w
}

// SetWarningsAsErrors toggles -Werror.
func (g *GCC) SetWarningsAsErrors(on bool) {
	g.werror = on
}

// AddLibraryDirs implements Linker.
func (g *GCC) AddLibraryDirs(dirs ...string) {
	g.libDirs = append(g.libDirs, dirs...)
}

// SetShared implements Compiler and Linker.
func (g *GCC) SetShared(shared bool) {
	g.shared = shared
}

// SetPositionIndependent implements Linker. It only affects shared library
// links.
func (g *GCC) SetPositionIndependent(pic bool) {
	g.pic = pic
}

// Rule implements Compiler.
func (g *GCC) Rule() ninja.Rule {
	var b strings.Builder
	b.WriteString(g.path)
	for _, w := range g.warnings {
		b.WriteString(" -W" + w)
	}
	for _, d := range g.incDirs {
		b.WriteString(" -I" + d)
	}
	if !g.shared {
		b.WriteString(" -static")
	}
	if g.opt > 0 {
		b.WriteString(" -O" + strconv.Itoa(g.opt))
	}
	if g.werror {
		b.WriteString(" -Werror")
	}
	b.WriteString(" -MD -MMD $flags -c -o $out $in")

	return ninja.NewRule(CompileRule, b.String()).
		WithDepfile("$out.d").
		WithDescription("Compiling file $in")
}

// LibraryRule implements Linker.
func (g *GCC) LibraryRule() ninja.Rule {
	return ninja.NewRule(LinkLibraryRule, g.linkCommand(g.pic && g.shared)).
		WithDescription("Linking $out")
}

// ExecutableRule implements Linker.
func (g *GCC) ExecutableRule() ninja.Rule {
	return ninja.NewRule(LinkExecutableRule, g.linkCommand(false)).
		WithDescription("Linking $out")
}

func (g *GCC) linkCommand(pic bool) string {
	var b strings.Builder
	b.WriteString(g.path)
	for _, d := range g.libDirs {
		b.WriteString(" -L" + d)
	}
	if pic {
		b.WriteString(" -fPIC")
	}
	if g.shared && pic {
		b.WriteString(" -shared")
	}
	if !g.shared {
		b.WriteString(" -static")
	}
	b.WriteString(" $flags -o $out $in")
	return b.String()
}

// Clone returns an independent copy of g.
func (g *GCC) Clone() *GCC {
	c := *g
	c.incDirs = append([]string(nil), g.incDirs...)
	c.libDirs = append([]string(nil), g.libDirs...)
	c.warnings = append([]string(nil), g.warnings...)
	return &c
}

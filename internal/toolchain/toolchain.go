package toolchain

import "github.com/vk/ninjagen/internal/ninja"

// Compiler turns source files into objects.
type Compiler interface {
	AddIncludeDirs(dirs ...string)
	SetOptimization(level int)
	SetWarningLevel(level int)
	// SetShared selects dynamic linkage; static builds compile with -static.
	SetShared(shared bool)
	// Rule returns the compile rule. It reads $flags, $in and $out.
	Rule() ninja.Rule
}

// Linker turns objects into executables and libraries.
type Linker interface {
	AddLibraryDirs(dirs ...string)
	SetShared(shared bool)
	SetPositionIndependent(pic bool)
	LibraryRule() ninja.Rule
	ExecutableRule() ninja.Rule
}

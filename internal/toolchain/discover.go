package toolchain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/vk/ninjagen/internal/config"
)

// ErrNotFound is returned when no usable compiler driver is on the PATH.
var ErrNotFound = errors.New("no compiler found")

// knownDrivers are the driver names accepted from the environment.
var knownDrivers = map[string]bool{
	"gcc": true, "g++": true, "clang": true, "clang++": true, "cc": true, "c++": true,
}

// Finder resolves drivers from the environment and the PATH. The zero value
// uses os.Getenv and exec.LookPath.
type Finder struct {
	Getenv   func(string) string
	LookPath func(string) (string, error)
}

func (f Finder) getenv(key string) string {
	if f.Getenv != nil {
		return f.Getenv(key)
	}
	return os.Getenv(key)
}

func (f Finder) lookPath(name string) (string, error) {
	if f.LookPath != nil {
		return f.LookPath(name)
	}
	return exec.LookPath(name)
}

// fromEnv resolves the driver named by the environment variable key. Unset
// variables and unknown drivers yield ok == false.
func (f Finder) fromEnv(key string) (*GCC, bool) {
	name := f.getenv(key)
	if name == "" || !knownDrivers[filepath.Base(name)] {
		return nil, false
	}
	path, err := f.lookPath(name)
	if err != nil {
		return nil, false
	}
	return NewGCC(path), true
}

// Discover returns the compiler and linker for lang. The compiler comes from
// $CC ($CXX for C++) and falls back to gcc (g++). The linker comes from $LD,
// then the C++ compiler variable for C++, then the compiler itself.
func (f Finder) Discover(lang config.Language) (compiler, linker *GCC, err error) {
	ccVar, fallback := "CC", "gcc"
	if lang == config.LangCXX {
		ccVar, fallback = "CXX", "g++"
	}

	compiler, ok := f.fromEnv(ccVar)
	if !ok {
		path, err := f.lookPath(fallback)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: $%s is unset or unusable and %s is not on PATH: %v", ErrNotFound, ccVar, fallback, err)
		}
		compiler = NewGCC(path)
	}

	if ld, ok := f.fromEnv("LD"); ok {
		return compiler, ld, nil
	}
	return compiler, compiler.Clone(), nil
}

package config

import (
	"fmt"
	"regexp"
	"sort"
)

// Language selects the toolchain and the source extensions of a project.
type Language string

const (
	LangC   Language = "c"
	LangCXX Language = "c++"
)

// SourceExtensions returns the file extensions compiled for l.
func (l Language) SourceExtensions() []string {
	if l == LangCXX {
		return []string{".c", ".cc", ".cpp", ".cxx"}
	}
	return []string{".c"}
}

// BuildType is the kind of artifact a project produces.
type BuildType string

const (
	SharedExecutable BuildType = "shared executable"
	SharedLibrary    BuildType = "shared library"
	StaticExecutable BuildType = "static executable"
	StaticLibrary    BuildType = "static library"
)

// IsShared reports whether t links dynamically.
func (t BuildType) IsShared() bool {
	return t == SharedExecutable || t == SharedLibrary
}

// IsLibrary reports whether t produces a library.
func (t BuildType) IsLibrary() bool {
	return t == SharedLibrary || t == StaticLibrary
}

// Project is the format-agnostic description of a C or C++ project.
type Project struct {
	Language           Language
	Name               string
	Type               BuildType
	SystemDependencies []string
	ExtraBuildFlags    []string
	ExtraLinkFlags     []string
	// Defines become -DKEY=VALUE compile flags.
	Defines map[string]string
}

// ApplyDefaults fills unset fields. defaultName is used when Name is empty.
func (p *Project) ApplyDefaults(defaultName string) {
	if p.Language == "" {
		p.Language = LangC
	}
	if p.Name == "" {
		p.Name = defaultName
	}
	if p.Type == "" {
		p.Type = SharedExecutable
	}
}

var defineKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that p only holds supported values.
func (p *Project) Validate() error {
	switch p.Language {
	case LangC, LangCXX:
	default:
		return fmt.Errorf("unsupported language %q: must be %q or %q", p.Language, LangC, LangCXX)
	}
	switch p.Type {
	case SharedExecutable, SharedLibrary, StaticExecutable, StaticLibrary:
	default:
		return fmt.Errorf("unsupported type %q: must be one of %q, %q, %q, %q",
			p.Type, SharedExecutable, SharedLibrary, StaticExecutable, StaticLibrary)
	}
	if p.Name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	for key := range p.Defines {
		if !defineKey.MatchString(key) {
			return fmt.Errorf("invalid define name %q", key)
		}
	}
	return nil
}

// DefineFlags renders Defines as compiler flags in sorted key order.
func (p *Project) DefineFlags() []string {
	keys := make([]string, 0, len(p.Defines))
	for k := range p.Defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	flags := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := p.Defines[k]; v != "" {
			flags = append(flags, "-D"+k+"="+v)
		} else {
			flags = append(flags, "-D"+k)
		}
	}
	return flags
}

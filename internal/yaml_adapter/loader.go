// Package yaml_adapter loads ninjagen.yml project files into config.Project.
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/ninjagen/internal/config"
	"github.com/vk/ninjagen/internal/ctxlog"
)

// projectFile mirrors the YAML layout. Keys are kebab-case.
type projectFile struct {
	Language           string            `yaml:"language"`
	Name               string            `yaml:"name"`
	Type               string            `yaml:"type"`
	SystemDependencies []string          `yaml:"system-dependencies"`
	ExtraBuildFlags    []string          `yaml:"extra-build-flags"`
	ExtraLinkFlags     []string          `yaml:"extra-link-flags"`
	Defines            map[string]string `yaml:"defines"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML project loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the YAML project file at path. An empty document yields an
// empty project; unknown keys are an error.
func (l *Loader) Load(ctx context.Context, path string) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)
	logger.Debug("YAML loader started.")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var f projectFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}

	logger.Debug("YAML loading complete.", "name", f.Name)
	return &config.Project{
		Language:           config.Language(f.Language),
		Name:               f.Name,
		Type:               config.BuildType(f.Type),
		SystemDependencies: f.SystemDependencies,
		ExtraBuildFlags:    f.ExtraBuildFlags,
		ExtraLinkFlags:     f.ExtraLinkFlags,
		Defines:            f.Defines,
	}, nil
}

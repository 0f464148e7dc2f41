package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileNames lists the project file names looked up by Discover, in priority
// order.
var FileNames = []string{"ninjagen.hcl", "ninjagen.yml", "ninjagen.yaml"}

// ErrUnsupportedFormat is returned by LoaderFor for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Discover returns the first project file from FileNames present in dir.
// It returns "" when there is none.
func Discover(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %s is a directory", path)
			}
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("error accessing config path %s: %w", path, err)
		}
	}
	return "", nil
}

// Loaders maps a file extension to the loader handling it.
type Loaders map[string]Loader

// For returns the loader registered for path's extension.
func (ls Loaders) For(path string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if l, ok := ls[ext]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

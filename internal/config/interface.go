package config

import "context"

// Loader is the interface for a format-specific project file loader.
type Loader interface {
	// Load reads the project file at path and translates it into the
	// format-agnostic model. Fields absent from the file are left at their
	// zero value; ApplyDefaults fills them in.
	Load(ctx context.Context, path string) (*Project, error)
}

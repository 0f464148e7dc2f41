// Package config defines the format-agnostic project model and the Loader
// interface implemented by the format-specific adapters.
//
// A Project is the single source of truth for the project builder. Concrete
// loaders live in separate packages (hcl_adapter, yaml_adapter); this package
// only knows how to pick the right file, fill in defaults and validate the
// result.
package config

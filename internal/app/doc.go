// Package app wires the generator together: it loads the project file,
// discovers the toolchain, builds the dependency graph, writes build.ninja
// and optionally hands over to ninja and the built program. It is decoupled
// from the CLI so it can be driven from tests.
package app

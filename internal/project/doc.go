// Package project turns a C or C++ source tree and its config.Project into a
// build description: a dag.Graph by default, or a ninja.Tree.
//
// Sources are every file under <project>/src with an extension of the
// project language. Each source compiles to <kind>.<name>/<stem>.o in the
// build directory, where kind is "exe" or "lib", and all objects link into
// the entrypoint: <name>, <name>.so or <name>.a.
package project

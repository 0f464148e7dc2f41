// Package dag is the dependency graph of a build. It owns Source and
// Generated nodes addressed by stable Handles, the directed edges between
// them (consumer -> dependency) and an index from output path to node.
//
// The graph is acyclic at all times: an edge that would close a cycle is
// rejected with a *CycleError and leaves the graph unchanged. Two nodes may
// not declare the same output path.
//
// Graphs are populated during a single construction pass and then only read,
// most notably by WriteNinja, which emits every node once no matter how many
// consumers share it. A Graph is not safe for concurrent use.
package dag

package dag

import (
	dgraph "github.com/dominikbraun/graph"

	"github.com/vk/ninjagen/internal/ninja"
)

// Handle addresses a node of a Graph. Handles are assigned sequentially from
// zero in insertion order and stay valid for the lifetime of the graph.
type Handle int

// Node is either a *SourceNode or a *GeneratedNode.
type Node interface {
	// Files returns the paths the node provides, canonical path first.
	Files() []string
	isNode()
}

// SourceNode is a file that exists before the build runs.
type SourceNode struct {
	Path string
}

// GeneratedNode is a file set produced by Rule. Outputs must be non-empty and
// unique; the first output is the name consumers refer to it by.
type GeneratedNode struct {
	Rule    ninja.Rule
	Outputs []string
	Vars    map[string]string
}

// Files implements Node.
func (s *SourceNode) Files() []string { return []string{s.Path} }

// Files implements Node.
func (g *GeneratedNode) Files() []string { return g.Outputs }

func (*SourceNode) isNode()    {}
func (*GeneratedNode) isNode() {}

// Graph is a directed acyclic dependency graph with a path index.
type Graph struct {
	// nodes is the arena; a node's Handle is its position.
	nodes []Node
	// deps holds each node's dependencies in insertion order.
	deps [][]Handle
	// index maps every declared file to the node providing it.
	index map[string]Handle
	// edges mirrors nodes and deps and rejects cycle-closing edges.
	edges dgraph.Graph[Handle, Handle]
	// edgeCount is the number of distinct edges.
	edgeCount int
}

// Context is a node together with its direct neighbours.
type Context struct {
	Handle Handle
	Node   Node
	// Dependents are the nodes that depend on Node.
	Dependents []Node
	// Dependencies are the nodes Node depends on, in insertion order.
	Dependencies []Node
}

package dag

import (
	"errors"
	"fmt"
	"sort"

	dgraph "github.com/dominikbraun/graph"

	"github.com/vk/ninjagen/internal/ninja"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]Handle),
		edges: dgraph.New(handleHash, dgraph.Directed(), dgraph.PreventCycles()),
	}
}

func handleHash(h Handle) Handle { return h }

// AddSource registers a source file.
func (g *Graph) AddSource(path string) (Handle, error) {
	return g.AddNode(&SourceNode{Path: path})
}

// AddNode registers n and indexes every file it declares. A node declaring no
// file, an empty path, or a path already provided by another node is
// rejected with the graph left unchanged.
func (g *Graph) AddNode(n Node) (Handle, error) {
	if n == nil {
		return -1, fmt.Errorf("%w: nil node", ErrInvalidNode)
	}
	files := n.Files()
	if len(files) == 0 {
		return -1, fmt.Errorf("%w: node declares no outputs", ErrInvalidNode)
	}
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if f == "" {
			return -1, fmt.Errorf("%w: empty path", ErrInvalidNode)
		}
		if _, ok := seen[f]; ok {
			return -1, &DuplicateOutputError{Output: f}
		}
		if _, ok := g.index[f]; ok {
			return -1, &DuplicateOutputError{Output: f}
		}
		seen[f] = struct{}{}
	}

	h := Handle(len(g.nodes))
	if err := g.edges.AddVertex(h); err != nil {
		return -1, fmt.Errorf("add node %s: %w", files[0], err)
	}
	g.nodes = append(g.nodes, n)
	g.deps = append(g.deps, nil)
	for _, f := range files {
		g.index[f] = h
	}
	return h, nil
}

// AddDependency records that h depends on dep. Adding an existing edge is a
// no-op. An edge that would close a cycle, including a self-edge, fails with
// a *CycleError and leaves the graph unchanged.
func (g *Graph) AddDependency(h, dep Handle) error {
	if err := g.checkHandle(h); err != nil {
		return err
	}
	if err := g.checkHandle(dep); err != nil {
		return err
	}

	err := g.edges.AddEdge(h, dep)
	switch {
	case err == nil:
	case errors.Is(err, dgraph.ErrEdgeAlreadyExists):
		return nil
	case errors.Is(err, dgraph.ErrEdgeCreatesCycle):
		return &CycleError{From: g.name(h), To: g.name(dep)}
	default:
		return fmt.Errorf("add dependency %s -> %s: %w", g.name(h), g.name(dep), err)
	}

	g.deps[h] = append(g.deps[h], dep)
	g.edgeCount++
	return nil
}

// AddDependencyByName resolves name through the path index, then behaves like
// AddDependency. An unregistered name fails with an *UnknownNameError.
func (g *Graph) AddDependencyByName(h Handle, name string) error {
	dep, ok := g.index[name]
	if !ok {
		return &UnknownNameError{Name: name}
	}
	return g.AddDependency(h, dep)
}

// AddDependencies adds each dependency in order and stops at the first
// failure. Edges added before the failure are kept.
func (g *Graph) AddDependencies(h Handle, deps ...Handle) error {
	for _, dep := range deps {
		if err := g.AddDependency(h, dep); err != nil {
			return err
		}
	}
	return nil
}

// AddDependenciesByName is AddDependencies for names.
func (g *Graph) AddDependenciesByName(h Handle, names ...string) error {
	for _, name := range names {
		if err := g.AddDependencyByName(h, name); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the node providing path.
func (g *Graph) Lookup(path string) (Handle, bool) {
	h, ok := g.index[path]
	return h, ok
}

// Node returns the node addressed by h.
func (g *Graph) Node(h Handle) (Node, bool) {
	if g.checkHandle(h) != nil {
		return nil, false
	}
	return g.nodes[h], true
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Handles returns every handle in insertion order.
func (g *Graph) Handles() []Handle {
	hs := make([]Handle, len(g.nodes))
	for i := range g.nodes {
		hs[i] = Handle(i)
	}
	return hs
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Dependencies returns the direct dependencies of h in insertion order.
func (g *Graph) Dependencies(h Handle) []Handle {
	if g.checkHandle(h) != nil {
		return nil
	}
	out := make([]Handle, len(g.deps[h]))
	copy(out, g.deps[h])
	return out
}

// NodesWithContext returns every node in insertion order together with its
// direct dependents and dependencies. Dependents are ordered by handle.
func (g *Graph) NodesWithContext() ([]Context, error) {
	dependents, err := g.dependents()
	if err != nil {
		return nil, err
	}
	out := make([]Context, len(g.nodes))
	for i, n := range g.nodes {
		h := Handle(i)
		c := Context{Handle: h, Node: n}
		for _, d := range dependents[h] {
			c.Dependents = append(c.Dependents, g.nodes[d])
		}
		for _, d := range g.deps[h] {
			c.Dependencies = append(c.Dependencies, g.nodes[d])
		}
		out[i] = c
	}
	return out, nil
}

// Roots returns, in insertion order, the nodes nothing depends on.
func (g *Graph) Roots() ([]Handle, error) {
	dependents, err := g.dependents()
	if err != nil {
		return nil, err
	}
	var roots []Handle
	for i := range g.nodes {
		if len(dependents[Handle(i)]) == 0 {
			roots = append(roots, Handle(i))
		}
	}
	return roots, nil
}

// Rules returns the distinct rules used by generated nodes, deduplicated by
// ninja.RuleKey. For rules sharing a name, the one of the earliest node wins.
func (g *Graph) Rules() []ninja.Rule {
	seen := make(map[string]struct{})
	var rules []ninja.Rule
	for _, n := range g.nodes {
		gen, ok := n.(*GeneratedNode)
		if !ok {
			continue
		}
		key := ninja.RuleKey(gen.Rule)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rules = append(rules, gen.Rule)
	}
	return rules
}

// dependents maps each handle to the handles of its consumers, sorted.
func (g *Graph) dependents() (map[Handle][]Handle, error) {
	preds, err := g.edges.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("read graph predecessors: %w", err)
	}
	out := make(map[Handle][]Handle, len(preds))
	for h, in := range preds {
		list := make([]Handle, 0, len(in))
		for from := range in {
			list = append(list, from)
		}
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		out[h] = list
	}
	return out, nil
}

func (g *Graph) checkHandle(h Handle) error {
	if h < 0 || int(h) >= len(g.nodes) {
		return fmt.Errorf("%w: handle %d out of range", ErrInvalidNode, h)
	}
	return nil
}

func (g *Graph) name(h Handle) string {
	return g.nodes[h].Files()[0]
}

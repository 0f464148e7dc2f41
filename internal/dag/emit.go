package dag

import "github.com/vk/ninjagen/internal/ninja"

// WriteNinja emits g into w. Nodes are visited depth-first from the roots in
// insertion order and written after their dependencies, so each rule is
// declared right before its first use. A node shared by several consumers is
// written once. Generated roots become default targets.
func (g *Graph) WriteNinja(w *ninja.Writer) error {
	roots, err := g.Roots()
	if err != nil {
		return err
	}

	visited := make([]bool, len(g.nodes))
	var visit func(h Handle)
	visit = func(h Handle) {
		if visited[h] {
			return
		}
		visited[h] = true
		for _, dep := range g.deps[h] {
			visit(dep)
		}

		gen, ok := g.nodes[h].(*GeneratedNode)
		if !ok {
			return
		}
		inputs := make([]string, 0, len(g.deps[h]))
		for _, dep := range g.deps[h] {
			inputs = append(inputs, g.name(dep))
		}
		w.AddRule(gen.Rule)
		b := ninja.NewBuild(gen.Rule.Name, gen.Outputs, inputs)
		b.Vars = gen.Vars
		w.AddBuild(b)
	}

	for _, h := range roots {
		visit(h)
	}
	for _, h := range roots {
		if _, ok := g.nodes[h].(*GeneratedNode); ok {
			w.AddDefault(g.name(h))
		}
	}
	return nil
}

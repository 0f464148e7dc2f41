package ninja

// Tree is the recursive per-artifact description of a build: every node owns
// its dependencies. A node used by two consumers appears twice, so shared
// objects are emitted once per consumer. Use the dag package when sharing
// matters.
type Tree interface {
	isTree()
}

// Source is an existing file.
type Source struct {
	Path string
}

// Generated is a file produced by applying Rule to the outputs of Deps.
type Generated struct {
	Name string
	Rule Rule
	Deps []Tree
	Vars map[string]string
}

// DefaultTarget marks the output of Inner as a default target. It produces no
// build statement of its own.
type DefaultTarget struct {
	Inner Tree
}

func (Source) isTree()        {}
func (Generated) isTree()     {}
func (DefaultTarget) isTree() {}

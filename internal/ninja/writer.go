package ninja

import (
	"fmt"
	"io"

	"github.com/vk/ninjagen/internal/pretty"
)

// DefaultWidth is the render width used when none is configured.
const DefaultWidth = 80

// Writer accumulates rule, build and default statements into one document.
// Each rule name is written at most once per Writer. A Writer is meant for a
// single sequential emission session and is not safe for concurrent use.
type Writer struct {
	written map[string]struct{}
	blocks  []pretty.Doc
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{written: make(map[string]struct{})}
}

// AddRule writes the rule block unless a rule with the same name was already
// written, in which case the call is a no-op and the first definition wins.
func (w *Writer) AddRule(r Rule) {
	key := RuleKey(r)
	if _, ok := w.written[key]; ok {
		return
	}
	w.written[key] = struct{}{}
	w.blocks = append(w.blocks, r.Doc(), pretty.HardLine())
}

// HasRule reports whether a rule with the given name has been written.
func (w *Writer) HasRule(name string) bool {
	_, ok := w.written[name]
	return ok
}

// AddBuild writes a build statement. Its rule must have been written before;
// a build referencing an unwritten rule means the input graph was malformed
// and AddBuild panics.
func (w *Writer) AddBuild(b Build) {
	if !w.HasRule(b.Rule) {
		panic(fmt.Sprintf("ninja: build %q references rule %q before it was written", b.Ref(), b.Rule))
	}
	if len(b.Outputs) == 0 {
		panic(fmt.Sprintf("ninja: build with rule %q has no outputs", b.Rule))
	}
	w.blocks = append(w.blocks, b.Doc(), pretty.HardLine())
}

// AddDefault writes a default statement for target.
func (w *Writer) AddDefault(target string) {
	w.blocks = append(w.blocks, Default{Target: target}.Doc())
}

// AddTree writes the statements for t in post-order: dependencies first,
// then the rule and build of the node itself. It returns the name of the
// file t resolves to, or false for a DefaultTarget, which records its inner
// name as a default target instead.
func (w *Writer) AddTree(t Tree) (string, bool) {
	switch n := t.(type) {
	case Source:
		return n.Path, true
	case Generated:
		inputs := make([]string, 0, len(n.Deps))
		for _, dep := range n.Deps {
			if name, ok := w.AddTree(dep); ok {
				inputs = append(inputs, name)
			}
		}
		w.AddRule(n.Rule)
		b := NewBuild(n.Rule.Name, []string{n.Name}, inputs)
		b.Vars = n.Vars
		w.AddBuild(b)
		return n.Name, true
	case DefaultTarget:
		name, ok := w.AddTree(n.Inner)
		if !ok {
			panic("ninja: default target must wrap a source or generated node")
		}
		w.AddDefault(name)
		return "", false
	default:
		panic(fmt.Sprintf("ninja: unknown tree node %T", t))
	}
}

// Doc returns the accumulated document.
func (w *Writer) Doc() pretty.Doc {
	return pretty.Concat(w.blocks...)
}

// Render writes the accumulated document to out as plain text.
func (w *Writer) Render(out io.Writer, width int) error {
	return pretty.Render(w.Doc(), width, out)
}

// RenderStyled writes the accumulated document to out, passing annotated
// text through styler. It is meant for interactive terminals.
func (w *Writer) RenderStyled(out io.Writer, width int, styler pretty.Styler) error {
	return pretty.RenderStyled(w.Doc(), width, out, styler)
}

package pretty

import "strings"

// Annotation tags a part of a document with a semantic category.
type Annotation int

const (
	// Keyword marks statement keywords such as "rule" or "build".
	Keyword Annotation = iota + 1
	// StrLiteral marks literal values such as commands and paths.
	StrLiteral
	// Variable marks variable names on the left of an assignment.
	Variable
	// Equals marks the assignment operator.
	Equals
)

// String returns the lower-case name of the annotation.
func (a Annotation) String() string {
	switch a {
	case Keyword:
		return "keyword"
	case StrLiteral:
		return "literal"
	case Variable:
		return "variable"
	case Equals:
		return "equals"
	default:
		return "unknown"
	}
}

// Doc is an immutable document tree. Values are built with the constructor
// functions of this package and combined with Concat.
type Doc interface {
	isDoc()
}

type textDoc struct{ s string }

type hardLineDoc struct{}

// lineDoc renders as flat when its group fits, otherwise as trailer followed
// by a newline.
type lineDoc struct {
	flat    string
	trailer string
}

type nestDoc struct {
	n   int
	doc Doc
}

type concatDoc struct{ docs []Doc }

type groupDoc struct{ doc Doc }

type annotateDoc struct {
	ann Annotation
	doc Doc
}

func (textDoc) isDoc()     {}
func (hardLineDoc) isDoc() {}
func (lineDoc) isDoc()     {}
func (nestDoc) isDoc()     {}
func (concatDoc) isDoc()   {}
func (groupDoc) isDoc()    {}
func (annotateDoc) isDoc() {}

// Nil returns the empty document.
func Nil() Doc {
	return concatDoc{}
}

// Text returns a literal. The text must not contain newlines; use HardLine
// for those.
func Text(s string) Doc {
	return textDoc{s: s}
}

// Space is Text(" ").
func Space() Doc {
	return textDoc{s: " "}
}

// HardLine returns a forced line break.
func HardLine() Doc {
	return hardLineDoc{}
}

// Line returns a break that renders as a single space when its group fits.
func Line() Doc {
	return lineDoc{flat: " "}
}

// BreakWith returns a break that renders as flat when its group fits, and as
// trailer followed by a newline otherwise. Line-continuation syntaxes such as
// a trailing "$" or "\" are expressed with it.
func BreakWith(flat, trailer string) Doc {
	return lineDoc{flat: flat, trailer: trailer}
}

// Nest increases the indentation of every line break inside doc by n.
func Nest(n int, doc Doc) Doc {
	return nestDoc{n: n, doc: doc}
}

// Indent is Nest that also indents the first line of doc.
func Indent(n int, doc Doc) Doc {
	if n <= 0 {
		return doc
	}
	return Concat(Text(strings.Repeat(" ", n)), Nest(n, doc))
}

// Concat joins documents end to end.
func Concat(docs ...Doc) Doc {
	return concatDoc{docs: docs}
}

// Group lays doc out flat if it fits in the remaining width, broken otherwise.
func Group(doc Doc) Doc {
	return groupDoc{doc: doc}
}

// Annotate attaches ann to doc.
func Annotate(ann Annotation, doc Doc) Doc {
	return annotateDoc{ann: ann, doc: doc}
}

// Intersperse places sep between every two consecutive docs.
func Intersperse(docs []Doc, sep Doc) Doc {
	if len(docs) == 0 {
		return Nil()
	}
	out := make([]Doc, 0, 2*len(docs)-1)
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return concatDoc{docs: out}
}

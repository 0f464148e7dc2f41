package pretty

import "github.com/gookit/color"

// Styler decorates annotated text, for example with terminal colors.
type Styler interface {
	Style(ann Annotation, s string) string
}

// ANSIStyler colors annotations with ANSI escape sequences: keywords in bold
// red, literals in yellow, equals signs in white. Variables are left as is.
type ANSIStyler struct {
	styles map[Annotation]color.Style
}

// NewANSIStyler returns the default terminal palette.
func NewANSIStyler() *ANSIStyler {
	return &ANSIStyler{
		styles: map[Annotation]color.Style{
			Keyword:    color.New(color.FgRed, color.OpBold),
			StrLiteral: color.New(color.FgYellow),
			Equals:     color.New(color.FgWhite),
		},
	}
}

// Style implements Styler.
func (a *ANSIStyler) Style(ann Annotation, s string) string {
	st, ok := a.styles[ann]
	if !ok {
		return s
	}
	return st.Sprint(s)
}

// ForceColor makes styled output emit escape sequences even when the process
// is not attached to a terminal.
func ForceColor() {
	color.ForceOpenColor()
}

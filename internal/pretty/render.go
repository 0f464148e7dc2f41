package pretty

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type mode int

const (
	modeBroken mode = iota
	modeFlat
)

// cmd is one entry of the layout work stack. A cmd with pop set closes the
// innermost open annotation.
type cmd struct {
	indent int
	mode   mode
	doc    Doc
	pop    bool
}

type renderer struct {
	width  int
	w      *bufio.Writer
	styler Styler

	col       int
	lineStart bool
	anns      []Annotation
}

// Render writes doc to w laid out for the given width. Annotations are
// dropped. A width of zero or less disables soft breaking.
func Render(doc Doc, width int, w io.Writer) error {
	return RenderStyled(doc, width, w, nil)
}

// RenderStyled is Render with annotated text passed through styler. A nil
// styler behaves like Render.
func RenderStyled(doc Doc, width int, w io.Writer, styler Styler) error {
	r := &renderer{
		width:     width,
		w:         bufio.NewWriter(w),
		styler:    styler,
		lineStart: true,
	}
	if err := r.run(doc); err != nil {
		return err
	}
	return r.w.Flush()
}

func (r *renderer) run(doc Doc) error {
	stack := []cmd{{indent: 0, mode: modeBroken, doc: doc}}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if c.pop {
			r.anns = r.anns[:len(r.anns)-1]
			continue
		}

		switch d := c.doc.(type) {
		case textDoc:
			if err := r.text(d.s, c.indent); err != nil {
				return err
			}
		case hardLineDoc:
			if err := r.newline("", c.indent); err != nil {
				return err
			}
		case lineDoc:
			if c.mode == modeFlat {
				if err := r.text(d.flat, c.indent); err != nil {
					return err
				}
				continue
			}
			if err := r.newline(d.trailer, c.indent); err != nil {
				return err
			}
		case nestDoc:
			stack = append(stack, cmd{indent: c.indent + d.n, mode: c.mode, doc: d.doc})
		case concatDoc:
			for i := len(d.docs) - 1; i >= 0; i-- {
				stack = append(stack, cmd{indent: c.indent, mode: c.mode, doc: d.docs[i]})
			}
		case groupDoc:
			m := modeBroken
			if c.mode == modeFlat || r.fits(cmd{indent: c.indent, mode: modeFlat, doc: d.doc}, stack) {
				m = modeFlat
			}
			stack = append(stack, cmd{indent: c.indent, mode: m, doc: d.doc})
		case annotateDoc:
			r.anns = append(r.anns, d.ann)
			stack = append(stack,
				cmd{pop: true},
				cmd{indent: c.indent, mode: c.mode, doc: d.doc},
			)
		}
	}
	return nil
}

// fits reports whether next, followed by the pending rest of the stack up to
// its first line break, stays within the width.
func (r *renderer) fits(next cmd, rest []cmd) bool {
	if r.width <= 0 {
		return true
	}
	remaining := r.width - r.col
	if r.lineStart {
		remaining -= next.indent
	}
	work := []cmd{next}
	restIdx := len(rest) - 1
	for remaining >= 0 {
		if len(work) == 0 {
			if restIdx < 0 {
				return true
			}
			work = append(work, rest[restIdx])
			restIdx--
		}
		c := work[len(work)-1]
		work = work[:len(work)-1]
		if c.pop {
			continue
		}
		switch d := c.doc.(type) {
		case textDoc:
			remaining -= runewidth.StringWidth(d.s)
		case hardLineDoc:
			return c.mode == modeBroken
		case lineDoc:
			if c.mode == modeBroken {
				return true
			}
			remaining -= runewidth.StringWidth(d.flat)
		case nestDoc:
			work = append(work, cmd{indent: c.indent + d.n, mode: c.mode, doc: d.doc})
		case concatDoc:
			for i := len(d.docs) - 1; i >= 0; i-- {
				work = append(work, cmd{indent: c.indent, mode: c.mode, doc: d.docs[i]})
			}
		case groupDoc:
			work = append(work, cmd{indent: c.indent, mode: c.mode, doc: d.doc})
		case annotateDoc:
			work = append(work, cmd{indent: c.indent, mode: c.mode, doc: d.doc})
		}
	}
	return false
}

func (r *renderer) text(s string, indent int) error {
	if s == "" {
		return nil
	}
	if r.lineStart {
		if indent > 0 {
			if _, err := r.w.WriteString(strings.Repeat(" ", indent)); err != nil {
				return err
			}
		}
		r.col = indent
		r.lineStart = false
	}
	r.col += runewidth.StringWidth(s)
	if r.styler != nil && len(r.anns) > 0 {
		s = r.styler.Style(r.anns[len(r.anns)-1], s)
	}
	_, err := r.w.WriteString(s)
	return err
}

func (r *renderer) newline(trailer string, indent int) error {
	if trailer != "" {
		if err := r.text(trailer, indent); err != nil {
			return err
		}
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	r.col = 0
	r.lineStart = true
	return nil
}

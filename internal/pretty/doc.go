// Package pretty is a small width-aware document layout engine.
//
// A document is built as a tree of primitive shapes (literal text, forced
// line breaks, soft line breaks, indentation scopes, concatenation, groups and
// semantic annotations) and then linearized against a target column width by
// Render or RenderStyled.
//
// # Layout model
//
// Documents follow the Wadler/Leijen "prettier printer" model:
//
//   - HardLine always breaks.
//   - Line and BreakWith break only when their enclosing Group does not fit
//     on the current line. A Group is laid out either completely flat or
//     completely broken.
//   - Nest increases the indentation applied after each subsequent line
//     break. Indent additionally indents the first line.
//
// Indentation is written lazily, right before the first text of a line, so
// empty lines never carry trailing whitespace.
//
// # Annotations
//
// Annotations carry semantic meaning (keyword, literal, variable, equals sign)
// without affecting layout. Render drops them; RenderStyled hands annotated
// text to a Styler, which typically emits ANSI escape sequences for a
// terminal.
package pretty

package ninja

import (
	"sort"
	"strings"

	"github.com/vk/ninjagen/internal/pretty"
)

// continuationIndent is the indentation of input and output paths wrapped
// onto continuation lines of a build statement.
const continuationIndent = 4

// Rule is a named command template. Placeholders such as $in, $out or $flags
// are opaque text interpreted by ninja, never substituted here.
//
// Rule values are compared by name wherever they are deduplicated; see
// RuleKey.
type Rule struct {
	Name        string
	Command     string
	Description string
	Depfile     string
}

// NewRule returns a rule without description or depfile.
func NewRule(name, command string) Rule {
	return Rule{Name: name, Command: command}
}

// WithDescription returns a copy of r with the given description. An empty
// description removes it.
func (r Rule) WithDescription(description string) Rule {
	r.Description = description
	return r
}

// WithDepfile returns a copy of r with the given depfile path template. An
// empty template removes it.
func (r Rule) WithDepfile(depfile string) Rule {
	r.Depfile = depfile
	return r
}

// RuleKey is the identity of a rule for deduplication: its name alone.
func RuleKey(r Rule) string {
	return r.Name
}

// Doc renders the rule block:
//
//	rule <name>
//	  command = <command>
//	  description = <description>
//	  depfile = <depfile>
func (r Rule) Doc() pretty.Doc {
	parts := []pretty.Doc{
		keyword("rule"), pretty.Space(), pretty.Text(r.Name), pretty.HardLine(),
		pretty.Indent(2, variable("command", r.Command)), pretty.HardLine(),
	}
	if r.Description != "" {
		parts = append(parts, pretty.Indent(2, variable("description", r.Description)), pretty.HardLine())
	}
	if r.Depfile != "" {
		parts = append(parts, pretty.Indent(2, variable("depfile", r.Depfile)), pretty.HardLine())
	}
	return pretty.Concat(parts...)
}

// Build applies a rule to concrete outputs and inputs. The first output is
// the canonical name other statements use to refer to it.
type Build struct {
	Rule    string
	Outputs []string
	Inputs  []string
	Vars    map[string]string
}

// NewBuild returns a build statement without variables.
func NewBuild(rule string, outputs, inputs []string) Build {
	return Build{Rule: rule, Outputs: outputs, Inputs: inputs}
}

// Ref returns the canonical name of the build: its first output.
func (b Build) Ref() string {
	if len(b.Outputs) == 0 {
		return ""
	}
	return b.Outputs[0]
}

// BuildKey is the identity of a build statement for deduplication: the rule
// together with the ordered outputs. Inputs and variables are ignored.
func BuildKey(b Build) string {
	return b.Rule + "\x00" + strings.Join(b.Outputs, "\x00")
}

// Doc renders the build statement:
//
//	build <out>...: <rule> <in>...
//	  <key> = <value>
//
// Variables are written in key order. When the header does not fit the
// render width it is wrapped with "$" continuations, one path per line.
func (b Build) Doc() pretty.Doc {
	header := []pretty.Doc{
		pretty.Intersperse(paths(b.Outputs), softSep()),
		pretty.Text(":"),
		pretty.Space(),
		pretty.Text(b.Rule),
	}
	for _, in := range b.Inputs {
		header = append(header, softSep(), pretty.Text(EscapePath(in)))
	}

	parts := []pretty.Doc{
		keyword("build"),
		pretty.Space(),
		pretty.Group(pretty.Nest(continuationIndent, pretty.Concat(header...))),
		pretty.HardLine(),
	}
	if len(b.Vars) > 0 {
		keys := make([]string, 0, len(b.Vars))
		for k := range b.Vars {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		vars := make([]pretty.Doc, 0, len(keys))
		for _, k := range keys {
			vars = append(vars, variable(k, b.Vars[k]))
		}
		parts = append(parts, pretty.Indent(2, pretty.Intersperse(vars, pretty.HardLine())), pretty.HardLine())
	}
	return pretty.Concat(parts...)
}

// Default marks a build output as a default target.
type Default struct {
	Target string
}

// Doc renders "default <target>".
func (d Default) Doc() pretty.Doc {
	return pretty.Concat(keyword("default"), pretty.Space(), pretty.Text(EscapePath(d.Target)), pretty.HardLine())
}

func keyword(s string) pretty.Doc {
	return pretty.Annotate(pretty.Keyword, pretty.Text(s))
}

func variable(name, value string) pretty.Doc {
	return pretty.Concat(
		pretty.Annotate(pretty.Variable, pretty.Text(name)),
		pretty.Space(),
		pretty.Annotate(pretty.Equals, pretty.Text("=")),
		pretty.Space(),
		pretty.Annotate(pretty.StrLiteral, pretty.Text(value)),
	)
}

var pathEscaper = strings.NewReplacer("$", "$$", " ", "$ ", ":", "$:")

// EscapePath quotes the characters ninja gives a meaning to in paths of
// build and default statements. Paths are stored unescaped everywhere else.
func EscapePath(p string) string {
	return pathEscaper.Replace(p)
}

func softSep() pretty.Doc {
	return pretty.BreakWith(" ", " $")
}

func paths(ps []string) []pretty.Doc {
	docs := make([]pretty.Doc, len(ps))
	for i, p := range ps {
		docs[i] = pretty.Text(EscapePath(p))
	}
	return docs
}

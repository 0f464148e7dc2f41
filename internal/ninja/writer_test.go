package ninja

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ninjagen/internal/pretty"
)

var (
	ccRule = NewRule("cc", "gcc -c $in -o $out")
	ldRule = NewRule("ld", "gcc $in -o $out")
)

func renderWriter(t *testing.T, w *Writer) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, w.Render(&buf, DefaultWidth))
	return buf.String()
}

func TestWriter_AddRuleIsIdempotent(t *testing.T) {
	w := NewWriter()
	w.AddRule(ccRule)
	w.AddRule(ccRule)

	out := renderWriter(t, w)
	assert.Equal(t, 1, strings.Count(out, "rule cc\n"))
}

func TestWriter_FirstRuleDefinitionWins(t *testing.T) {
	w := NewWriter()
	w.AddRule(NewRule("cc", "first"))
	w.AddRule(NewRule("cc", "second"))

	out := renderWriter(t, w)
	assert.Equal(t, "rule cc\n  command = first\n\n", out)
	assert.NotContains(t, out, "second")
}

func TestWriter_AddBuildPanicsOnUnwrittenRule(t *testing.T) {
	w := NewWriter()
	assert.PanicsWithValue(t,
		`ninja: build "a.o" references rule "cc" before it was written`,
		func() { w.AddBuild(NewBuild("cc", []string{"a.o"}, []string{"a.c"})) },
	)
}

func TestWriter_AddBuildPanicsWithoutOutputs(t *testing.T) {
	w := NewWriter()
	w.AddRule(ccRule)
	assert.Panics(t, func() { w.AddBuild(NewBuild("cc", nil, []string{"a.c"})) })
}

func TestWriter_AddTree(t *testing.T) {
	tree := DefaultTarget{Inner: Generated{
		Name: "gen",
		Rule: ldRule,
		Deps: []Tree{
			Generated{Name: "a.o", Rule: ccRule, Deps: []Tree{Source{Path: "a.c"}}},
			Generated{Name: "b.o", Rule: ccRule, Deps: []Tree{Source{Path: "b.c"}}},
		},
	}}

	w := NewWriter()
	name, ok := w.AddTree(tree)
	assert.False(t, ok)
	assert.Empty(t, name)
	assert.True(t, w.HasRule("cc"))
	assert.True(t, w.HasRule("ld"))

	want := "rule cc\n" +
		"  command = gcc -c $in -o $out\n" +
		"\n" +
		"build a.o: cc a.c\n" +
		"\n" +
		"build b.o: cc b.c\n" +
		"\n" +
		"rule ld\n" +
		"  command = gcc $in -o $out\n" +
		"\n" +
		"build gen: ld a.o b.o\n" +
		"\n" +
		"default gen\n"
	if diff := cmp.Diff(want, renderWriter(t, w)); diff != "" {
		t.Errorf("rendered document mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_AddTreeReturnsNames(t *testing.T) {
	w := NewWriter()

	name, ok := w.AddTree(Source{Path: "main.c"})
	require.True(t, ok)
	assert.Equal(t, "main.c", name)
	assert.Empty(t, renderWriter(t, w))

	name, ok = w.AddTree(Generated{
		Name: "main.o",
		Rule: ccRule,
		Deps: []Tree{Source{Path: "main.c"}},
		Vars: map[string]string{"flags": "-lm"},
	})
	require.True(t, ok)
	assert.Equal(t, "main.o", name)
	assert.Contains(t, renderWriter(t, w), "build main.o: cc main.c\n  flags = -lm\n")
}

func TestWriter_AddTreeDuplicatesSharedNodes(t *testing.T) {
	shared := Generated{Name: "util.o", Rule: ccRule, Deps: []Tree{Source{Path: "util.c"}}}
	w := NewWriter()
	w.AddTree(Generated{Name: "app", Rule: ldRule, Deps: []Tree{shared}})
	w.AddTree(Generated{Name: "tool", Rule: ldRule, Deps: []Tree{shared}})

	out := renderWriter(t, w)
	assert.Equal(t, 2, strings.Count(out, "build util.o: cc util.c\n"))
	assert.Equal(t, 1, strings.Count(out, "rule cc\n"))
	assert.Equal(t, 1, strings.Count(out, "rule ld\n"))
}

func TestWriter_NestedDefaultPanics(t *testing.T) {
	w := NewWriter()
	assert.Panics(t, func() {
		w.AddTree(DefaultTarget{Inner: DefaultTarget{Inner: Source{Path: "a.c"}}})
	})
}

func TestWriter_RenderPropagatesErrors(t *testing.T) {
	w := NewWriter()
	w.AddRule(ccRule)
	wantErr := errors.New("broken pipe")
	err := w.Render(errWriter{err: wantErr}, DefaultWidth)
	assert.ErrorIs(t, err, wantErr)
}

func TestWriter_RenderStyled(t *testing.T) {
	w := NewWriter()
	w.AddRule(ccRule)

	var buf bytes.Buffer
	require.NoError(t, w.RenderStyled(&buf, DefaultWidth, tagStyler{}))
	assert.True(t, strings.HasPrefix(buf.String(), "[keyword]rule[/] cc\n"))
}

type errWriter struct{ err error }

func (e errWriter) Write([]byte) (int, error) { return 0, e.err }

type tagStyler struct{}

func (tagStyler) Style(ann pretty.Annotation, s string) string {
	return "[" + ann.String() + "]" + s + "[/]"
}

package ninja

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ninjagen/internal/pretty"
)

func renderDoc(t *testing.T, doc pretty.Doc, width int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, pretty.Render(doc, width, &buf))
	return buf.String()
}

func TestRuleKey_ComparesByNameOnly(t *testing.T) {
	r1 := NewRule("a", "cmd")
	r2 := NewRule("b", "cmd")
	r3 := NewRule("a", "othercmd")

	assert.NotEqual(t, RuleKey(r1), RuleKey(r2))
	assert.Equal(t, RuleKey(r1), RuleKey(r3))
}

func TestRule_Doc(t *testing.T) {
	base := NewRule("a", "cmd")

	tests := []struct {
		name string
		rule Rule
		want string
	}{
		{"command only", base, "rule a\n  command = cmd\n"},
		{"description", base.WithDescription("d"), "rule a\n  command = cmd\n  description = d\n"},
		{"depfile", base.WithDepfile("$out.d"), "rule a\n  command = cmd\n  depfile = $out.d\n"},
		{
			"description and depfile",
			base.WithDescription("Compiling file $in").WithDepfile("$out.d"),
			"rule a\n  command = cmd\n  description = Compiling file $in\n  depfile = $out.d\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderDoc(t, tt.rule.Doc(), 80))
		})
	}
}

func TestRule_WithReturnsCopy(t *testing.T) {
	base := NewRule("a", "cmd")
	_ = base.WithDescription("d").WithDepfile("$out.d")
	assert.Empty(t, base.Description)
	assert.Empty(t, base.Depfile)
}

func TestBuild_Doc(t *testing.T) {
	t.Run("no vars", func(t *testing.T) {
		b := NewBuild("cc", []string{"a.o"}, []string{"a.c"})
		assert.Equal(t, "build a.o: cc a.c\n", renderDoc(t, b.Doc(), 80))
	})

	t.Run("single var", func(t *testing.T) {
		b := NewBuild("cc", []string{"a.o"}, []string{"a.c"})
		b.Vars = map[string]string{"flags": "-lm"}
		assert.Equal(t, "build a.o: cc a.c\n  flags = -lm\n", renderDoc(t, b.Doc(), 80))
	})

	t.Run("vars in key order", func(t *testing.T) {
		b := NewBuild("cc", []string{"a.o"}, []string{"a.c"})
		b.Vars = map[string]string{"zeta": "1", "alpha": "2"}
		assert.Equal(t, "build a.o: cc a.c\n  alpha = 2\n  zeta = 1\n", renderDoc(t, b.Doc(), 80))
	})

	t.Run("multiple outputs and inputs", func(t *testing.T) {
		b := NewBuild("gen", []string{"x.h", "x.c"}, []string{"x.idl", "common.idl"})
		assert.Equal(t, "build x.h x.c: gen x.idl common.idl\n", renderDoc(t, b.Doc(), 80))
	})

	t.Run("no inputs", func(t *testing.T) {
		b := NewBuild("stamp", []string{"done"}, nil)
		assert.Equal(t, "build done: stamp\n", renderDoc(t, b.Doc(), 80))
	})

	t.Run("paths are escaped", func(t *testing.T) {
		b := NewBuild("cc", []string{"my file.o", "c:d.o"}, []string{"../src/my file.c", "a$b.c"})
		assert.Equal(t, "build my$ file.o c$:d.o: cc ../src/my$ file.c a$$b.c\n", renderDoc(t, b.Doc(), 80))
		assert.Equal(t, "my file.o", b.Ref())
	})

	t.Run("long header wraps with continuations", func(t *testing.T) {
		b := NewBuild("cc", []string{"out.o"}, []string{"aaaaaaaaaa.c", "bbbbbbbbbb.c", "cccccccccc.c"})
		b.Vars = map[string]string{"flags": "-O2"}
		want := "build out.o: cc $\n" +
			"    aaaaaaaaaa.c $\n" +
			"    bbbbbbbbbb.c $\n" +
			"    cccccccccc.c\n" +
			"  flags = -O2\n"
		assert.Equal(t, want, renderDoc(t, b.Doc(), 30))
	})
}

func TestBuild_RefAndKey(t *testing.T) {
	b1 := NewBuild("cc", []string{"a.o", "a.d"}, []string{"a.c"})
	b2 := NewBuild("cc", []string{"a.o", "a.d"}, []string{"other.c"})
	b2.Vars = map[string]string{"flags": "-g"}
	b3 := NewBuild("ld", []string{"a.o", "a.d"}, []string{"a.c"})

	assert.Equal(t, "a.o", b1.Ref())
	assert.Equal(t, BuildKey(b1), BuildKey(b2))
	assert.NotEqual(t, BuildKey(b1), BuildKey(b3))
	assert.Equal(t, "", Build{Rule: "cc"}.Ref())
}

func TestDefault_Doc(t *testing.T) {
	assert.Equal(t, "default gen\n", renderDoc(t, Default{Target: "gen"}.Doc(), 80))
	assert.Equal(t, "default my$ app\n", renderDoc(t, Default{Target: "my app"}.Doc(), 80))
}

func TestEscapePath(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"a.c", "a.c"},
		{"my file.c", "my$ file.c"},
		{"a$b.c", "a$$b.c"},
		{"c:d.c", "c$:d.c"},
		{"../x y/$z:w", "../x$ y/$$z$:w"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, EscapePath(tc.in))
		})
	}
}

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildType(t *testing.T) {
	testCases := []struct {
		typ       BuildType
		shared    bool
		isLibrary bool
	}{
		{SharedExecutable, true, false},
		{SharedLibrary, true, true},
		{StaticExecutable, false, false},
		{StaticLibrary, false, true},
	}
	for _, tc := range testCases {
		t.Run(string(tc.typ), func(t *testing.T) {
			assert.Equal(t, tc.shared, tc.typ.IsShared())
			assert.Equal(t, tc.isLibrary, tc.typ.IsLibrary())
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	p := &Project{}
	p.ApplyDefaults("demo")
	assert.Equal(t, &Project{Language: LangC, Name: "demo", Type: SharedExecutable}, p)

	p = &Project{Language: LangCXX, Name: "tsp", Type: StaticLibrary}
	p.ApplyDefaults("demo")
	assert.Equal(t, "tsp", p.Name)
	assert.Equal(t, LangCXX, p.Language)
	assert.Equal(t, StaticLibrary, p.Type)
}

func TestValidate(t *testing.T) {
	valid := func() *Project {
		return &Project{Language: LangC, Name: "demo", Type: SharedExecutable}
	}

	t.Run("valid", func(t *testing.T) {
		p := valid()
		p.Defines = map[string]string{"DEBUG": "1", "_x9": ""}
		assert.NoError(t, p.Validate())
	})

	testCases := []struct {
		name    string
		mutate  func(p *Project)
		wantErr string
	}{
		{"bad language", func(p *Project) { p.Language = "rust" }, `unsupported language "rust"`},
		{"bad type", func(p *Project) { p.Type = "dynamic" }, `unsupported type "dynamic"`},
		{"empty name", func(p *Project) { p.Name = "" }, "project name must not be empty"},
		{"bad define", func(p *Project) { p.Defines = map[string]string{"1X": "y"} }, `invalid define name "1X"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid()
			tc.mutate(p)
			assert.ErrorContains(t, p.Validate(), tc.wantErr)
		})
	}
}

func TestDefineFlags(t *testing.T) {
	p := &Project{Defines: map[string]string{"VERSION": "2", "DEBUG": "", "ARCH": "x86"}}
	assert.Equal(t, []string{"-DARCH=x86", "-DDEBUG", "-DVERSION=2"}, p.DefineFlags())
	assert.Empty(t, (&Project{}).DefineFlags())
}

func TestSourceExtensions(t *testing.T) {
	assert.Equal(t, []string{".c"}, LangC.SourceExtensions())
	assert.Contains(t, LangCXX.SourceExtensions(), ".cpp")
}

func TestDiscover(t *testing.T) {
	t.Run("none present", func(t *testing.T) {
		path, err := Discover(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("hcl wins over yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ninjagen.yaml"), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ninjagen.hcl"), nil, 0o644))

		path, err := Discover(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "ninjagen.hcl"), path)
	})

	t.Run("directory in the way", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "ninjagen.yml"), 0o755))
		_, err := Discover(dir)
		assert.ErrorContains(t, err, "is a directory")
	})
}

type stubLoader struct{ name string }

func (s stubLoader) Load(context.Context, string) (*Project, error) {
	return &Project{Name: s.name}, nil
}

func TestLoadersFor(t *testing.T) {
	ls := Loaders{".hcl": stubLoader{"hcl"}, ".yml": stubLoader{"yaml"}}

	l, err := ls.For("dir/ninjagen.HCL")
	require.NoError(t, err)
	p, err := l.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "hcl", p.Name)

	_, err = ls.For("ninjagen.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

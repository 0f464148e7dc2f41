package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ninjagen/internal/app"
)

func TestParse_Defaults(t *testing.T) {
	cfg, exit, err := Parse(nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, &app.Config{
		ProjectDir: ".",
		BuildDir:   "build",
		Command:    app.CmdGenerate,
		Width:      80,
		Color:      app.ColorAuto,
		LogFormat:  "text",
		LogLevel:   "info",
	}, cfg)
}

func TestParse_CommandPosition(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"before flags", []string{"run", "-C", "proj", "-dest", "out"}},
		{"after flags", []string{"-C", "proj", "-dest", "out", "run"}},
		{"between flags", []string{"-C", "proj", "run", "-dest", "out"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, _, err := Parse(tc.args, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, app.CmdRun, cfg.Command)
			assert.Equal(t, "proj", cfg.ProjectDir)
			assert.Equal(t, "out", cfg.BuildDir)
		})
	}
}

func TestParse_AllFlags(t *testing.T) {
	cfg, _, err := Parse([]string{
		"-config", "alt.yml", "-width", "100", "-print", "-color", "ALWAYS",
		"-tree", "-log-format", "JSON", "-log-level", "debug",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "alt.yml", cfg.ConfigPath)
	assert.Equal(t, 100, cfg.Width)
	assert.True(t, cfg.Print)
	assert.True(t, cfg.Tree)
	assert.Equal(t, app.ColorAlways, cfg.Color)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-dest")
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"unknown flag", []string{"-nope"}, "flag provided but not defined: -nope"},
		{"unknown command", []string{"test"}, `unknown command "test"`},
		{"two commands", []string{"build", "run"}, "too many arguments: build run"},
		{"bad log format", []string{"-log-format", "xml"}, "invalid log-format"},
		{"bad log level", []string{"-log-level", "trace"}, "invalid log-level"},
		{"print with build", []string{"-print", "build"}, "-print cannot be combined"},
		{"bad color", []string{"-color", "rainbow"}, "invalid color mode"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, exit, err := Parse(tc.args, &bytes.Buffer{})
			assert.False(t, exit)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}

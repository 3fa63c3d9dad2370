package terminal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTheme_ZeroValueIsPlain(t *testing.T) {
	var th Theme
	assert.False(t, th.Enabled())
	assert.Equal(t, "x", th.Error("x"))
	assert.Equal(t, "--- END HISTORY ---", th.Banner("--- END HISTORY ---"))
}

func TestNewTheme_NonTTYIsPlain(t *testing.T) {
	var buf bytes.Buffer
	th := NewTheme(&buf, ColorAuto)
	assert.False(t, th.Enabled())
	assert.Equal(t, "Error: boom", th.Error("Error: boom"))
}

func TestNewTheme_Never(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, NewTheme(&buf, ColorNever).Enabled())
}

func TestNewTheme_AlwaysForcesColor(t *testing.T) {
	var buf bytes.Buffer
	th := NewTheme(&buf, ColorAlways)
	assert.True(t, th.Enabled())

	got := th.Error("fail")
	assert.Contains(t, got, "fail")
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, th.Banner("--- COMMAND HISTORY ---"), "--- COMMAND HISTORY ---")
}

func TestTheme_ColorKeepsMultilineShape(t *testing.T) {
	var buf bytes.Buffer
	th := NewTheme(&buf, ColorAlways)

	in := "a\tb\nlonger line"
	got := th.Warning(in)
	assert.Contains(t, got, in, "inline colors must not re-layout text")
}

func TestNewTheme_DumbTerminal(t *testing.T) {
	t.Setenv("TERM", "dumb")
	var buf bytes.Buffer
	assert.False(t, NewTheme(&buf, ColorAuto).Enabled())
}

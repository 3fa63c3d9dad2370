package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths_XDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))

	p := DefaultPaths()
	assert.Equal(t, filepath.Join(tmp, "config", "aiterm"), p.ConfigDir)
	assert.Equal(t, filepath.Join(tmp, "data", "aiterm"), p.DataDir)
	assert.True(t, filepath.IsAbs(p.HomeDir))
}

func TestConfigFile_EnvOverride(t *testing.T) {
	p := &Paths{ConfigDir: "/etc/aiterm"}

	t.Setenv("AITERM_CONFIG", "")
	assert.Equal(t, "/etc/aiterm/config.yaml", p.ConfigFile())

	t.Setenv("AITERM_CONFIG", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", p.ConfigFile())
}

func TestEnsureDirectories(t *testing.T) {
	tmp := t.TempDir()
	p := &Paths{
		ConfigDir: filepath.Join(tmp, "c"),
		DataDir:   filepath.Join(tmp, "d"),
	}
	require.NoError(t, p.EnsureDirectories())

	for _, dir := range []string{p.ConfigDir, p.DataDir, p.LogDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestExpandHome(t *testing.T) {
	home := homeDir()
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "src"), ExpandHome("~/src"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
	assert.Equal(t, "rel", ExpandHome("rel"))
}

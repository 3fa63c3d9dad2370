package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_LoadMissing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), ".aiterm_history"))

	entries, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_LoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist")
	require.NoError(t, os.WriteFile(path, []byte("ls -la\n\ngit status\r\ncd /tmp"), 0o644))

	entries, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"ls -la", "git status", "cd /tmp"}, entries)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist")
	s := NewFileStore(path)

	require.NoError(t, s.Save([]string{"one", "two", "three"}))
	require.NoError(t, s.Save([]string{"four"}))

	entries, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"four"}, entries, "save replaces, never appends")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "four\n", string(data))
}

func TestFileStore_RoundTripAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist")

	first := NewFileStore(path)
	require.NoError(t, first.Save([]string{"ls", "ai list go files", "cd src"}))

	second := NewFileStore(path)
	loaded, err := second.Load()
	require.NoError(t, err)
	loaded = append(loaded, "make test")
	require.NoError(t, second.Save(loaded))

	third, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"ls", "ai list go files", "cd src", "make test"}, third)
}

func TestFileStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "hist")
	require.NoError(t, NewFileStore(path).Save([]string{"pwd"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_SaveFlattensNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist")
	s := NewFileStore(path)
	require.NoError(t, s.Save([]string{"echo a\necho b"}))

	entries, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"echo a echo b"}, entries)
}

func TestFileStore_EmptySave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist")
	s := NewFileStore(path)
	require.NoError(t, s.Save(nil))

	entries, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

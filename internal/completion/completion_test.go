package completion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture builds {alpha/, alpha2, beta} plus a nested directory.
func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "alpha"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "alpha2"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "beta"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "cmd"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.go"), nil, 0o644))
	return root
}

func TestLastToken(t *testing.T) {
	tests := []struct {
		buffer string
		want   string
	}{
		{"", ""},
		{"al", "al"},
		{"ls al", "al"},
		{"cat src/ma", "src/ma"},
		{"ls ", ""},
		{"ls\tsrc", "src"},
		{"ls src", "src"},
	}
	for _, tt := range tests {
		t.Run(tt.buffer, func(t *testing.T) {
			assert.Equal(t, tt.want, LastToken(tt.buffer))
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		token, dir, partial string
	}{
		{"al", "", "al"},
		{"src/ma", "src/", "ma"},
		{"src/", "src/", ""},
		{"/et", "/", "et"},
		{"a/b/c", "a/b/", "c"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			dir, partial := Split(tt.token)
			assert.Equal(t, tt.dir, dir)
			assert.Equal(t, tt.partial, partial)
		})
	}
}

func TestCandidates_PrefixInWorkingDir(t *testing.T) {
	root := fixture(t)

	got := Candidates(Context{Buffer: "ls al", WorkingDir: root})
	assert.Equal(t, []string{"alpha" + string(filepath.Separator), "alpha2"}, got)
}

func TestCandidates_WithBaseDirectory(t *testing.T) {
	root := fixture(t)
	sep := string(filepath.Separator)

	got := Candidates(Context{Buffer: "cat src/", WorkingDir: root})
	assert.Equal(t, []string{"src/cmd" + sep, "src/main.go"}, got)

	got = Candidates(Context{Buffer: "cat src/m", WorkingDir: root})
	assert.Equal(t, []string{"src/main.go"}, got)
}

func TestCandidates_AbsoluteBase(t *testing.T) {
	root := fixture(t)

	got := Candidates(Context{Buffer: "ls " + root + "/be", WorkingDir: "/"})
	assert.Equal(t, []string{root + "/beta"}, got)
}

func TestCandidates_StartWithToken(t *testing.T) {
	root := fixture(t)

	for _, buf := range []string{"al", "vim src/", "cat src/ma", "ls b"} {
		token := LastToken(buf)
		for _, c := range Candidates(Context{Buffer: buf, WorkingDir: root}) {
			assert.Truef(t, len(c) >= len(token) && c[:len(token)] == token,
				"candidate %q must extend token %q", c, token)
		}
	}
}

func TestCandidates_MissingBase(t *testing.T) {
	root := fixture(t)
	assert.Empty(t, Candidates(Context{Buffer: "ls nope/x", WorkingDir: root}))
}

func TestCandidates_NoMatch(t *testing.T) {
	root := fixture(t)
	assert.Empty(t, Candidates(Context{Buffer: "zzz", WorkingDir: root}))
}

func TestCandidates_EmptyTokenListsAll(t *testing.T) {
	root := fixture(t)
	got := Candidates(Context{Buffer: "ls ", WorkingDir: root})
	assert.Len(t, got, 4)
}

func TestCandidates_SymlinkToDir(t *testing.T) {
	root := fixture(t)
	require.NoError(t, os.Symlink(filepath.Join(root, "src"), filepath.Join(root, "link")))

	got := Candidates(Context{Buffer: "cd li", WorkingDir: root})
	assert.Equal(t, []string{"link" + string(filepath.Separator)}, got)
}

func TestCandidate_Indexed(t *testing.T) {
	root := fixture(t)
	ctx := Context{Buffer: "al", WorkingDir: root}

	first, ok := Candidate(ctx, 0)
	require.True(t, ok)
	second, ok := Candidate(ctx, 1)
	require.True(t, ok)
	_, ok = Candidate(ctx, 2)
	assert.False(t, ok)
	_, ok = Candidate(ctx, -1)
	assert.False(t, ok)

	again, _ := Candidate(ctx, 0)
	assert.Equal(t, first, again, "same buffer and filesystem give the same answer")
	assert.NotEqual(t, first, second)
}

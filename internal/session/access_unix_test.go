//go:build !windows

package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeDir_NoAccess(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}
	st, root := newTestState(t)
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	err := st.ChangeDir("locked")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoAccess))
	assert.False(t, errors.Is(err, ErrNotDirectory))

	var dirErr *DirError
	require.ErrorAs(t, err, &dirErr)
	assert.Equal(t, "locked", dirErr.Path)
	assert.Equal(t, root, st.WorkingDir(), "working dir must not change")
}

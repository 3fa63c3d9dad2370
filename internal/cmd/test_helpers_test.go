package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

type journalGlobals struct {
	cwd     string
	session string
	limit   int
	failed  bool
	unique  bool
}

func withJournalGlobals(t *testing.T, g journalGlobals) {
	t.Helper()
	old := journalGlobals{
		limit:   journalLimit,
		cwd:     journalCWD,
		session: journalSession,
		failed:  journalFailed,
		unique:  journalUnique,
	}
	journalLimit = g.limit
	journalCWD = g.cwd
	journalSession = g.session
	journalFailed = g.failed
	journalUnique = g.unique

	t.Cleanup(func() {
		journalLimit = old.limit
		journalCWD = old.cwd
		journalSession = old.session
		journalFailed = old.failed
		journalUnique = old.unique
	})
}

// withConfigFile points AITERM_CONFIG at a temp file holding content (or
// at a missing file when content is empty) and clears env overrides.
func withConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	t.Setenv("AITERM_CONFIG", path)
	t.Setenv("AITERM_DEBUG", "")
	t.Setenv("AITERM_LOG_LEVEL", "")
	t.Setenv("AITERM_PROVIDER", "")
	t.Setenv("NO_COLOR", "1")
	return path
}

// testCommand returns a bare command whose output is captured.
func testCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&buf)
	c.SetErr(&buf)
	return c, &buf
}

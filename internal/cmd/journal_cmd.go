package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/aiterm/internal/config"
	"github.com/runger/aiterm/internal/storage"
	"github.com/runger/aiterm/internal/terminal"
)

var (
	journalLimit   int
	journalCWD     string
	journalSession string
	journalFailed  bool
	journalUnique  bool
)

var journalCmd = &cobra.Command{
	Use:     "journal",
	Short:   "Show commands recorded by the shell",
	GroupID: groupCore,
	Long: `Show commands executed inside aiterm.

Every command the shell runs is recorded in a local SQLite journal with
its directory, exit code, duration and execution mode. The list is printed
oldest first.

Examples:
  aiterm journal                 # Show last 20 commands
  aiterm journal -n 50           # Show last 50 commands
  aiterm journal --failed        # Only commands that failed
  aiterm journal --unique        # One row per distinct command
  aiterm journal --cwd=/tmp      # Commands run in /tmp`,
	Args: cobra.NoArgs,
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "Maximum number of commands to show")
	journalCmd.Flags().StringVar(&journalCWD, "cwd", "", "Filter by working directory")
	journalCmd.Flags().StringVar(&journalSession, "session", "", "Filter by session ID")
	journalCmd.Flags().BoolVar(&journalFailed, "failed", false, "Only show failed commands")
	journalCmd.Flags().BoolVar(&journalUnique, "unique", false, "Collapse repeated commands")
}

func runJournal(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, err := config.LoadFromFile(paths.ConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	w := cmd.OutOrStdout()

	path := cfg.JournalPath(paths)
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "No journal available. Database not found at: %s\n", path)
		return nil
	}
	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if journalSession != "" {
		_, err := store.GetSession(ctx, journalSession)
		if errors.Is(err, storage.ErrSessionNotFound) {
			fmt.Fprintf(w, "No session with ID %s.\n", journalSession)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to look up session: %w", err)
		}
	}

	commands, err := store.QueryCommands(ctx, storage.CommandQuery{
		SessionID:   journalSession,
		CWD:         journalCWD,
		Limit:       journalLimit,
		FailureOnly: journalFailed,
		Deduplicate: journalUnique,
	})
	if err != nil {
		return fmt.Errorf("failed to query journal: %w", err)
	}

	if len(commands) == 0 {
		fmt.Fprintln(w, "No commands recorded.")
		return nil
	}

	theme := terminal.NewTheme(w, cfg.UI.Color)
	// Oldest at top
	for i := len(commands) - 1; i >= 0; i-- {
		fmt.Fprintln(w, formatCommand(theme, commands[i]))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Showing %d command(s)\n", len(commands))
	return nil
}

func formatCommand(theme terminal.Theme, c storage.Command) string {
	timestamp := time.UnixMilli(c.TsStartUnixMs).Format("2006-01-02 15:04:05")

	var status string
	switch {
	case c.Interrupted:
		status = theme.Warning("^C")
	case c.ExitCode == 0:
		status = theme.Success("0")
	default:
		status = theme.Error(fmt.Sprintf("%d", c.ExitCode))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%s]  %s", timestamp, status, c.Command)
	fmt.Fprintf(&b, "  (%s", formatDurationMs(c.DurationMs))
	if c.Mode == storage.ModeInteractive {
		b.WriteString(", interactive")
	}
	b.WriteString(")")
	return b.String()
}

func formatDurationMs(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	if ms < 60000 {
		return fmt.Sprintf("%.1fs", float64(ms)/1000)
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}

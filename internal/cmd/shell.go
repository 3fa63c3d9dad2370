package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/aiterm/internal/config"
	"github.com/runger/aiterm/internal/history"
	"github.com/runger/aiterm/internal/logging"
	"github.com/runger/aiterm/internal/provider"
	"github.com/runger/aiterm/internal/sanitize"
	"github.com/runger/aiterm/internal/session"
	"github.com/runger/aiterm/internal/shell"
	"github.com/runger/aiterm/internal/storage"
	"github.com/runger/aiterm/internal/terminal"
)

func runShell(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, err := config.LoadFromFile(paths.ConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logFile, err := logging.OpenFile(cfg.LogPath(paths), cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
		logger = logging.Discard()
	} else {
		defer logFile.Close()
	}
	slog.SetDefault(logger)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	store := history.NewFileStore(cfg.HistoryPath(paths))
	past, err := store.Load()
	if err != nil {
		logger.Warn("history not loaded", "path", store.Path(), "error", err)
		past = nil
	}
	state, err := session.New(cwd, past)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	ctx := cmd.Context()
	journal, closeJournal := openJournal(ctx, cfg, paths, cwd, logger)
	defer closeJournal()

	assistant := newAssistant(cfg, journal, logger)

	reader, err := terminal.NewReader(terminal.ReaderOptions{
		WorkingDir: state.WorkingDir,
		History:    past,
	})
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer reader.Close()

	opts := shell.Options{
		State:  state,
		Reader: reader,
		Executor: shell.NewExecutor(shell.ExecutorOptions{
			Shell:               cfg.Shell.Binary,
			InteractiveCommands: cfg.Shell.InteractiveCommands,
		}),
		Suggester: assistant,
		History:   store,
		Out:       cmd.OutOrStdout(),
		Theme:     terminal.NewTheme(cmd.OutOrStdout(), cfg.UI.Color),
		Logger:    logger,
	}
	if journal != nil {
		opts.Recorder = journal
		logger = logger.With("journal_session", journal.SessionID())
		opts.Logger = logger
	}

	logger.Info("shell started", "cwd", cwd, "history_entries", state.Len(), "version", Version)
	return shell.New(opts).Run(ctx)
}

// openJournal starts a journal session. The journal is optional: any
// failure is logged and the shell runs without it.
func openJournal(ctx context.Context, cfg *config.Config, paths *config.Paths, cwd string, logger *slog.Logger) (*storage.Journal, func()) {
	noop := func() {}
	if !cfg.Journal.Enabled {
		return nil, noop
	}

	path := cfg.JournalPath(paths)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Warn("journal disabled", "path", path, "error", err)
		return nil, noop
	}
	store, err := storage.NewSQLiteStore(path, storage.WithLogger(logger))
	if err != nil {
		logger.Warn("journal disabled", "path", path, "error", err)
		return nil, noop
	}
	journal, err := storage.StartJournal(ctx, store, filepath.Base(cfg.Shell.Binary), cwd)
	if err != nil {
		logger.Warn("journal disabled", "path", path, "error", err)
		_ = store.Close()
		return nil, noop
	}

	return journal, func() {
		// The shell context may already be done at exit.
		endCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := journal.End(endCtx); err != nil {
			logger.Warn("failed to end journal session", "error", err)
		}
		if err := store.Close(); err != nil {
			logger.Warn("failed to close journal", "error", err)
		}
	}
}

func newAssistant(cfg *config.Config, journal *storage.Journal, logger *slog.Logger) *provider.Assistant {
	opts := provider.AssistantOptions{
		Registry: newRegistry(cfg),
		Timeout:  time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		Shell:    filepath.Base(cfg.Shell.Binary),
		Logger:   logger,
	}
	if journal != nil {
		opts.Recent = journalRecent(journal, cfg.Journal.RecentLimit, logger)
	}
	return provider.NewAssistant(opts)
}

func newRegistry(cfg *config.Config) *provider.Registry {
	san := sanitize.Disabled()
	if cfg.Privacy.SanitizeAICalls {
		san = sanitize.NewSanitizer()
	}

	// ai.model defaults to an OpenAI model; the claude CLI only gets it
	// when it names a Claude model.
	claudeModel := ""
	if strings.HasPrefix(cfg.AI.Model, "claude") {
		claudeModel = cfg.AI.Model
	}

	return provider.NewRegistry(cfg.AI.Provider,
		provider.NewOpenAIProvider(provider.OpenAIOptions{
			BaseURL:   cfg.AI.BaseURL,
			Model:     cfg.AI.Model,
			APIKeyEnv: cfg.AI.APIKeyEnv,
			Sanitizer: san,
		}),
		provider.NewAnthropicProvider(claudeModel, san),
	)
}

// recentJournal is the part of *storage.Journal the assistant reads.
type recentJournal interface {
	Recent(ctx context.Context, limit int) ([]storage.Command, error)
}

func journalRecent(j recentJournal, limit int, logger *slog.Logger) provider.RecentFunc {
	return func(ctx context.Context) []provider.CommandContext {
		cmds, err := j.Recent(ctx, limit)
		if err != nil {
			logger.Debug("recent commands unavailable", "error", err)
			return nil
		}
		out := make([]provider.CommandContext, 0, len(cmds))
		for _, c := range cmds {
			out = append(out, provider.CommandContext{Command: c.Command, ExitCode: c.ExitCode})
		}
		return out
	}
}

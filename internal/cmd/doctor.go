package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/aiterm/internal/config"
	"github.com/runger/aiterm/internal/provider"
	"github.com/runger/aiterm/internal/storage"
	"github.com/runger/aiterm/internal/terminal"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Short:   "Check aiterm configuration and dependencies",
	GroupID: groupSetup,
	Long: `Run diagnostic checks on your aiterm setup.

This command checks:
- Configuration validity
- Data directory
- Host shell
- History file
- Command journal
- AI provider availability

Examples:
  aiterm doctor`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

type checkResult struct {
	name    string
	status  string // "ok", "warn", "error"
	message string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, cfgResult := checkConfiguration(paths)

	results := make([]checkResult, 0, 8)
	results = append(results, cfgResult)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	results = append(results, checkDataDir(paths))
	results = append(results, checkShellBinary(cfg))
	results = append(results, checkHistoryFile(cfg, paths))
	results = append(results, checkJournal(cfg, paths))
	results = append(results, checkAIProviders(cfg)...)

	return printResults(cmd.OutOrStdout(), terminal.NewTheme(cmd.OutOrStdout(), cfg.UI.Color), results)
}

func printResults(w io.Writer, theme terminal.Theme, results []checkResult) error {
	fmt.Fprintln(w, theme.Banner("aiterm Doctor"))
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintln(w)

	hasErrors := false
	hasWarnings := false
	for _, r := range results {
		var statusIcon string
		switch r.status {
		case "ok":
			statusIcon = theme.Success("[OK]")
		case "warn":
			statusIcon = theme.Warning("[WARN]")
			hasWarnings = true
		case "error":
			statusIcon = theme.Error("[ERROR]")
			hasErrors = true
		}

		fmt.Fprintf(w, "  %s %s\n", statusIcon, r.name)
		if r.message != "" {
			fmt.Fprintf(w, "       %s\n", r.message)
		}
	}
	fmt.Fprintln(w)

	if hasErrors {
		fmt.Fprintln(w, theme.Error("Some checks failed. Please fix the errors above."))
		return errors.New("doctor found errors")
	}
	if hasWarnings {
		fmt.Fprintln(w, theme.Warning("All critical checks passed, but there are warnings."))
	} else {
		fmt.Fprintln(w, theme.Success("All checks passed!"))
	}
	return nil
}

func checkConfiguration(paths *config.Paths) (*config.Config, checkResult) {
	configFile := paths.ConfigFile()

	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return nil, checkResult{
			name:    "Configuration",
			status:  "error",
			message: fmt.Sprintf("Failed to load: %v", err),
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return cfg, checkResult{
			name:    "Configuration",
			status:  "ok",
			message: "Using defaults (no config file)",
		}
	}

	return cfg, checkResult{
		name:    "Configuration",
		status:  "ok",
		message: configFile,
	}
}

// checkNameDataDir is the label used for the data-directory health check.
const checkNameDataDir = "Data directory"

func checkDataDir(paths *config.Paths) checkResult {
	info, err := os.Stat(paths.DataDir)
	switch {
	case os.IsNotExist(err):
		return checkResult{
			name:    checkNameDataDir,
			status:  "warn",
			message: fmt.Sprintf("Missing: %s (will be created when needed)", paths.DataDir),
		}
	case err != nil:
		return checkResult{
			name:    checkNameDataDir,
			status:  "error",
			message: fmt.Sprintf("Error accessing: %s", paths.DataDir),
		}
	case !info.IsDir():
		return checkResult{
			name:    checkNameDataDir,
			status:  "error",
			message: fmt.Sprintf("Not a directory: %s", paths.DataDir),
		}
	}
	return checkResult{name: checkNameDataDir, status: "ok", message: paths.DataDir}
}

func checkShellBinary(cfg *config.Config) checkResult {
	path, err := exec.LookPath(cfg.Shell.Binary)
	if err != nil {
		return checkResult{
			name:    "Shell",
			status:  "error",
			message: fmt.Sprintf("%s not found: %v", cfg.Shell.Binary, err),
		}
	}
	return checkResult{name: "Shell", status: "ok", message: path}
}

func checkHistoryFile(cfg *config.Config, paths *config.Paths) checkResult {
	path := cfg.HistoryPath(paths)
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return checkResult{
			name:    "History",
			status:  "ok",
			message: fmt.Sprintf("%s (created on first exit)", path),
		}
	case err != nil:
		return checkResult{name: "History", status: "error", message: err.Error()}
	case info.IsDir():
		return checkResult{name: "History", status: "error", message: fmt.Sprintf("%s is a directory", path)}
	}
	return checkResult{name: "History", status: "ok", message: path}
}

func checkJournal(cfg *config.Config, paths *config.Paths) checkResult {
	if !cfg.Journal.Enabled {
		return checkResult{name: "Journal", status: "ok", message: "Disabled"}
	}

	path := cfg.JournalPath(paths)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return checkResult{
			name:    "Journal",
			status:  "ok",
			message: fmt.Sprintf("%s (created on first run)", path),
		}
	}

	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		return checkResult{
			name:    "Journal",
			status:  "error",
			message: fmt.Sprintf("Failed to open %s: %v", filepath.Base(path), err),
		}
	}
	defer store.Close()

	return checkResult{name: "Journal", status: "ok", message: path}
}

func checkAIProviders(cfg *config.Config) []checkResult {
	registry := newRegistry(cfg)

	results := make([]checkResult, 0, len(provider.ProviderPriority)+1)
	for _, name := range provider.ProviderPriority {
		p, ok := registry.Get(name)
		if !ok {
			continue
		}
		if p.Available() {
			results = append(results, checkResult{name: "Provider " + name, status: "ok", message: "Available"})
			continue
		}
		results = append(results, checkResult{
			name:    "Provider " + name,
			status:  "warn",
			message: providerHint(cfg, name),
		})
	}

	return append(results, checkProviderSelection(registry))
}

// checkProviderSelection reports which provider ai queries will use.
func checkProviderSelection(registry *provider.Registry) checkResult {
	preferred := registry.GetPreferred()
	available := registry.ListAvailable()

	if len(available) == 0 {
		return checkResult{
			name:    "AI assistance",
			status:  "warn",
			message: "No provider available. 'ai' queries and fix suggestions will fail.",
		}
	}
	if preferred != "auto" && !slices.Contains(available, preferred) {
		return checkResult{
			name:    "AI assistance",
			status:  "warn",
			message: fmt.Sprintf("ai.provider is %s but it is unavailable (available: %s)", preferred, strings.Join(available, ", ")),
		}
	}

	best, err := registry.GetBest()
	if err != nil {
		return checkResult{name: "AI assistance", status: "error", message: err.Error()}
	}
	return checkResult{
		name:    "AI assistance",
		status:  "ok",
		message: fmt.Sprintf("ai.provider %s, using %s", preferred, best.Name()),
	}
}

func providerHint(cfg *config.Config, name string) string {
	switch name {
	case "openai":
		return fmt.Sprintf("Set %s to enable", cfg.AI.APIKeyEnv)
	case "anthropic":
		return "claude CLI not found in PATH"
	}
	return "Unavailable"
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runger/aiterm/internal/config"
)

var configInit bool

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Show the effective configuration",
	GroupID: groupSetup,
	Long: `Show the effective aiterm configuration.

Prints the configuration after defaults, the config file and environment
overrides (AITERM_DEBUG, AITERM_LOG_LEVEL, AITERM_PROVIDER) are applied.

Configuration is stored in ~/.config/aiterm/config.yaml (XDG compliant).
AITERM_CONFIG points at a different file.

Examples:
  aiterm config          # Print effective configuration
  aiterm config --init   # Write a default config file if none exists`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write a default config file if none exists")
}

func runConfig(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	path := paths.ConfigFile()
	w := cmd.OutOrStdout()

	if configInit {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(w, "Config file already exists: %s\n", path)
			return nil
		}
		if err := config.DefaultConfig().SaveToFile(path); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote default config to: %s\n", path)
		return nil
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprint(w, string(data))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Config file: %s\n", path)
	fmt.Fprintf(w, "History:     %s\n", cfg.HistoryPath(paths))
	fmt.Fprintf(w, "Journal:     %s\n", cfg.JournalPath(paths))
	fmt.Fprintf(w, "Log:         %s\n", cfg.LogPath(paths))
	return nil
}

// Package cmd wires configuration, storage, providers and the terminal
// into the aiterm command line.
package cmd

import (
	"github.com/spf13/cobra"
)

const (
	groupCore  = "core"
	groupSetup = "setup"
)

var rootCmd = &cobra.Command{
	Use:   "aiterm",
	Short: "an interactive shell with AI assistance",
	Long: `aiterm - an interactive shell with AI assistance
  - ai <query>   → describe a task, review and run the command
  - failed commands get a suggested fix
  - Tab completes paths, ↑↓ recalls history`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runShell,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Core Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(doctorCmd)
}

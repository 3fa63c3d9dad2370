// Package config provides configuration management for aiterm.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the per-user locations aiterm reads and writes.
type Paths struct {
	// HomeDir is the user's home directory.
	HomeDir string

	// ConfigDir is the directory for configuration files (~/.config/aiterm).
	ConfigDir string

	// DataDir is the directory for the journal and logs (~/.local/share/aiterm).
	DataDir string
}

// DefaultPaths returns the default paths based on the XDG Base Directory spec.
// On Windows, it uses %APPDATA% and %LOCALAPPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Paths{
			HomeDir:   home,
			ConfigDir: filepath.Join(appData, "aiterm"),
			DataDir:   filepath.Join(localAppData, "aiterm"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		HomeDir:   home,
		ConfigDir: filepath.Join(configHome, "aiterm"),
		DataDir:   filepath.Join(dataHome, "aiterm"),
	}
}

// ConfigFile returns the path to the main configuration file.
// AITERM_CONFIG overrides the default location.
func (p *Paths) ConfigFile() string {
	if v := os.Getenv("AITERM_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// HistoryFile returns the default persisted history location (~/.aiterm_history).
func (p *Paths) HistoryFile() string {
	return filepath.Join(p.HomeDir, ".aiterm_history")
}

// JournalFile returns the path to the SQLite command journal.
func (p *Paths) JournalFile() string {
	return filepath.Join(p.DataDir, "journal.db")
}

// LogDir returns the path to the log directory.
func (p *Paths) LogDir() string {
	return filepath.Join(p.DataDir, "logs")
}

// LogFile returns the path to the shell log file.
func (p *Paths) LogFile() string {
	return filepath.Join(p.LogDir(), "aiterm.log")
}

// EnsureDirectories creates the config, data and log directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ConfigDir, p.DataDir, p.LogDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// ExpandHome replaces a leading "~" or "~/" in path with the home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if len(path) >= 2 && path[0] == '~' && os.IsPathSeparator(path[1]) {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}

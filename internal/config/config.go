package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the aiterm configuration.
type Config struct {
	AI      AIConfig      `yaml:"ai"`
	Shell   ShellConfig   `yaml:"shell"`
	History HistoryConfig `yaml:"history"`
	Journal JournalConfig `yaml:"journal"`
	Privacy PrivacyConfig `yaml:"privacy"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
}

// AIConfig holds suggestion provider settings.
type AIConfig struct {
	Provider       string `yaml:"provider"`        // auto, openai, or anthropic
	Model          string `yaml:"model"`           // Provider-specific model
	BaseURL        string `yaml:"base_url"`        // OpenAI-compatible API root
	APIKeyEnv      string `yaml:"api_key_env"`     // Env var holding the API key
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-request limit (0 = none)
}

// ShellConfig holds execution settings.
type ShellConfig struct {
	Binary              string   `yaml:"binary"`               // Host shell used for "-c"
	InteractiveCommands []string `yaml:"interactive_commands"` // Programs that need the terminal
}

// HistoryConfig holds persisted history settings.
type HistoryConfig struct {
	File string `yaml:"file"` // History file (empty = ~/.aiterm_history)
}

// JournalConfig holds command journal settings.
type JournalConfig struct {
	Enabled     bool   `yaml:"enabled"`      // Record executed commands in SQLite
	Path        string `yaml:"path"`         // Database path (empty = data dir)
	RecentLimit int    `yaml:"recent_limit"` // Recent commands sent as AI context
}

// PrivacyConfig holds privacy-related settings.
type PrivacyConfig struct {
	SanitizeAICalls bool `yaml:"sanitize_ai_calls"` // Redact secrets before AI calls
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file (empty = data dir)
}

// UIConfig holds display settings.
type UIConfig struct {
	Color string `yaml:"color"` // auto, always, or never
}

// DefaultInteractiveCommands lists programs that take over the terminal.
var DefaultInteractiveCommands = []string{"nano", "vim", "vi", "sudo", "ssh", "top", "htop", "less", "more"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:       "auto",
			Model:          "gpt-3.5-turbo",
			BaseURL:        "https://api.openai.com/v1",
			APIKeyEnv:      "OPENAI_API_KEY",
			TimeoutSeconds: 30,
		},
		Shell: ShellConfig{
			Binary:              defaultShell(),
			InteractiveCommands: append([]string(nil), DefaultInteractiveCommands...),
		},
		Journal: JournalConfig{
			Enabled:     true,
			RecentLimit: 10,
		},
		Privacy: PrivacyConfig{
			SanitizeAICalls: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			Color: "auto",
		},
	}
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFromFile(DefaultPaths().ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns the default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks enum fields and ranges.
func (c *Config) Validate() error {
	if !isValidProvider(c.AI.Provider) {
		return fmt.Errorf("invalid ai.provider: %s (must be auto, openai, or anthropic)", c.AI.Provider)
	}
	if c.AI.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid ai.timeout_seconds: must be non-negative")
	}
	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("invalid log.level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}
	if strings.TrimSpace(c.Shell.Binary) == "" {
		return fmt.Errorf("shell.binary must not be empty")
	}
	switch c.UI.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid ui.color: %s (must be auto, always, or never)", c.UI.Color)
	}
	if c.Journal.RecentLimit < 0 {
		return fmt.Errorf("invalid journal.recent_limit: must be non-negative")
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("AITERM_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
	if v := os.Getenv("AITERM_LOG_LEVEL"); v != "" && isValidLogLevel(v) {
		c.Log.Level = v
	}
	if v := os.Getenv("AITERM_PROVIDER"); v != "" && isValidProvider(v) {
		c.AI.Provider = v
	}
}

// HistoryPath resolves the history file location.
func (c *Config) HistoryPath(p *Paths) string {
	if c.History.File != "" {
		return ExpandHome(c.History.File)
	}
	return p.HistoryFile()
}

// JournalPath resolves the journal database location.
func (c *Config) JournalPath(p *Paths) string {
	if c.Journal.Path != "" {
		return ExpandHome(c.Journal.Path)
	}
	return p.JournalFile()
}

// LogPath resolves the log file location.
func (c *Config) LogPath(p *Paths) string {
	if c.Log.File != "" {
		return ExpandHome(c.Log.File)
	}
	return p.LogFile()
}

func isValidProvider(provider string) bool {
	switch provider {
	case "auto", "openai", "anthropic":
		return true
	default:
		return false
	}
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

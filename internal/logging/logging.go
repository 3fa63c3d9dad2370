// Package logging builds the slog logger used across aiterm.
//
// The terminal belongs to the user, so records go to a file rather than
// stderr. Format is one logfmt line per record:
//
//	ts=2024-01-15T10:30:00Z level=INFO msg="session started" session_id=...
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config configures the logger.
type Config struct {
	// Output is the writer for log output (default: io.Discard)
	Output io.Writer

	// Level is the minimum log level (default: LevelInfo)
	Level slog.Level
}

// New creates a text logger writing to cfg.Output.
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = &Config{Level: slog.LevelInfo}
	}
	out := cfg.Output
	if out == nil {
		out = io.Discard
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Key = "ts"
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return New(&Config{Output: io.Discard})
}

// OpenFile opens (appending) the log file at path and returns a logger
// writing to it together with the file to close at exit.
func OpenFile(path, level string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(&Config{Output: f, Level: ParseLevel(level)}), f, nil
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown values
// fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

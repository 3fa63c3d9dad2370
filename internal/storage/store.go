// Package storage provides the SQLite command journal for aiterm.
// It records sessions and the commands executed in them, and serves recent
// commands back as context for AI requests.
package storage

import (
	"context"
)

// Store defines the interface for all journal operations.
type Store interface {
	// Sessions
	CreateSession(ctx context.Context, s *Session) error
	EndSession(ctx context.Context, sessionID string, endTime int64) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// Commands
	CreateCommand(ctx context.Context, c *Command) error
	QueryCommands(ctx context.Context, q CommandQuery) ([]Command, error)

	// Lifecycle
	Close() error
}

// Session represents one run of the interactive shell.
type Session struct {
	SessionID       string
	StartedAtUnixMs int64
	EndedAtUnixMs   *int64
	Shell           string
	OS              string
	Hostname        string
	Username        string
	InitialCWD      string
}

// Execution modes recorded with each command.
const (
	ModeCaptured    = "captured"
	ModeInteractive = "interactive"
)

// Command represents a command executed in a session.
type Command struct {
	ID            int64
	CommandID     string
	SessionID     string
	TsStartUnixMs int64
	TsEndUnixMs   int64
	DurationMs    int64
	CWD           string
	Command       string
	CommandNorm   string
	CommandHash   string
	Mode          string // ModeCaptured or ModeInteractive
	ExitCode      int
	Interrupted   bool
}

// IsSuccess reports whether the command exited cleanly.
func (c Command) IsSuccess() bool {
	return c.ExitCode == 0 && !c.Interrupted
}

// CommandQuery defines parameters for querying commands.
type CommandQuery struct {
	SessionID   string // Include only this session (empty = all)
	CWD         string // Include only this directory (empty = all)
	Limit       int    // Newest N commands (0 = no limit)
	FailureOnly bool   // Only return failed commands
	Deduplicate bool   // Keep only the newest row per normalized command
}

package storage

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Entry describes one finished command for the journal.
type Entry struct {
	Command     string
	CWD         string
	Mode        string
	ExitCode    int
	Interrupted bool
	Start       time.Time
	End         time.Time
}

// Journal binds a Store to the current session.
type Journal struct {
	store     Store
	sessionID string
}

// StartJournal opens a new session row and returns a Journal writing to it.
func StartJournal(ctx context.Context, store Store, shell, cwd string) (*Journal, error) {
	hostname, _ := os.Hostname()
	username := ""
	if u, err := user.Current(); err == nil {
		username = u.Username
	}

	j := &Journal{store: store, sessionID: uuid.NewString()}
	err := store.CreateSession(ctx, &Session{
		SessionID:       j.sessionID,
		StartedAtUnixMs: time.Now().UnixMilli(),
		Shell:           shell,
		OS:              runtime.GOOS,
		Hostname:        hostname,
		Username:        username,
		InitialCWD:      cwd,
	})
	if err != nil {
		return nil, fmt.Errorf("start journal session: %w", err)
	}
	return j, nil
}

// SessionID returns the session this journal writes to.
func (j *Journal) SessionID() string {
	return j.sessionID
}

// Record stores a finished command.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	return j.store.CreateCommand(ctx, &Command{
		CommandID:     uuid.NewString(),
		SessionID:     j.sessionID,
		TsStartUnixMs: e.Start.UnixMilli(),
		TsEndUnixMs:   e.End.UnixMilli(),
		DurationMs:    e.End.Sub(e.Start).Milliseconds(),
		CWD:           e.CWD,
		Command:       e.Command,
		Mode:          e.Mode,
		ExitCode:      e.ExitCode,
		Interrupted:   e.Interrupted,
	})
}

// Recent returns up to limit distinct recent commands across all sessions,
// oldest first so they read as a timeline.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Command, error) {
	if limit <= 0 {
		return nil, nil
	}
	cmds, err := j.store.QueryCommands(ctx, CommandQuery{Limit: limit, Deduplicate: true})
	if err != nil {
		return nil, err
	}
	slices.Reverse(cmds)
	return cmds, nil
}

// End marks the session finished.
func (j *Journal) End(ctx context.Context) error {
	return j.store.EndSession(ctx, j.sessionID, time.Now().UnixMilli())
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// CreateCommand records an executed command. The normalized form and its
// hash are derived when not already set.
func (s *SQLiteStore) CreateCommand(ctx context.Context, cmd *Command) error {
	if cmd == nil {
		return errors.New("command cannot be nil")
	}
	if cmd.CommandID == "" {
		return errors.New("command_id is required")
	}
	if cmd.SessionID == "" {
		return errors.New(errSessionIDRequired)
	}
	if cmd.CWD == "" {
		return errors.New("cwd is required")
	}
	if cmd.Command == "" {
		return errors.New("command is required")
	}
	if cmd.Mode == "" {
		cmd.Mode = ModeCaptured
	}

	if cmd.CommandNorm == "" {
		cmd.CommandNorm = NormalizeCommand(cmd.Command)
	}
	if cmd.CommandHash == "" {
		cmd.CommandHash = HashCommand(cmd.CommandNorm)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO commands (
			command_id, session_id, ts_start_unix_ms, ts_end_unix_ms,
			duration_ms, cwd, command, command_norm, command_hash,
			mode, exit_code, interrupted, is_success
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		cmd.CommandID,
		cmd.SessionID,
		cmd.TsStartUnixMs,
		cmd.TsEndUnixMs,
		cmd.DurationMs,
		cmd.CWD,
		cmd.Command,
		cmd.CommandNorm,
		cmd.CommandHash,
		cmd.Mode,
		cmd.ExitCode,
		boolInt(cmd.Interrupted),
		boolInt(cmd.IsSuccess()),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("session_id %s does not exist", cmd.SessionID)
		}
		if isDuplicateKeyError(err) {
			return fmt.Errorf("command with id %s already exists", cmd.CommandID)
		}
		return fmt.Errorf("failed to create command: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		cmd.ID = id
	}
	return nil
}

// QueryCommands returns commands matching q, newest first.
func (s *SQLiteStore) QueryCommands(ctx context.Context, q CommandQuery) ([]Command, error) {
	var where strings.Builder
	where.WriteString("WHERE 1=1")
	args := make([]any, 0, 4)

	if q.SessionID != "" {
		where.WriteString(" AND session_id = ?")
		args = append(args, q.SessionID)
	}
	if q.CWD != "" {
		where.WriteString(" AND cwd = ?")
		args = append(args, q.CWD)
	}
	if q.FailureOnly {
		where.WriteString(" AND is_success = 0")
	}

	filter := where.String()
	if q.Deduplicate {
		// Same filter inside the subquery so the newest matching row per
		// normalized command wins.
		filter += " AND id IN (SELECT MAX(id) FROM commands " + where.String() + " GROUP BY command_hash)"
		args = append(args, args...)
	}

	query := `
		SELECT id, command_id, session_id, ts_start_unix_ms, ts_end_unix_ms,
		       duration_ms, cwd, command, command_norm, command_hash,
		       mode, exit_code, interrupted
		FROM commands
	` + filter + " ORDER BY ts_start_unix_ms DESC, id DESC"

	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	} else {
		// Default limit to prevent unbounded queries
		query += " LIMIT 1000"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query commands: %w", err)
	}
	defer rows.Close()

	var commands []Command
	for rows.Next() {
		var cmd Command
		var interrupted int
		err := rows.Scan(
			&cmd.ID,
			&cmd.CommandID,
			&cmd.SessionID,
			&cmd.TsStartUnixMs,
			&cmd.TsEndUnixMs,
			&cmd.DurationMs,
			&cmd.CWD,
			&cmd.Command,
			&cmd.CommandNorm,
			&cmd.CommandHash,
			&cmd.Mode,
			&cmd.ExitCode,
			&interrupted,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan command: %w", err)
		}
		cmd.Interrupted = interrupted != 0
		commands = append(commands, cmd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating commands: %w", err)
	}

	return commands, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

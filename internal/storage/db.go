package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// walCheckpointInterval is how often the WAL file is checkpointed
	// during long interactive sessions.
	walCheckpointInterval = 5 * time.Minute
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db        *sql.DB
	logger    *slog.Logger
	stopCh    chan struct{} // signals background goroutines to stop
	stoppedCh chan struct{} // signals background goroutines have stopped
	closeOnce sync.Once     // ensures Close() is idempotent
	closeErr  error         // stores the error from Close()
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithLogger sets the logger used for background maintenance errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *SQLiteStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSQLiteStore opens (creating if needed) the journal at dbPath.
// The database is opened with WAL mode enabled.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer; keep the connection so pragmas stay applied.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{
		db:        db,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(store)
	}

	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	go store.walCheckpointLoop()

	return store, nil
}

// Close closes the database connection.
// It is safe to call Close multiple times.
func (s *SQLiteStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopCh)
		<-s.stoppedCh

		// Merge the WAL into the main file before closing.
		_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

// DB returns the underlying database connection for advanced use cases.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) walCheckpointLoop() {
	defer close(s.stoppedCh)

	ticker := time.NewTicker(walCheckpointInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
				s.logger.Warn("WAL checkpoint failed", "error", err)
			}
		}
	}
}

// migrations are applied in order; each runs once.
var migrations = []struct {
	version int
	sql     string
}{
	{version: 1, sql: migrationV1},
}

// migrate runs database migrations to ensure the schema is up to date.
func (s *SQLiteStore) migrate(ctx context.Context) error {
	currentVersion := 0
	row := s.db.QueryRowContext(ctx, `
		SELECT version FROM schema_meta ORDER BY version DESC LIMIT 1
	`)
	if err := row.Scan(&currentVersion); err != nil {
		if !errors.Is(err, sql.ErrNoRows) && !isTableNotFoundError(err) {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		currentVersion = 0
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		if _, err := s.db.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("migration v%d failed: %w", m.version, err)
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO schema_meta (version, applied_at_unix_ms)
			VALUES (?, ?)
		`, m.version, time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.version, err)
		}
	}

	return nil
}

func isTableNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

func isDuplicateKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// migrationV1 creates the journal schema.
const migrationV1 = `
CREATE TABLE IF NOT EXISTS schema_meta (
  version INTEGER PRIMARY KEY,
  applied_at_unix_ms INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
  session_id TEXT PRIMARY KEY,
  started_at_unix_ms INTEGER NOT NULL,
  ended_at_unix_ms INTEGER,
  shell TEXT NOT NULL,
  os TEXT NOT NULL,
  hostname TEXT,
  username TEXT,
  initial_cwd TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at_unix_ms DESC);

CREATE TABLE IF NOT EXISTS commands (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  command_id TEXT NOT NULL UNIQUE,
  session_id TEXT NOT NULL REFERENCES sessions(session_id),

  ts_start_unix_ms INTEGER NOT NULL,
  ts_end_unix_ms INTEGER NOT NULL,
  duration_ms INTEGER NOT NULL DEFAULT 0,

  cwd TEXT NOT NULL,

  command TEXT NOT NULL,
  command_norm TEXT NOT NULL,
  command_hash TEXT NOT NULL,
  mode TEXT NOT NULL,

  exit_code INTEGER NOT NULL,
  interrupted INTEGER NOT NULL DEFAULT 0,
  is_success INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_commands_session ON commands(session_id, ts_start_unix_ms DESC);
CREATE INDEX IF NOT EXISTS idx_commands_ts ON commands(ts_start_unix_ms DESC);
CREATE INDEX IF NOT EXISTS idx_commands_cwd ON commands(cwd, ts_start_unix_ms DESC);
CREATE INDEX IF NOT EXISTS idx_commands_hash ON commands(command_hash);
`

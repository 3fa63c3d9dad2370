// Package history persists the shell's command history as a plain text
// file, one entry per line.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store loads and saves the full history list.
type Store interface {
	Load() ([]string, error)
	Save(entries []string) error
}

// FileStore keeps history in a newline-separated file. Save overwrites the
// whole file; it never appends.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads every entry in file order. A missing file is an empty history.
func (s *FileStore) Load() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var entries []string
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return entries, nil
}

// Save replaces the file contents with entries. The write goes to a
// temporary file that is renamed over the old one.
func (s *FileStore) Save(entries []string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*")
	if err != nil {
		return fmt.Errorf("failed to create temp history: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := bufio.NewWriter(tmp)
	for _, e := range entries {
		// Entries are single lines; embedded newlines would split them on reload.
		e = strings.ReplaceAll(e, "\n", " ")
		if _, err := w.WriteString(e + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write history: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set history permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close history: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace history: %w", err)
	}
	return nil
}

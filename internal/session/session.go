// Package session holds the REPL's mutable state: the working directory
// commands run in and the history of entered lines.
//
// A State is owned by the loop that created it and is not safe for
// concurrent use.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runger/aiterm/internal/config"
)

var (
	// ErrDirNotFound is returned when a cd target does not exist.
	ErrDirNotFound = errors.New("directory not found")
	// ErrNotDirectory is returned when a cd target exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrNoAccess is returned when a cd target is a directory the process
	// may not enter.
	ErrNoAccess = errors.New("permission denied")
)

// DirError reports a rejected working-directory change.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

// State is the session's working directory and command history.
type State struct {
	workingDir string
	history    []string
}

// New returns a State rooted at dir with the given history. dir must be an
// existing directory.
func New(dir string, history []string) (*State, error) {
	abs, err := resolveDir(dir, "")
	if err != nil {
		return nil, err
	}
	return &State{
		workingDir: abs,
		history:    append([]string(nil), history...),
	}, nil
}

// WorkingDir returns the current working directory.
func (s *State) WorkingDir() string {
	return s.workingDir
}

// ChangeDir validates target and, on success, makes it the working
// directory. Relative targets resolve against the current working
// directory; "~" expands to the home directory. On failure the state is
// unchanged and a *DirError wrapping ErrDirNotFound, ErrNotDirectory or
// ErrNoAccess is returned.
func (s *State) ChangeDir(target string) error {
	abs, err := resolveDir(target, s.workingDir)
	if err != nil {
		return err
	}
	s.workingDir = abs
	return nil
}

// Append records a line at the end of the history.
func (s *State) Append(line string) {
	s.history = append(s.history, line)
}

// History returns a copy of the history, oldest first.
func (s *State) History() []string {
	return append([]string(nil), s.history...)
}

// Len returns the number of history entries.
func (s *State) Len() int {
	return len(s.history)
}

func resolveDir(target, base string) (string, error) {
	path := config.ExpandHome(target)
	if !filepath.IsAbs(path) && base != "" {
		path = filepath.Join(base, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &DirError{Path: target, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &DirError{Path: target, Err: ErrDirNotFound}
		}
		return "", &DirError{Path: target, Err: err}
	}
	if !info.IsDir() {
		return "", &DirError{Path: target, Err: ErrNotDirectory}
	}
	if err := canEnter(abs); err != nil {
		return "", &DirError{Path: target, Err: ErrNoAccess}
	}
	return abs, nil
}

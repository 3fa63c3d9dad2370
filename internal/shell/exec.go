package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/runger/aiterm/internal/sanitize"
)

// Mode is how a command line is run.
type Mode int

const (
	// ModeCaptured runs the line with output captured for display and diagnosis.
	ModeCaptured Mode = iota
	// ModeInteractive hands the terminal to the child.
	ModeInteractive
)

func (m Mode) String() string {
	if m == ModeInteractive {
		return "interactive"
	}
	return "captured"
}

// Result is the outcome of one executed command line.
type Result struct {
	Output      string // stdout then stderr, ANSI stripped and trimmed; empty in interactive mode
	ExitCode    int
	Mode        Mode
	Interrupted bool
}

// ExecutorOptions configures an Executor. Zero fields take defaults.
type ExecutorOptions struct {
	Shell               string   // host shell run with -c (default /bin/sh)
	InteractiveCommands []string // program names that need the terminal
	Stdin               io.Reader
	Stdout              io.Writer
	Stderr              io.Writer
	Process             ProcessController
	GracePeriod         time.Duration
}

// Executor runs command lines through the host shell.
type Executor struct {
	shell       string
	interactive map[string]struct{}
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	proc        ProcessController
	grace       time.Duration
}

// NewExecutor creates an Executor.
func NewExecutor(opts ExecutorOptions) *Executor {
	e := &Executor{
		shell:       opts.Shell,
		interactive: make(map[string]struct{}, len(opts.InteractiveCommands)),
		stdin:       opts.Stdin,
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		proc:        opts.Process,
		grace:       opts.GracePeriod,
	}
	for _, name := range opts.InteractiveCommands {
		e.interactive[name] = struct{}{}
	}
	if e.shell == "" {
		e.shell = "/bin/sh"
	}
	if e.stdin == nil {
		e.stdin = os.Stdin
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	if e.proc == nil {
		e.proc = NewProcessController()
	}
	if e.grace <= 0 {
		e.grace = DefaultGracePeriod
	}
	return e
}

// IsInteractive reports whether any word of line names an interactive
// program. Words are split shell-style and again on pipe and list
// operators, and compared by base name so /usr/bin/vim matches vim.
func (e *Executor) IsInteractive(line string) bool {
	words, err := shlex.Split(line)
	if err != nil {
		// Unbalanced quotes
		words = strings.Fields(line)
	}
	for _, word := range words {
		for _, part := range strings.FieldsFunc(word, isShellOperator) {
			if _, ok := e.interactive[filepath.Base(part)]; ok {
				return true
			}
		}
	}
	return false
}

func isShellOperator(r rune) bool {
	switch r {
	case '|', ';', '&', '(', ')', '<', '>', '`':
		return true
	}
	return false
}

// Run executes line in dir. Cancelling ctx interrupts a captured command;
// interactive commands receive terminal signals directly and are waited for.
// The returned error covers failures to launch or wait, not nonzero exits.
func (e *Executor) Run(ctx context.Context, line, dir string) (Result, error) {
	if e.IsInteractive(line) {
		return e.runInteractive(line, dir)
	}
	return e.runCaptured(ctx, line, dir)
}

func (e *Executor) runCaptured(ctx context.Context, line, dir string) (Result, error) {
	res := Result{Mode: ModeCaptured}

	cmd := exec.Command(e.shell, "-c", line)
	cmd.Dir = dir
	// Stdin stays nil (/dev/null): a child outside the foreground process
	// group would stop on a terminal read.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := e.proc.Start(cmd); err != nil {
		return res, fmt.Errorf("start %s: %w", e.shell, err)
	}
	waitErr := e.proc.Wait(ctx, cmd, e.grace)

	res.Output = sanitize.CleanOutput(stdout.String() + stderr.String())
	res.Interrupted = ctx.Err() != nil
	code, err := exitStatus(waitErr)
	res.ExitCode = code
	return res, err
}

func (e *Executor) runInteractive(line, dir string) (Result, error) {
	res := Result{Mode: ModeInteractive}

	cmd := exec.Command(e.shell, "-c", line)
	cmd.Dir = dir
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	// The child shares our process group and gets Ctrl+C from the terminal;
	// catching SIGINT here keeps aiterm alive while it runs.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	if err := cmd.Start(); err != nil {
		return res, fmt.Errorf("start %s: %w", e.shell, err)
	}
	code, err := exitStatus(cmd.Wait())
	res.ExitCode = code
	return res, err
}

// exitStatus turns a Wait error into an exit code. Only non-exit failures
// are returned as errors.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return signalExitCode(exitErr), nil
	}
	return -1, fmt.Errorf("wait: %w", err)
}

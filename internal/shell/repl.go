package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"time"

	"github.com/runger/aiterm/internal/history"
	"github.com/runger/aiterm/internal/logging"
	"github.com/runger/aiterm/internal/sanitize"
	"github.com/runger/aiterm/internal/session"
	"github.com/runger/aiterm/internal/storage"
	"github.com/runger/aiterm/internal/terminal"
)

// Messages shown by the loop.
const (
	msgExitHint        = "Use 'exit' to quit the terminal."
	msgGoodbye         = "Exiting the AI-Powered Custom Terminal. Goodbye!"
	msgInterrupted     = "Interrupted by user."
	msgDiscarded       = "Command discarded."
	msgNoSuggestion    = "Unable to generate suggestion."
	msgModifyPrompt    = "Modify the command if needed (or press Enter to keep it): "
	msgConfirmPrompt   = "Do you want to execute this command? (y/n): "
	bannerHistory      = "--- COMMAND HISTORY ---"
	bannerHistoryEnd   = "--- END HISTORY ---"
	bannerGenerated    = "--- AI GENERATED COMMAND ---"
	bannerGeneratedEnd = "--- END GENERATED COMMAND ---"
	bannerFix          = "--- AI SUGGESTION TO FIX ERROR ---"
	bannerFixEnd       = "--- END SUGGESTION ---"
	clearScreen        = "\x1b[H\x1b[2J"
)

// Outcome is the result of one loop iteration.
type Outcome int

const (
	// OutcomeContinue means read the next line.
	OutcomeContinue Outcome = iota
	// OutcomeExit means the user asked to leave.
	OutcomeExit
	// OutcomeFailed means the iteration hit an unexpected error; the loop
	// reports it and continues.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExit:
		return "exit"
	case OutcomeFailed:
		return "failed"
	default:
		return "continue"
	}
}

// LineReader is the interactive input the loop reads from. Implementations
// return terminal.ErrInterrupt for Ctrl+C and io.EOF for Ctrl+D.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	ReadLineWithDefault(prompt, def string) (string, error)
}

// historyRecaller is implemented by readers with Up-arrow recall.
type historyRecaller interface {
	AddHistory(line string)
}

// Suggester answers AI requests.
type Suggester interface {
	Translate(ctx context.Context, query, cwd string) (string, error)
	Diagnose(ctx context.Context, command, output string, exitCode int, cwd string) (string, error)
}

// Recorder journals executed commands.
type Recorder interface {
	Record(ctx context.Context, e storage.Entry) error
}

// InterruptScope derives a context cancelled by Ctrl+C for one operation.
type InterruptScope func(ctx context.Context) (context.Context, context.CancelFunc)

func notifyInterrupt(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

// Options configures a REPL. State, Reader and Executor are required.
type Options struct {
	State      *session.State
	Reader     LineReader
	Executor   *Executor
	Suggester  Suggester     // nil disables AI answers
	Recorder   Recorder      // nil disables journaling
	History    history.Store // nil disables persistence
	Out        io.Writer
	Theme      terminal.Theme
	Logger     *slog.Logger
	Interrupts InterruptScope
}

// REPL is the interactive read-classify-dispatch loop.
type REPL struct {
	state      *session.State
	reader     LineReader
	exec       *Executor
	suggester  Suggester
	recorder   Recorder
	history    history.Store
	out        io.Writer
	theme      terminal.Theme
	logger     *slog.Logger
	interrupts InterruptScope
}

// New creates a REPL.
func New(opts Options) *REPL {
	r := &REPL{
		state:      opts.State,
		reader:     opts.Reader,
		exec:       opts.Executor,
		suggester:  opts.Suggester,
		recorder:   opts.Recorder,
		history:    opts.History,
		out:        opts.Out,
		theme:      opts.Theme,
		logger:     opts.Logger,
		interrupts: opts.Interrupts,
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.logger == nil {
		r.logger = logging.Discard()
	}
	if r.interrupts == nil {
		r.interrupts = notifyInterrupt
	}
	return r
}

// Run prints the welcome text and loops until exit, end of input or ctx
// cancellation, then saves history.
func (r *REPL) Run(ctx context.Context) error {
	r.welcome()

	for ctx.Err() == nil {
		outcome, err := r.Step(ctx)
		if outcome == OutcomeExit {
			break
		}
		if outcome == OutcomeFailed {
			r.logger.Error("iteration failed", "error", err)
			r.println(r.theme.Error(fmt.Sprintf("Unexpected error: %v", err)))
		}
	}

	r.println(r.theme.Error(msgGoodbye))
	return r.saveHistory()
}

// Step reads one line and dispatches it. Panics are recovered into
// OutcomeFailed so one bad iteration cannot end the session.
func (r *REPL) Step(ctx context.Context) (outcome Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("panic in iteration", "panic", p, "stack", string(debug.Stack()))
			outcome, err = OutcomeFailed, fmt.Errorf("panic: %v", p)
		}
	}()

	line, err := r.reader.ReadLine(r.prompt())
	switch {
	case errors.Is(err, terminal.ErrInterrupt):
		r.println(r.theme.Warning(msgExitHint))
		return OutcomeContinue, nil
	case errors.Is(err, io.EOF):
		return OutcomeExit, nil
	case err != nil:
		return OutcomeFailed, fmt.Errorf("read input: %w", err)
	}

	return r.Dispatch(ctx, line)
}

// Dispatch classifies one input line and runs its handler.
func (r *REPL) Dispatch(ctx context.Context, line string) (Outcome, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return OutcomeContinue, nil
	}

	cmd := Classify(line)
	if cmd.Category == CategoryExit {
		return OutcomeExit, nil
	}

	if cmd.Category != CategoryHistory {
		r.state.Append(trimmed)
		if rc, ok := r.reader.(historyRecaller); ok {
			rc.AddHistory(trimmed)
		}
	}

	switch cmd.Category {
	case CategoryClear:
		fmt.Fprint(r.out, clearScreen)
	case CategoryHistory:
		r.showHistory()
	case CategoryChangeDir:
		return r.changeDir(cmd.Payload)
	case CategoryAiAssist:
		return r.assist(ctx, cmd.Payload)
	default:
		return r.runShell(ctx, cmd.Payload)
	}
	return OutcomeContinue, nil
}

func (r *REPL) welcome() {
	r.println(r.theme.Success("Welcome to the AI-Powered Custom Terminal!"))
	r.println(r.theme.Warning("Type 'exit' to quit the terminal."))
	r.println(r.theme.Info("Use 'ai <query>' to request AI assistance for a specific query."))
	r.println(r.theme.Info("Example: ai which folder is this?") + "\n")
}

func (r *REPL) prompt() string {
	return r.theme.Info(r.state.WorkingDir() + "$ ")
}

func (r *REPL) showHistory() {
	r.println("\n" + r.theme.Banner(bannerHistory))
	for i, entry := range r.state.History() {
		fmt.Fprintf(r.out, "%d. %s\n", i+1, entry)
	}
	r.println(r.theme.Banner(bannerHistoryEnd) + "\n")
}

func (r *REPL) changeDir(target string) (Outcome, error) {
	err := r.state.ChangeDir(target)
	switch {
	case err == nil:
		return OutcomeContinue, nil
	case errors.Is(err, session.ErrDirNotFound):
		r.println(r.theme.Error(fmt.Sprintf("Error: Directory '%s' not found.", target)))
	case errors.Is(err, session.ErrNotDirectory):
		r.println(r.theme.Error(fmt.Sprintf("Error: '%s' is not a directory.", target)))
	case errors.Is(err, session.ErrNoAccess):
		r.println(r.theme.Error(fmt.Sprintf("Error: Permission denied for directory '%s'.", target)))
	default:
		r.println(r.theme.Error(fmt.Sprintf("Error: %v", err)))
	}
	return OutcomeContinue, nil
}

// assist translates query, lets the user edit and confirm the candidate,
// then runs it as a shell line.
func (r *REPL) assist(ctx context.Context, query string) (Outcome, error) {
	cwd := r.state.WorkingDir()

	candidate, err := r.translate(ctx, query, cwd)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			r.println(r.theme.Warning("\n" + msgInterrupted))
		} else {
			r.logger.Warn("translate failed", "error", err)
			r.println(r.theme.Error(msgNoSuggestion))
		}
		return OutcomeContinue, nil
	}

	r.println("\n" + r.theme.Banner(bannerGenerated))
	r.println(candidate)
	r.println(r.theme.Banner(bannerGeneratedEnd) + "\n")

	if name, ok := sanitize.MatchDestructive(candidate); ok {
		r.println(r.theme.Error(fmt.Sprintf("Warning: this command looks destructive (%s). Review it before running.", name)))
	}

	edited, err := r.reader.ReadLineWithDefault(r.theme.Warning(msgModifyPrompt), candidate)
	if err != nil {
		r.println(r.theme.Warning(msgDiscarded))
		return OutcomeContinue, nil
	}
	final := strings.TrimSpace(edited)
	if final == "" {
		final = candidate
	}

	answer, err := r.reader.ReadLine(r.theme.Warning(msgConfirmPrompt))
	if err != nil || !strings.EqualFold(strings.TrimSpace(answer), "y") {
		r.println(r.theme.Warning(msgDiscarded))
		return OutcomeContinue, nil
	}

	return r.runShell(ctx, final)
}

func (r *REPL) translate(ctx context.Context, query, cwd string) (string, error) {
	if r.suggester == nil {
		return "", errors.New("no suggester configured")
	}
	actx, stop := r.interrupts(ctx)
	defer stop()

	candidate, err := r.suggester.Translate(actx, query, cwd)
	if err != nil && actx.Err() != nil && ctx.Err() == nil {
		// Ctrl+C during the request.
		return "", context.Canceled
	}
	return candidate, err
}

// runShell executes line, reports the result and asks for one diagnosis
// when a captured command fails.
func (r *REPL) runShell(ctx context.Context, line string) (Outcome, error) {
	cwd := r.state.WorkingDir()
	r.println(r.theme.Accent("Executing: " + line))

	rctx, stop := r.interrupts(ctx)
	start := time.Now()
	res, err := r.exec.Run(rctx, line, cwd)
	end := time.Now()
	stop()
	if err != nil {
		return OutcomeFailed, fmt.Errorf("run command: %w", err)
	}

	r.record(ctx, line, cwd, res, start, end)

	switch {
	case res.Interrupted:
		r.println(r.theme.Warning("\n" + msgInterrupted))
	case res.Mode == ModeInteractive:
	case res.ExitCode == 0:
		if res.Output != "" {
			r.println(res.Output)
		}
	default:
		r.println(r.theme.Error("Error: " + res.Output))
		r.diagnose(ctx, line, res, cwd)
	}
	return OutcomeContinue, nil
}

func (r *REPL) diagnose(ctx context.Context, line string, res Result, cwd string) {
	advice := msgNoSuggestion
	if r.suggester != nil {
		dctx, stop := r.interrupts(ctx)
		text, err := r.suggester.Diagnose(dctx, line, res.Output, res.ExitCode, cwd)
		stop()
		if err != nil {
			r.logger.Warn("diagnose failed", "command", line, "error", err)
		} else {
			advice = text
		}
	}

	r.println("\n" + r.theme.Banner(bannerFix))
	r.println(advice)
	r.println(r.theme.Banner(bannerFixEnd) + "\n")
}

func (r *REPL) record(ctx context.Context, line, cwd string, res Result, start, end time.Time) {
	if r.recorder == nil {
		return
	}
	err := r.recorder.Record(ctx, storage.Entry{
		Command:     line,
		CWD:         cwd,
		Mode:        res.Mode.String(),
		ExitCode:    res.ExitCode,
		Interrupted: res.Interrupted,
		Start:       start,
		End:         end,
	})
	if err != nil {
		r.logger.Warn("journal record failed", "error", err)
	}
}

func (r *REPL) saveHistory() error {
	if r.history == nil {
		return nil
	}
	if err := r.history.Save(r.state.History()); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func (r *REPL) println(s string) {
	fmt.Fprintln(r.out, s)
}

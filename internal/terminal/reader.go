package terminal

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/runger/aiterm/internal/completion"
)

// ErrInterrupt is returned when the user presses Ctrl+C at a prompt.
var ErrInterrupt = errors.New("interrupt")

// ReaderOptions configures a Reader.
type ReaderOptions struct {
	// WorkingDir supplies the directory completion resolves against.
	WorkingDir func() string
	// History preloads recall entries, oldest first.
	History []string
	Stdin   io.ReadCloser
	Stdout  io.Writer
	Stderr  io.Writer
}

// Reader reads lines with editing, recall and Tab path completion.
type Reader struct {
	rl *readline.Instance
}

// NewReader creates a Reader on the process terminal.
func NewReader(opts ReaderOptions) (*Reader, error) {
	cfg := &readline.Config{
		AutoComplete:           &PathCompleter{WorkingDir: opts.WorkingDir},
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		DisableAutoSaveHistory: true,
		HistorySearchFold:      true,
		Stdin:                  opts.Stdin,
		Stdout:                 opts.Stdout,
		Stderr:                 opts.Stderr,
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	for _, entry := range opts.History {
		_ = rl.SaveHistory(entry)
	}
	return &Reader{rl: rl}, nil
}

// ReadLine shows prompt and returns one line.
func (r *Reader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	return line, mapErr(err)
}

// ReadLineWithDefault shows prompt with an editable pre-filled buffer.
func (r *Reader) ReadLineWithDefault(prompt, def string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.ReadlineWithDefault(def)
	return line, mapErr(err)
}

// AddHistory makes line available to Up-arrow recall.
func (r *Reader) AddHistory(line string) {
	_ = r.rl.SaveHistory(line)
}

// Close restores the terminal.
func (r *Reader) Close() error {
	return r.rl.Close()
}

func mapErr(err error) error {
	if errors.Is(err, readline.ErrInterrupt) {
		return ErrInterrupt
	}
	return err
}

// PathCompleter adapts completion.Candidates to readline's AutoCompleter.
type PathCompleter struct {
	WorkingDir func() string
}

// Do returns the suffixes that extend the token before the cursor, and the
// token length in runes.
func (c *PathCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if pos > len(line) {
		pos = len(line)
	}
	buffer := string(line[:pos])
	wd := ""
	if c.WorkingDir != nil {
		wd = c.WorkingDir()
	}

	token := completion.LastToken(buffer)
	candidates := completion.Candidates(completion.Context{Buffer: buffer, WorkingDir: wd})
	suffixes := make([][]rune, 0, len(candidates))
	for _, cand := range candidates {
		if !strings.HasPrefix(cand, token) {
			continue
		}
		suffixes = append(suffixes, []rune(cand[len(token):]))
	}
	return suffixes, len([]rune(token))
}

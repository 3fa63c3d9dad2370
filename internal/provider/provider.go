// Package provider implements AI provider adapters for text-to-command
// translation and failed-command diagnosis.
package provider

import (
	"context"
	"errors"
	"time"
)

// DefaultTimeout is the default timeout for AI provider calls
const DefaultTimeout = 30 * time.Second

// SourceAI marks an AI-generated suggestion.
const SourceAI = "ai"

var (
	// ErrInterrupted is returned when the caller cancels a request (Ctrl+C).
	ErrInterrupted = errors.New("interrupted")
	// ErrTimeout is returned when a request exceeds its deadline.
	ErrTimeout = errors.New("timeout: AI request took too long")
	// ErrNoProvider is returned when no configured provider is usable.
	ErrNoProvider = errors.New("no AI providers available")
	// ErrEmptyResponse is returned when a provider answers with nothing usable.
	ErrEmptyResponse = errors.New("empty response from AI provider")
)

// Provider defines the interface for AI providers
type Provider interface {
	// Name returns the provider name (e.g., "openai", "anthropic")
	Name() string

	// Available checks if the provider is available (CLI found or API key present)
	Available() bool

	// TextToCommand converts natural language to shell commands
	TextToCommand(ctx context.Context, req *TextToCommandRequest) (*TextToCommandResponse, error)

	// Diagnose analyzes a failed command and suggests fixes
	Diagnose(ctx context.Context, req *DiagnoseRequest) (*DiagnoseResponse, error)
}

// CommandContext represents context about a previously executed command
type CommandContext struct {
	Command  string
	ExitCode int
}

// TextToCommandRequest is the request for text-to-command conversion
type TextToCommandRequest struct {
	Prompt     string
	CWD        string
	OS         string
	Shell      string
	RecentCmds []CommandContext
}

// TextToCommandResponse is the response from text-to-command conversion
type TextToCommandResponse struct {
	ProviderName string
	Suggestions  []Suggestion
	Raw          string
	LatencyMs    int64
}

// DiagnoseRequest is the request for error diagnosis
type DiagnoseRequest struct {
	Command    string
	CWD        string
	OS         string
	Shell      string
	Output     string
	RecentCmds []CommandContext
	ExitCode   int
}

// DiagnoseResponse is the response from error diagnosis. Raw is shown to
// the user as is.
type DiagnoseResponse struct {
	ProviderName string
	Raw          string
	LatencyMs    int64
}

// Suggestion represents a command suggestion
type Suggestion struct {
	Text   string  // The suggested command
	Source string  // Always SourceAI for provider output
	Risk   string  // "safe", "destructive"
	Score  float64 // Ranking score (0.0 to 1.0)
}

// queryFunc sends a fully built prompt and returns the raw answer.
type queryFunc func(ctx context.Context, prompt string) (string, error)

// textToCommand is the request flow shared by every provider: build the
// prompt, query, parse.
func textToCommand(ctx context.Context, name string, san sanitizer, query queryFunc, req *TextToCommandRequest) (*TextToCommandResponse, error) {
	start := time.Now()

	builder := NewContextBuilder(req.OS, req.Shell, req.CWD, sanitizeRecent(san, req.RecentCmds))
	fullPrompt := builder.BuildTextToCommandPrompt(san.Sanitize(req.Prompt))

	response, err := query(ctx, fullPrompt)
	if err != nil {
		return nil, err
	}

	return &TextToCommandResponse{
		Suggestions:  ParseCommandResponse(response),
		Raw:          response,
		ProviderName: name,
		LatencyMs:    time.Since(start).Milliseconds(),
	}, nil
}

func diagnose(ctx context.Context, name string, san sanitizer, query queryFunc, req *DiagnoseRequest) (*DiagnoseResponse, error) {
	start := time.Now()

	builder := NewContextBuilder(req.OS, req.Shell, req.CWD, sanitizeRecent(san, req.RecentCmds))
	fullPrompt := builder.BuildDiagnosePrompt(san.Sanitize(req.Command), req.ExitCode, san.Sanitize(req.Output))

	response, err := query(ctx, fullPrompt)
	if err != nil {
		return nil, err
	}

	return &DiagnoseResponse{
		Raw:          response,
		ProviderName: name,
		LatencyMs:    time.Since(start).Milliseconds(),
	}, nil
}

// sanitizer is satisfied by *sanitize.Sanitizer, including a nil one.
type sanitizer interface {
	Sanitize(string) string
}

func sanitizeRecent(san sanitizer, cmds []CommandContext) []CommandContext {
	out := make([]CommandContext, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, CommandContext{Command: san.Sanitize(c.Command), ExitCode: c.ExitCode})
	}
	return out
}

// contextError maps a finished context to the provider error vocabulary.
func contextError(ctx context.Context) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return ErrInterrupted
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	}
	return nil
}

package provider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

// RecentFunc supplies recently executed commands for prompt context.
type RecentFunc func(ctx context.Context) []CommandContext

// AssistantOptions configures an Assistant.
type AssistantOptions struct {
	Registry *Registry
	Timeout  time.Duration // 0 disables the per-request limit
	OS       string        // defaults to runtime.GOOS
	Shell    string
	Recent   RecentFunc
	Logger   *slog.Logger
}

// Assistant answers the two questions the shell asks: translate a query
// into a command, and explain a failure. Each call is independent.
type Assistant struct {
	registry *Registry
	timeout  time.Duration
	os       string
	shell    string
	recent   RecentFunc
	logger   *slog.Logger
}

// NewAssistant creates an Assistant over the registry's best provider.
func NewAssistant(opts AssistantOptions) *Assistant {
	a := &Assistant{
		registry: opts.Registry,
		timeout:  opts.Timeout,
		os:       opts.OS,
		shell:    opts.Shell,
		recent:   opts.Recent,
		logger:   opts.Logger,
	}
	if a.os == "" {
		a.os = runtime.GOOS
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a
}

// Translate returns a single candidate shell command for a natural
// language query.
func (a *Assistant) Translate(ctx context.Context, query, cwd string) (string, error) {
	p, err := a.provider()
	if err != nil {
		return "", err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	resp, err := p.TextToCommand(ctx, &TextToCommandRequest{
		Prompt:     query,
		CWD:        cwd,
		OS:         a.os,
		Shell:      a.shell,
		RecentCmds: a.recentCommands(ctx),
	})
	if err != nil {
		a.logger.Warn("translate failed", "provider", p.Name(), "error", err)
		return "", fmt.Errorf("%s: %w", p.Name(), err)
	}

	cmd := FirstCommand(resp)
	if cmd == "" {
		return "", ErrEmptyResponse
	}
	a.logger.Debug("translate", "provider", p.Name(), "latency_ms", resp.LatencyMs)
	return cmd, nil
}

// Diagnose returns free-form advice for a failed command.
func (a *Assistant) Diagnose(ctx context.Context, command, output string, exitCode int, cwd string) (string, error) {
	p, err := a.provider()
	if err != nil {
		return "", err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	resp, err := p.Diagnose(ctx, &DiagnoseRequest{
		Command:    command,
		CWD:        cwd,
		OS:         a.os,
		Shell:      a.shell,
		Output:     output,
		ExitCode:   exitCode,
		RecentCmds: a.recentCommands(ctx),
	})
	if err != nil {
		a.logger.Warn("diagnose failed", "provider", p.Name(), "error", err)
		return "", fmt.Errorf("%s: %w", p.Name(), err)
	}

	text := strings.TrimSpace(resp.Raw)
	if text == "" {
		return "", ErrEmptyResponse
	}
	a.logger.Debug("diagnose", "provider", p.Name(), "latency_ms", resp.LatencyMs)
	return text, nil
}

func (a *Assistant) provider() (Provider, error) {
	if a.registry == nil {
		return nil, ErrNoProvider
	}
	return a.registry.GetBest()
}

func (a *Assistant) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

func (a *Assistant) recentCommands(ctx context.Context) []CommandContext {
	if a.recent == nil {
		return nil
	}
	return a.recent(ctx)
}

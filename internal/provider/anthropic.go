package provider

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/runger/aiterm/internal/sanitize"
)

// claudeBinary is the CLI the Anthropic provider shells out to.
var claudeBinary = "claude"

// AnthropicProvider implements the Provider interface for Anthropic Claude
// through the Claude CLI (`claude --print`).
type AnthropicProvider struct {
	sanitizer *sanitize.Sanitizer
	model     string
}

// NewAnthropicProvider creates a new Anthropic provider. An empty model
// lets the CLI choose.
func NewAnthropicProvider(model string, san *sanitize.Sanitizer) *AnthropicProvider {
	if san == nil {
		san = sanitize.NewSanitizer()
	}
	return &AnthropicProvider{sanitizer: san, model: model}
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Available checks if the Claude CLI is on PATH
func (p *AnthropicProvider) Available() bool {
	_, err := exec.LookPath(claudeBinary)
	return err == nil
}

// TextToCommand converts natural language to shell commands
func (p *AnthropicProvider) TextToCommand(ctx context.Context, req *TextToCommandRequest) (*TextToCommandResponse, error) {
	return textToCommand(ctx, p.Name(), p.sanitizer, p.query, req)
}

// Diagnose analyzes a failed command
func (p *AnthropicProvider) Diagnose(ctx context.Context, req *DiagnoseRequest) (*DiagnoseResponse, error) {
	return diagnose(ctx, p.Name(), p.sanitizer, p.query, req)
}

// query sends a prompt to Claude CLI
func (p *AnthropicProvider) query(ctx context.Context, prompt string) (string, error) {
	path, err := exec.LookPath(claudeBinary)
	if err != nil {
		return "", fmt.Errorf("'claude' CLI not found. Install Claude Code: https://docs.anthropic.com/en/docs/claude-code")
	}

	args := []string{"--print"}
	if p.model != "" {
		args = append(args, "--model", p.model)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	// A nested CLI refuses to start when it believes it runs inside itself.
	cmd.Env = FilterEnv(os.Environ(), "CLAUDECODE")
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := contextError(ctx); ctxErr != nil {
			return "", ctxErr
		}
		if stderr.Len() > 0 {
			return "", fmt.Errorf("claude error: %s", strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("failed to get response from Claude: %w", err)
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

// FilterEnv returns a copy of env with the named variables removed.
func FilterEnv(env []string, keys ...string) []string {
	filtered := make([]string, 0, len(env))
	for _, e := range env {
		skip := false
		for _, key := range keys {
			if strings.HasPrefix(e, key+"=") {
				skip = true
				break
			}
		}
		if !skip {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

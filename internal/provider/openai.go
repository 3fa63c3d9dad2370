package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/runger/aiterm/internal/sanitize"
)

// Defaults for the OpenAI chat-completions provider.
const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-3.5-turbo"
	DefaultOpenAIKeyEnv  = "OPENAI_API_KEY"
)

// ErrMissingAPIKey is returned per request when the key variable is unset.
var ErrMissingAPIKey = errors.New("missing API key")

// OpenAIOptions configures an OpenAIProvider. Zero fields take defaults.
type OpenAIOptions struct {
	BaseURL   string
	Model     string
	APIKeyEnv string
	Sanitizer *sanitize.Sanitizer
	Client    *resty.Client
}

// OpenAIProvider implements the Provider interface over the OpenAI
// chat-completions HTTP API.
type OpenAIProvider struct {
	client    *resty.Client
	sanitizer *sanitize.Sanitizer
	baseURL   string
	model     string
	apiKeyEnv string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(opts OpenAIOptions) *OpenAIProvider {
	p := &OpenAIProvider{
		client:    opts.Client,
		sanitizer: opts.Sanitizer,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		model:     opts.Model,
		apiKeyEnv: opts.APIKeyEnv,
	}
	if p.client == nil {
		p.client = resty.New().SetHeader("Content-Type", "application/json")
	}
	if p.sanitizer == nil {
		p.sanitizer = sanitize.NewSanitizer()
	}
	if p.baseURL == "" {
		p.baseURL = DefaultOpenAIBaseURL
	}
	if p.model == "" {
		p.model = DefaultOpenAIModel
	}
	if p.apiKeyEnv == "" {
		p.apiKeyEnv = DefaultOpenAIKeyEnv
	}
	return p
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Available reports whether the API key variable is set.
func (p *OpenAIProvider) Available() bool {
	return os.Getenv(p.apiKeyEnv) != ""
}

// TextToCommand converts natural language to shell commands
func (p *OpenAIProvider) TextToCommand(ctx context.Context, req *TextToCommandRequest) (*TextToCommandResponse, error) {
	return textToCommand(ctx, p.Name(), p.sanitizer, p.query, req)
}

// Diagnose analyzes a failed command
func (p *OpenAIProvider) Diagnose(ctx context.Context, req *DiagnoseRequest) (*DiagnoseResponse, error) {
	return diagnose(ctx, p.Name(), p.sanitizer, p.query, req)
}

// query sends a single-message chat completion. The key is read on every
// call so exporting it mid-session takes effect immediately.
func (p *OpenAIProvider) query(ctx context.Context, prompt string) (string, error) {
	key := os.Getenv(p.apiKeyEnv)
	if key == "" {
		return "", fmt.Errorf("%w: set %s", ErrMissingAPIKey, p.apiKeyEnv)
	}

	var result chatResponse
	var failure apiError
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(key).
		SetBody(chatRequest{
			Model:    p.model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&result).
		SetError(&failure).
		Post(p.baseURL + "/chat/completions")
	if err != nil {
		if ctxErr := contextError(ctx); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if resp.IsError() {
		if failure.Error.Message != "" {
			return "", fmt.Errorf("openai error (%d): %s", resp.StatusCode(), failure.Error.Message)
		}
		return "", fmt.Errorf("openai error: %s", resp.Status())
	}

	if len(result.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

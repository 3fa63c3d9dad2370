// Package sanitize cleans text that leaves the shell: terminal escape
// sequences are stripped from captured output and secrets are redacted
// before anything is sent to an AI provider.
package sanitize

import "regexp"

// Pattern is a compiled secret detector and its replacement template.
type Pattern struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
}

var secretPatterns = []Pattern{
	{
		Name:        "AWS Access Key",
		Regex:       regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		Replacement: "[AWS_ACCESS_KEY_REDACTED]",
	},
	{
		Name:        "AWS Secret Key",
		Regex:       regexp.MustCompile(`(?i)(aws_secret_access_key|secret_access_key)\s*[=:]\s*\S+`),
		Replacement: "$1=[AWS_SECRET_REDACTED]",
	},
	{
		Name:        "OpenAI Key",
		Regex:       regexp.MustCompile(`sk-(?:proj-)?[A-Za-z0-9_-]{20,}`),
		Replacement: "[OPENAI_KEY_REDACTED]",
	},
	{
		Name:        "JWT Token",
		Regex:       regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		Replacement: "[JWT_REDACTED]",
	},
	{
		Name:        "PEM Block",
		Regex:       regexp.MustCompile(`-----BEGIN [A-Z ]+-----[\s\S]+?-----END [A-Z ]+-----`),
		Replacement: "[PEM_BLOCK_REDACTED]",
	},
	{
		Name:        "Generic Secret",
		Regex:       regexp.MustCompile(`(?i)(password|passwd|token|secret|api_key)\s*[=:]\s*\S+`),
		Replacement: "$1=[REDACTED]",
	},
	{
		Name:        "GitHub Token",
		Regex:       regexp.MustCompile(`gh[po]_[A-Za-z0-9]{36}`),
		Replacement: "[GITHUB_TOKEN_REDACTED]",
	},
	{
		Name:        "Bearer Token",
		Regex:       regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._-]{20,}`),
		Replacement: "Bearer [TOKEN_REDACTED]",
	},
	{
		Name:        "URL Credentials",
		Regex:       regexp.MustCompile(`([a-z][a-z0-9+.-]*://)[^/\s:@]+:[^/\s@]+@`),
		Replacement: "$1[CREDENTIALS_REDACTED]@",
	},
}

// SecretPatterns returns a copy of the built-in secret detectors.
func SecretPatterns() []Pattern {
	out := make([]Pattern, len(secretPatterns))
	copy(out, secretPatterns)
	return out
}

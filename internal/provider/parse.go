package provider

import (
	"strings"

	"github.com/runger/aiterm/internal/sanitize"
)

// maxSuggestions caps how many commands are taken from one response.
const maxSuggestions = 3

// skipLinePrefixes contains common non-command line prefixes to skip during parsing
var skipLinePrefixes = []string{
	"#",
	"//",
	"Here",
	"The",
	"This",
	"Note:",
	"---",
}

func shouldSkipLine(line string) bool {
	for _, prefix := range skipLinePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// numberedPrefixLen returns the length of a "1." / "12)" list marker, or 0.
func numberedPrefixLen(line string) int {
	i := 0
	for i < len(line) && i < 2 && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || line[0] == '0' || i >= len(line) {
		return 0
	}
	if line[i] == '.' || line[i] == ')' {
		return i + 1
	}
	return 0
}

// cleanCommandPrefix removes common prefixes from command lines
func cleanCommandPrefix(line string) string {
	if n := numberedPrefixLen(line); n > 0 {
		line = strings.TrimSpace(line[n:])
	}

	line = strings.TrimPrefix(line, "- ")
	line = strings.TrimPrefix(line, "* ")
	line = strings.TrimPrefix(line, "$ ")

	// Inline markdown code
	line = strings.Trim(line, "`")

	return strings.TrimSpace(line)
}

func createSuggestion(text string, index int) Suggestion {
	return Suggestion{
		Text:   text,
		Source: SourceAI,
		Score:  max(0.1, 1.0-float64(index)*0.1),
		Risk:   string(sanitize.GetRiskLevel(text)),
	}
}

// ParseCommandResponse parses an AI response into command suggestions.
// Markdown fence lines are dropped; the commands inside them are kept.
func ParseCommandResponse(response string) []Suggestion {
	suggestions := make([]Suggestion, 0, maxSuggestions)

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		if shouldSkipLine(line) {
			continue
		}

		cleaned := cleanCommandPrefix(line)
		if cleaned == "" {
			continue
		}

		suggestions = append(suggestions, createSuggestion(cleaned, len(suggestions)))
		if len(suggestions) >= maxSuggestions {
			break
		}
	}

	return suggestions
}

// FirstCommand returns the top suggestion text, falling back to the trimmed
// raw answer when nothing parsed as a command.
func FirstCommand(resp *TextToCommandResponse) string {
	if resp == nil {
		return ""
	}
	if len(resp.Suggestions) > 0 {
		return resp.Suggestions[0].Text
	}
	return strings.TrimSpace(resp.Raw)
}

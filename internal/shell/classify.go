// Package shell implements the interactive loop: input classification,
// built-in commands, dual-mode command execution and AI assistance.
package shell

import "strings"

// Category is the kind of a classified input line.
type Category int

const (
	CategoryShell Category = iota
	CategoryExit
	CategoryClear
	CategoryHistory
	CategoryChangeDir
	CategoryAiAssist
)

func (c Category) String() string {
	switch c {
	case CategoryExit:
		return "exit"
	case CategoryClear:
		return "clear"
	case CategoryHistory:
		return "history"
	case CategoryChangeDir:
		return "cd"
	case CategoryAiAssist:
		return "ai"
	default:
		return "shell"
	}
}

// Built-in keywords and prefixes.
const (
	keywordExit    = "exit"
	keywordClear   = "clear"
	keywordHistory = "history"
	keywordCd      = "cd"
	keywordAi      = "ai"
	prefixCd       = keywordCd + " "
	prefixAi       = keywordAi + " "
)

// Command is one classified input line.
type Command struct {
	Raw      string // trimmed input
	Category Category
	Payload  string // cd target, ai query, or the full shell line
}

// Classify labels a non-empty line. Rules are checked in order: exit
// (any case, untrimmed), clear, history, "cd " prefix, "ai " prefix,
// then shell. Everything but exit matches the trimmed line, so a bare
// "cd" or "ai" goes to the shell.
func Classify(line string) Command {
	raw := strings.TrimSpace(line)
	cmd := Command{Raw: raw, Category: CategoryShell, Payload: raw}

	switch {
	case strings.EqualFold(line, keywordExit):
		cmd.Category, cmd.Payload = CategoryExit, ""
	case raw == keywordClear:
		cmd.Category, cmd.Payload = CategoryClear, ""
	case raw == keywordHistory:
		cmd.Category, cmd.Payload = CategoryHistory, ""
	case strings.HasPrefix(raw, prefixCd):
		cmd.Category = CategoryChangeDir
		cmd.Payload = strings.TrimSpace(raw[len(prefixCd):])
	case strings.HasPrefix(raw, prefixAi):
		cmd.Category = CategoryAiAssist
		cmd.Payload = strings.TrimSpace(raw[len(prefixAi):])
	}
	return cmd
}

package provider

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Prompt format fragments reused across multiple builder methods.
const (
	contextHeader  = "Context:\n"
	fmtOS          = "- OS: %s\n"
	fmtShell       = "- Shell: %s\n"
	fmtWorkDir     = "- Working Directory: %s\n"
	fmtCmdHistItem = "%d. %s (exit %d)\n"
)

// ContextBuilder constructs AI prompts with appropriate system context
type ContextBuilder struct {
	os         string
	shell      string
	cwd        string
	recentCmds []CommandContext
}

// NewContextBuilder creates a new ContextBuilder with the given parameters
func NewContextBuilder(os, shell, cwd string, recentCmds []CommandContext) *ContextBuilder {
	return &ContextBuilder{
		os:         os,
		shell:      shell,
		cwd:        cwd,
		recentCmds: TrimRecentCommands(recentCmds),
	}
}

// BuildTextToCommandPrompt builds the prompt for text-to-command requests.
// The request sentence comes first so a bare completion model still sees it.
func (b *ContextBuilder) BuildTextToCommandPrompt(query string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Translate the following natural language query into a shell command: '%s'\n\n", query)
	b.writeContext(&sb)
	b.writeRecent(&sb, "Recent commands")
	sb.WriteString("\nRespond with the command only, one per line. No explanations.")

	return sb.String()
}

// BuildDiagnosePrompt builds the prompt for error diagnosis
func (b *ContextBuilder) BuildDiagnosePrompt(command string, exitCode int, output string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "The following command failed with this error: '%s'. Suggest a fix.\n\n", truncateOutput(output))
	b.writeContext(&sb)
	fmt.Fprintf(&sb, "\nFailed command: %s\n", command)
	fmt.Fprintf(&sb, "Exit code: %d\n", exitCode)
	b.writeRecent(&sb, "Recent command history")

	sb.WriteString("\nProvide:\n")
	sb.WriteString("1. A brief explanation of the error (1-2 sentences)\n")
	sb.WriteString("2. 1-3 fix commands, each on its own line starting with '$ '\n")

	return sb.String()
}

func (b *ContextBuilder) writeContext(sb *strings.Builder) {
	sb.WriteString(contextHeader)
	fmt.Fprintf(sb, fmtOS, b.os)
	fmt.Fprintf(sb, fmtShell, b.shell)
	fmt.Fprintf(sb, fmtWorkDir, b.cwd)
}

func (b *ContextBuilder) writeRecent(sb *strings.Builder, title string) {
	if len(b.recentCmds) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", title)
	for i, cmd := range b.recentCmds {
		fmt.Fprintf(sb, fmtCmdHistItem, i+1, cmd.Command, cmd.ExitCode)
	}
}

// maxOutputLen is the maximum number of bytes of command output included in
// prompts. The tail is kept since the most relevant error info is typically
// at the end.
const maxOutputLen = 4096

func truncateOutput(s string) string {
	if len(s) <= maxOutputLen {
		return s
	}
	start := len(s) - maxOutputLen
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return "…" + s[start:]
}

// MaxRecentCommands is the maximum number of recent commands to include in context
const MaxRecentCommands = 10

// TrimRecentCommands limits the recent commands list to MaxRecentCommands
func TrimRecentCommands(cmds []CommandContext) []CommandContext {
	if len(cmds) <= MaxRecentCommands {
		return cmds
	}
	return cmds[len(cmds)-MaxRecentCommands:]
}

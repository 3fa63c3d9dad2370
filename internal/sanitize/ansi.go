package sanitize

import (
	"regexp"
	"strings"
)

// ansiPattern matches CSI sequences (colors, cursor movement) and OSC
// sequences (window titles, hyperlinks) terminated by BEL or ST.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	return ansiPattern.ReplaceAllString(s, "")
}

// CleanOutput strips escape sequences and surrounding whitespace from
// captured command output.
func CleanOutput(s string) string {
	return strings.TrimSpace(StripANSI(s))
}

package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// NormalizeCommand reduces a command to a comparable shape: lowercased,
// whitespace collapsed, and paths, URLs and numbers in argument position
// replaced by placeholders. Flags and the program name are kept.
func NormalizeCommand(cmd string) string {
	parts := strings.Fields(strings.ToLower(cmd))
	if len(parts) == 0 {
		return ""
	}

	normalized := make([]string, 0, len(parts))
	normalized = append(normalized, parts[0])
	for _, part := range parts[1:] {
		switch {
		case strings.HasPrefix(part, "-"):
			normalized = append(normalized, part)
		case strings.HasPrefix(part, "/"), strings.HasPrefix(part, "~"):
			normalized = append(normalized, "<path>")
		case strings.Contains(part, "://"):
			normalized = append(normalized, "<url>")
		case isNumeric(part):
			normalized = append(normalized, "<num>")
		default:
			normalized = append(normalized, part)
		}
	}
	return strings.Join(normalized, " ")
}

// HashCommand returns the hex SHA-256 of a normalized command.
func HashCommand(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

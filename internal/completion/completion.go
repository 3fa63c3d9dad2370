// Package completion implements filename completion for the last word of
// the input line.
package completion

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/runger/aiterm/internal/config"
)

// Context is everything a completion depends on.
type Context struct {
	Buffer     string // Input line up to the cursor
	WorkingDir string // Directory bare names resolve against
}

// LastToken returns the final whitespace-delimited word of buffer. A buffer
// ending in whitespace has an empty last token.
func LastToken(buffer string) string {
	idx := strings.LastIndexFunc(buffer, unicode.IsSpace)
	if idx < 0 {
		return buffer
	}
	_, size := utf8.DecodeRuneInString(buffer[idx:])
	return buffer[idx+size:]
}

// Split separates a token into the directory part as typed (including its
// trailing separator) and the partial name after it. Tokens without a
// separator have an empty directory part.
func Split(token string) (dir, partial string) {
	i := strings.LastIndexFunc(token, func(r rune) bool {
		return r < 0x80 && os.IsPathSeparator(uint8(r))
	})
	return token[:i+1], token[i+1:]
}

// Candidates lists every entry of the token's base directory whose name
// starts with the partial name, in directory listing order. Each candidate
// is the typed directory part followed by the entry name, with a trailing
// separator for directories. A base directory that cannot be listed yields
// no candidates.
func Candidates(ctx Context) []string {
	token := LastToken(ctx.Buffer)
	dir, partial := Split(token)

	base := resolve(dir, ctx.WorkingDir)
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, partial) {
			continue
		}
		c := dir + name
		if isDir(e, filepath.Join(base, name)) {
			c += string(filepath.Separator)
		}
		out = append(out, c)
	}
	return out
}

// Candidate returns the i-th candidate for ctx. It reports false once i is
// past the last match, which ends completion for that keystroke.
func Candidate(ctx Context, i int) (string, bool) {
	if i < 0 {
		return "", false
	}
	c := Candidates(ctx)
	if i >= len(c) {
		return "", false
	}
	return c[i], true
}

func resolve(dir, workingDir string) string {
	if dir == "" {
		return workingDir
	}
	p := config.ExpandHome(dir)
	if !filepath.IsAbs(p) {
		p = filepath.Join(workingDir, p)
	}
	return p
}

// isDir follows symlinks so a link to a directory completes like one.
func isDir(e os.DirEntry, full string) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.IsDir()
}

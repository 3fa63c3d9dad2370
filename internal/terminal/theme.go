// Package terminal provides the line-editing and styling capabilities the
// shell loop needs: a readline-backed reader with path completion and a
// color theme that honors NO_COLOR and TERM=dumb.
package terminal

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes accepted by NewTheme.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ANSI palette indices.
const (
	ansiRed     = "1"
	ansiGreen   = "2"
	ansiYellow  = "3"
	ansiMagenta = "5"
	ansiCyan    = "6"
)

// Theme colors UI text. The zero Theme renders plain text.
type Theme struct {
	enabled bool
	profile termenv.Profile
	banner  lipgloss.Style
}

// NewTheme builds a theme for output written to w.
func NewTheme(w io.Writer, mode string) Theme {
	profile := detectProfile(w, mode)
	if profile == termenv.Ascii {
		return Theme{}
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return Theme{
		enabled: true,
		profile: profile,
		banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiGreen)),
	}
}

func detectProfile(w io.Writer, mode string) termenv.Profile {
	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		if p := termenv.NewOutput(w).ColorProfile(); p != termenv.Ascii {
			return p
		}
		return termenv.ANSI
	}

	if os.Getenv("TERM") == "dumb" {
		return termenv.Ascii
	}
	// EnvColorProfile applies NO_COLOR and CLICOLOR_FORCE on top of TTY detection.
	return termenv.NewOutput(w).EnvColorProfile()
}

// Enabled reports whether the theme emits escape sequences.
func (t Theme) Enabled() bool { return t.enabled }

// Banner styles section markers such as "--- COMMAND HISTORY ---".
func (t Theme) Banner(s string) string {
	if !t.enabled {
		return s
	}
	return t.banner.Render(s)
}

func (t Theme) Success(s string) string { return t.color(s, ansiGreen) }
func (t Theme) Error(s string) string   { return t.color(s, ansiRed) }
func (t Theme) Warning(s string) string { return t.color(s, ansiYellow) }
func (t Theme) Info(s string) string    { return t.color(s, ansiCyan) }
func (t Theme) Accent(s string) string  { return t.color(s, ansiMagenta) }

// color wraps s in SGR codes only; unlike lipgloss it never pads or
// re-wraps multi-line command output.
func (t Theme) color(s, c string) string {
	if !t.enabled {
		return s
	}
	return termenv.String(s).Foreground(t.profile.Color(c)).String()
}

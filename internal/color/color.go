// Package color provides color detection and theming for CLI output.
package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Mode is the configured color preference.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// Valid reports whether m is a known mode. The empty mode means auto.
func (m Mode) Valid() bool {
	switch m {
	case "", ModeAuto, ModeAlways, ModeNever:
		return true
	default:
		return false
	}
}

// Enabled decides whether output written to f should be colored.
//
// In auto mode color is disabled when any of:
//   - NO_COLOR env is set (any value, per https://no-color.org)
//   - CLICOLOR=0
//   - TERM=dumb
//   - f is not a terminal
func Enabled(mode Mode, f *os.File) bool {
	switch mode {
	case ModeNever:
		return false
	case ModeAlways:
		return true
	default:
		return Profile(false) && IsTerminal(f)
	}
}

// Profile reports whether the environment allows color output.
func Profile(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	if os.Getenv("CLICOLOR") == "0" {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return true
}

// IsTerminal returns true if f is a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits int
}

// Width returns the terminal width of f, or 0 when f is not a terminal.
func Width(f *os.File) int {
	if !IsTerminal(f) {
		return 0
	}

	w, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // fd fits int
	if err != nil {
		return 0
	}

	return w
}

// Theme holds lipgloss styles for lint output.
type Theme struct {
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Success  lipgloss.Style
	Path     lipgloss.Style
	Position lipgloss.Style
	Rule     lipgloss.Style
	Fixable  lipgloss.Style
	Muted    lipgloss.Style
}

// NewTheme creates a Theme. When color is false, all styles are empty (no ANSI codes).
func NewTheme(color bool) Theme {
	if !color {
		return Theme{}
	}

	return Theme{
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // bright yellow
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // bright blue
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // bright green
		Path:     lipgloss.NewStyle().Underline(true),
		Position: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Rule:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Fixable:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

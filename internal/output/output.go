// Package output renders reports for the terminal.
package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	ColorPrimary = lipgloss.Color("#64b5f6")
	ColorSuccess = lipgloss.Color("#66bb6a")
	ColorError   = lipgloss.Color("#ef5350")
	ColorMuted   = lipgloss.Color("#888888")
)

// Styles shared by the CLI.
var (
	StyleHeader  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// SetNoColor disables color output globally when disabled is true.
func SetNoColor(disabled bool) {
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleSuccess = plain
		StyleError = plain
		StyleMuted = plain
	}
}

// DetectColor turns color off when f is not a terminal.
func DetectColor(f *os.File) {
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		SetNoColor(true)
	}
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Signed formats a change with an explicit sign, colored by direction.
// Negative is good when lowerIsBetter.
func Signed(v float64, lowerIsBetter bool, format string) string {
	s := formatSigned(v, format)
	switch {
	case v == 0:
		return s
	case (v < 0) == lowerIsBetter:
		return StyleSuccess.Render(s)
	default:
		return StyleError.Render(s)
	}
}

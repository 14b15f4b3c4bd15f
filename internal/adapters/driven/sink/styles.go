package sink

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines the colour palette for styled text output.
type Theme struct {
	// Timestamp is the colour of the resolved timestamp.
	Timestamp lipgloss.Color

	// Label is the colour of entry labels.
	Label lipgloss.Color

	// Muted is for the raw token, shown in verbose output.
	Muted lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Timestamp: lipgloss.Color("#06B6D4"), // Cyan
		Label:     lipgloss.Color("#7C3AED"), // Purple
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
	}
}

// Styles contains pre-configured lipgloss styles bound to one writer.
type Styles struct {
	Timestamp lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style

	// Header and Cell pad table cells; Header also marks the heading row.
	Header lipgloss.Style
	Cell   lipgloss.Style
}

// NewStyles creates styles rendering to w. When color is false the styles
// render plain text regardless of the terminal.
func NewStyles(w io.Writer, theme *Theme, color bool) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Timestamp: r.NewStyle().Foreground(theme.Timestamp),
		Label:     r.NewStyle().Bold(true).Foreground(theme.Label),
		Muted:     r.NewStyle().Foreground(theme.Muted),
		Header:    r.NewStyle().Bold(true).Foreground(theme.Timestamp).Padding(0, 1),
		Cell:      r.NewStyle().Padding(0, 1),
	}
}

// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2563EB"), // Blue
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	// Title style for headers.
	Title lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for the highlighted result.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// InputField style for the search input.
	InputField lipgloss.Style

	// StatusBar style for the bottom status line.
	StatusBar lipgloss.Style
}

// DefaultStyles builds styles from the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// NewStyles builds styles from a theme.
func NewStyles(t *Theme) *Styles {
	return &Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Normal:     lipgloss.NewStyle().Foreground(t.Foreground),
		Muted:      lipgloss.NewStyle().Foreground(t.Muted),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Error:      lipgloss.NewStyle().Foreground(t.Error),
		InputField: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		StatusBar:  lipgloss.NewStyle().Foreground(t.Muted),
	}
}

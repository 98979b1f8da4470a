// Package ui provides the fuzzy picker TUI: a filterable candidate list with
// a live markdown preview pane.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Semantic colors.
var (
	Success = lipgloss.Color("#8BC34A")
	Warning = lipgloss.Color("#FFC107")
	Danger  = lipgloss.Color("#e53935")
)

// Theme holds the color scheme.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
}

// DefaultTheme returns the standard dark-friendly theme.
func DefaultTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("205"),
		Secondary: lipgloss.Color("99"),
		Muted:     lipgloss.Color("241"),
		Border:    lipgloss.Color("238"),
	}
}

// Styles are the pre-compiled styles used by the picker.
type Styles struct {
	Theme   Theme
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Pane    lipgloss.Style
}

// DefaultStyles builds the styles for the default theme.
func DefaultStyles() Styles {
	theme := DefaultTheme()
	return Styles{
		Theme:   theme,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		Error:   lipgloss.NewStyle().Foreground(Danger),
		Success: lipgloss.NewStyle().Foreground(Success),
		Pane: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()),
	}
}

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

	// Muted is for pending and secondary text.
	Muted lipgloss.Color

	// Success marks finished stages.
	Success lipgloss.Color

	// Error marks the failed stage.
	Error lipgloss.Color

	// Link is the colour of the page URL.
	Link lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#E07A5F"), // Terracotta
		Foreground: lipgloss.Color("#F4F1DE"), // Cream
		Muted:      lipgloss.Color("#8D8D92"), // Grey
		Success:    lipgloss.Color("#81B29A"), // Sage
		Error:      lipgloss.Color("#F38BA8"), // Red
		Link:       lipgloss.Color("#7FB7BE"), // Teal
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the header line.
	Title lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for pending stages and hints.
	Muted lipgloss.Style

	// Active style for the running stage.
	Active lipgloss.Style

	// Success style for finished stages.
	Success lipgloss.Style

	// Error style for the failed stage and its message.
	Error lipgloss.Style

	// Link style for the page URL.
	Link lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			MarginBottom(1),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Active: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Link: lipgloss.NewStyle().
			Underline(true).
			Foreground(theme.Link),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			MarginTop(1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

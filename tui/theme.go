package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles used across the UI.
type Theme struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Header  lipgloss.Style
	Border  lipgloss.AdaptiveColor
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Cursor  lipgloss.Style
	Help    lipgloss.Style
}

// DefaultTheme returns the standard cmtui look.
func DefaultTheme() Theme {
	accent := lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00B8D9"}
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3F3F46"}

	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),
		Section: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Header:  lipgloss.NewStyle().Bold(true),
		Border:  border,
		Muted:   lipgloss.NewStyle().Foreground(muted),
		Accent:  lipgloss.NewStyle().Foreground(accent),
		Success: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}),
		Cursor:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Help:    lipgloss.NewStyle().Foreground(muted),
	}
}

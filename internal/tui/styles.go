package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#1e90d6")
	colorText    = lipgloss.Color("#232b3e")
	colorMuted   = lipgloss.Color("#3a4a5d")
	colorError   = lipgloss.Color("#d32f2f")
	colorSuccess = lipgloss.Color("#2e7d32")
)

type styles struct {
	screen  lipgloss.Style
	title   lipgloss.Style
	prompt  lipgloss.Style
	value   lipgloss.Style
	item    lipgloss.Style
	error   lipgloss.Style
	success lipgloss.Style
	help    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		screen: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 3).
			Width(48),
		title:   lipgloss.NewStyle().Bold(true).Foreground(colorText).MarginBottom(1),
		prompt:  lipgloss.NewStyle().Foreground(colorMuted),
		value:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		item:    lipgloss.NewStyle().Foreground(colorText),
		error:   lipgloss.NewStyle().Foreground(colorError),
		success: lipgloss.NewStyle().Foreground(colorSuccess),
		help:    lipgloss.NewStyle().Foreground(colorMuted).Faint(true),
	}
}

package tui

import "github.com/charmbracelet/lipgloss"

var (
	altitudeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	ascentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	descentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	floorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

package tui

import "github.com/charmbracelet/lipgloss"

var (
	timeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // Green
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // Amber
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().PaddingLeft(1)
)

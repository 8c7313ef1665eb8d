package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("171")
	mutedColor  = lipgloss.Color("239")
	subtleColor = lipgloss.Color("244")
	dangerColor = lipgloss.Color("167")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	selectedStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Strikethrough(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(dangerColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(subtleColor)
)

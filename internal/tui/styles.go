package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#F97316")
	muted  = lipgloss.Color("#6B7280")

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(muted)

	activeTabStyle = tabStyle.
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	mutedStyle = lipgloss.NewStyle().Foreground(muted)

	blobStyle = lipgloss.NewStyle().Foreground(accent)

	bodyStyle = lipgloss.NewStyle().Padding(0, 2)

	statusStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)
)

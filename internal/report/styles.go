package report

import "github.com/charmbracelet/lipgloss"

var (
	positiveColor = lipgloss.Color("#10B981")
	negativeColor = lipgloss.Color("#EF4444")
	neutralColor  = lipgloss.Color("#6B7280")
	borderColor   = lipgloss.Color("#374151")
	headerColor   = lipgloss.Color("#9CA3AF")
	accentColor   = lipgloss.Color("#7C3AED")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(headerColor).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	numberStyle = cellStyle.Align(lipgloss.Right)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	positiveStyle = lipgloss.NewStyle().Bold(true).Foreground(positiveColor)
	negativeStyle = lipgloss.NewStyle().Bold(true).Foreground(negativeColor)
	neutralStyle  = lipgloss.NewStyle().Foreground(neutralColor)
)

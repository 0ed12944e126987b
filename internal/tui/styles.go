package tui

import "github.com/charmbracelet/lipgloss"

// ANSI 256 palette, close to the classic CLI theme.
const (
	colorGreen = lipgloss.Color("42")
	colorAmber = lipgloss.Color("214")
	colorBlue  = lipgloss.Color("12")
	colorRed   = lipgloss.Color("9")
	colorFrame = lipgloss.Color("8")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	pendingStyle = lipgloss.NewStyle().Foreground(colorAmber)
	accentStyle  = lipgloss.NewStyle().Foreground(colorBlue)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	helpStyle    = mutedStyle

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFrame).
			Padding(0, 1)
)

const (
	boxChecked   = "☑"
	boxUnchecked = "☐"
)

package tui

import "github.com/charmbracelet/lipgloss"

// Color palette, green-on-black to suit the story.
var (
	ColorPrimary   = lipgloss.Color("42")  // Green
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorNarration = lipgloss.Color("186") // Pale yellow
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	EchoStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	OutputStyle = lipgloss.NewStyle()

	NarrationStyle = lipgloss.NewStyle().
			Foreground(ColorNarration).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

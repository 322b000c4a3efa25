package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#2563EB") // Blue
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Subtle    = lipgloss.Color("#D1D5DB") // Light gray
	Error     = lipgloss.Color("#EF4444") // Red
	Ink       = lipgloss.Color("#111827")
	White     = lipgloss.Color("#FFFFFF")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Word card
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(1, 2)

	Word = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ink)

	Pinyin = lipgloss.NewStyle().
		Foreground(Muted)

	SectionLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	Explanation = lipgloss.NewStyle()

	// Mode selector
	ModeActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1)

	ModeInactive = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	// Loading
	Spinner = lipgloss.NewStyle().Foreground(Primary)

	Percent = lipgloss.NewStyle().
		Foreground(Muted).
		Width(5).
		Align(lipgloss.Right)

	// Lists
	ListSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	ListItem = lipgloss.NewStyle()

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpDisabled = lipgloss.NewStyle().
			Foreground(Subtle).
			Strikethrough(true)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

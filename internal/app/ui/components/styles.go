package components

import "github.com/charmbracelet/lipgloss"

// Common styles shared across UI components
var (
	// TitleStyle for view titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(FgPrimary)

	// PanelStyle for the main panel border
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(FgPrimary).
			Padding(0, 1)

	// SeparatorStyle for horizontal rules
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(FgBorder)

	// HelpStyle for help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(FgBorder)

	// MutedStyle for secondary text
	MutedStyle = lipgloss.NewStyle().
			Foreground(FgMuted)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(FgLevelError)

	// SelectedStyle for the row under the cursor
	SelectedStyle = lipgloss.NewStyle().
			Background(BgSelection).
			Bold(true)

	// DateHeaderStyle for day separator rows
	DateHeaderStyle = lipgloss.NewStyle().
			Foreground(DateHeaderColor).
			Bold(true)

	// LabelStyle for form labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(FgMuted).
			Width(10)

	// FocusedLabelStyle for the label of the focused input
	FocusedLabelStyle = LabelStyle.
				Foreground(FgPrimary).
				Bold(true)

	// AlertStyle for blocking notifications
	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(FgAlert).
			Padding(1, 3)

	// EmptyStateStyle for empty state messages
	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(FgMuted).
			MarginTop(1)

	// BlinkStyle for the in-flight indicator
	BlinkStyle = lipgloss.NewStyle().
			Foreground(FgPrimary)
)

// LevelStyle returns the style for a log level class
func LevelStyle(class string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(LevelColor(class))
}

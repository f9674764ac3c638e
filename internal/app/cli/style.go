package cli

import (
	"github.com/charmbracelet/lipgloss"

	"logviewer/internal/app/ui/components"
	"logviewer/internal/config"
)

// Material Design 3 Typography Scale
// https://m3.material.io/styles/typography/overview

// Headline - High-emphasis text for section headers
var (
	headlineLarge = lipgloss.NewStyle().Bold(true).Foreground(components.FgPrimary).MarginTop(1)
)

// Title - Medium-emphasis text for titles and subtitles
var (
	titleMedium = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
)

// Body - Main content text
var (
	bodyLarge  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	bodyMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
)

// Label - Small text for labels, captions, and supplementary content
var (
	labelLarge = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")).Italic(true).MarginTop(1)
)

// Semantic styles - mapped to Material typography scale
var (
	sectionHeader = headlineLarge.MarginBottom(1)
	helpText      = labelLarge

	commandName = titleMedium
	exampleCode = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA726"))
	errorLabel  = lipgloss.NewStyle().Bold(true).Foreground(components.FgAlert)

	// Title components (inline styles without margins)
	appNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(components.FgPrimary)
	appVersionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDBDBD"))
	titleWrapper    = lipgloss.NewStyle().MarginTop(1).MarginBottom(1)
)

// RenderTitle renders the app title block with name, version, and description
func RenderTitle() string {
	title := titleWrapper.Render(
		appNameStyle.Render(config.AppName) + appVersionStyle.Render(" v"+config.Version),
	)
	description := bodyLarge.Render(config.AppDescription)

	return lipgloss.JoinVertical(lipgloss.Left, title, description)
}

// RenderError renders a one-line failure for stderr
func RenderError(text string) string {
	return errorLabel.Render("Error:") + " " + text
}

// RenderHint points the user at the help command
func RenderHint() string {
	return helpText.Render("Run '" + config.AppName + " help' for usage.")
}

package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type usageLine struct {
	command     string
	description string
}

var usageLines = []usageLine{
	{"logviewer", "Open the interactive viewer"},
	{"logviewer users [-u USER -p PASS]", "List the user IDs you may inspect"},
	{"logviewer logs USER_ID [--full]", "Print a user's log entries grouped by day"},
	{"logviewer logs USER_ID --html FILE", "Write the log entries as a standalone HTML page"},
	{"logviewer init [--force] [--dry-run]", "Generate logviewer.yaml"},
	{"logviewer config", "Print the effective configuration"},
	{"logviewer version", "Show version"},
}

var exampleLines = []usageLine{
	{"logviewer -c ~/work/logviewer.yaml", "Use a specific config file"},
	{"logviewer logs 42 -u dev -p secret", "Print the logs of user 42"},
	{"LOGVIEWER_SERVER_URL=https://logs.example.com logviewer", "Override the server for one run"},
}

// renderHelp renders the usage screen
func renderHelp() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		RenderTitle(),
		sectionHeader.Render("Usage:"),
		renderLines(usageLines, commandName),
		sectionHeader.Render("Examples:"),
		renderLines(exampleLines, exampleCode),
		helpText.Render("Flags --username and --password default to auth.username and auth.password."),
	) + "\n"
}

func renderLines(lines []usageLine, style lipgloss.Style) string {
	width := 0
	for _, line := range lines {
		width = max(width, lipgloss.Width(line.command))
	}

	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, bodyMedium.Render(fmt.Sprintf("  %s  %s", style.Width(width).Render(line.command), line.description)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for the UI with semantic naming
const (
	// Foreground colors - text and elements
	FgPrimary = lipgloss.Color("#7D56F4") // Purple - primary/focus color
	FgMuted   = lipgloss.Color("7")       // Light gray - muted elements
	FgBorder  = lipgloss.Color("8")       // Gray - borders and help text
	FgAlert   = lipgloss.Color("9")       // Red - alert border

	// Background colors
	BgSelection = lipgloss.Color("235") // Dark gray - selected background

	// Level colors - log severity
	FgLevelCritical = lipgloss.Color("13") // Magenta
	FgLevelError    = lipgloss.Color("9")  // Red
	FgLevelWarning  = lipgloss.Color("11") // Yellow
	FgLevelInfo     = lipgloss.Color("12") // Blue
	FgLevelDebug    = lipgloss.Color("8")  // Gray
)

// DateHeaderColor is the adaptive color for day separators
var DateHeaderColor = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#a5b4fc"}

// LevelColor maps a lowercased level to its color, unknown levels use the default foreground
func LevelColor(class string) lipgloss.TerminalColor {
	switch strings.ToLower(class) {
	case "critical", "fatal", "panic":
		return FgLevelCritical
	case "error", "err":
		return FgLevelError
	case "warning", "warn":
		return FgLevelWarning
	case "info":
		return FgLevelInfo
	case "debug", "trace":
		return FgLevelDebug
	default:
		return lipgloss.NoColor{}
	}
}

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// PanelOptions describes a full screen panel
type PanelOptions struct {
	Title   string
	Status  string
	Content string
	Help    string
	Stats   string
	Version string
	Height  int
	Width   int
}

// RenderLine renders a horizontal line of the specified width with separator style
func RenderLine(width int) string {
	if width < 0 {
		width = 0
	}

	return SeparatorStyle.Render(strings.Repeat("─", width))
}

// RenderHeader renders the header with format: ─── <title> ─────── <status> ───
func RenderHeader(width int, title, status string) string {
	title = TitleStyle.Render(title)
	titleWidth := lipgloss.Width(title)
	statusWidth := lipgloss.Width(status)

	maxTitleWidth := width - statusWidth - HeaderSeparatorMinWidth - HeaderFixedChars
	if titleWidth > maxTitleWidth && maxTitleWidth > 0 {
		title = truncate(title, maxTitleWidth)
		titleWidth = lipgloss.Width(title)
	}

	separatorWidth := width - titleWidth - statusWidth - HeaderFixedChars
	if separatorWidth < HeaderSeparatorMinWidth {
		separatorWidth = HeaderSeparatorMinWidth
	}

	return RenderLine(3) + " " + title + " " + RenderLine(separatorWidth) + " " + status + " " + RenderLine(3)
}

// RenderFooter renders help on the left and stats with version on the right
func RenderFooter(width int, help, stats, version string) string {
	right := strings.TrimSpace(stats + "  " + version)
	left := HelpStyle.Render(help)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < FooterGapMinWidth {
		left = truncate(left, width-lipgloss.Width(right)-FooterGapMinWidth)
		gap = FooterGapMinWidth
	}

	return left + strings.Repeat(" ", gap) + MutedStyle.Render(right)
}

// RenderPanel renders header, bordered content and footer sized to the terminal
func RenderPanel(opts PanelOptions) string {
	width := max(opts.Width, MinPanelWidth)
	height := max(opts.Height, MinPanelHeight)

	header := RenderHeader(width, opts.Title, opts.Status)
	body := PanelStyle.
		Width(width - PanelBorderPadding).
		Height(height - PanelHeightPadding).
		Render(opts.Content)
	footer := RenderFooter(width, opts.Help, opts.Stats, opts.Version)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// RenderModal centers a blocking notification over the whole screen
func RenderModal(width, height int, title, body, hint string) string {
	inner := min(AlertMaxWidth, max(width-PanelInnerPadding*2, MessageMinWidth))
	text := lipgloss.NewStyle().Width(inner).Render(body)

	box := AlertStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		ErrorStyle.Bold(true).Render(title),
		"",
		text,
		"",
		HelpStyle.Render(hint),
	))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// PadRight pads s with spaces up to width, wider strings are returned unchanged
func PadRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}

	return s + strings.Repeat(" ", gap)
}

// TruncateAndPad fits s into exactly width cells
func TruncateAndPad(s string, width int) string {
	if width <= 1 {
		return ellipsis
	}

	return PadRight(truncate(s, width), width)
}

func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	if maxWidth == 1 {
		return ellipsis
	}

	return ansi.Truncate(s, maxWidth, ellipsis)
}

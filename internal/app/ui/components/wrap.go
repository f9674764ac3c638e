package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Wrap breaks text into display lines no wider than width, keeping explicit newlines
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")

	var lines []string

	for _, paragraph := range strings.Split(text, "\n") {
		wrapped := ansi.Wrap(paragraph, width, "")
		lines = append(lines, strings.Split(wrapped, "\n")...)
	}

	return lines
}

// Clamp wraps text and keeps at most n lines, marking the cut with an ellipsis
func Clamp(text string, width, n int) ([]string, bool) {
	lines := Wrap(text, width)
	if n < 1 || len(lines) <= n {
		return lines, false
	}

	out := make([]string, n)
	copy(out, lines[:n])

	last := strings.TrimRight(out[n-1], " ")
	if ansi.StringWidth(last)+1 > width {
		last = ansi.Truncate(last, width-1, "")
	}

	out[n-1] = last + ellipsis

	return out, true
}

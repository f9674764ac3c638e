package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func Test_RenderPanel(t *testing.T) {
	t.Run("renders all parts", func(t *testing.T) {
		result := RenderPanel(PanelOptions{
			Title:   "Logs",
			Status:  "user 42",
			Content: "Content",
			Help:    "q quit",
			Stats:   "cpu 1.0%",
			Version: "v0.3.0",
			Height:  20,
			Width:   80,
		})

		assert.Contains(t, result, "Logs")
		assert.Contains(t, result, "user 42")
		assert.Contains(t, result, "Content")
		assert.Contains(t, result, "q quit")
		assert.Contains(t, result, "v0.3.0")
		assert.Equal(t, 20, lipgloss.Height(result))
	})

	t.Run("handles minimum dimensions", func(t *testing.T) {
		result := RenderPanel(PanelOptions{Title: "T", Content: "C", Height: 2, Width: 10})

		assert.Equal(t, MinPanelHeight, lipgloss.Height(result))
		assert.GreaterOrEqual(t, lipgloss.Width(result), MinPanelWidth)
	})

	t.Run("handles empty content", func(t *testing.T) {
		result := RenderPanel(PanelOptions{Title: "Title", Height: 10, Width: 40})

		assert.Contains(t, result, "Title")
	})
}

func Test_RenderModal(t *testing.T) {
	result := RenderModal(80, 24, "Error", "Unauthorized", "enter dismiss")

	assert.Contains(t, result, "Error")
	assert.Contains(t, result, "Unauthorized")
	assert.Contains(t, result, "enter dismiss")
	assert.Equal(t, 24, lipgloss.Height(result))
}

func Test_PadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		width  int
		expect string
	}{
		{name: "Empty string", input: "", width: 5, expect: "     "},
		{name: "Short string", input: "hello", width: 10, expect: "hello     "},
		{name: "Exact width", input: "hello", width: 5, expect: "hello"},
		{name: "Longer than width", input: "hello world", width: 5, expect: "hello world"},
		{name: "Wide runes", input: "日本", width: 6, expect: "日本  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, PadRight(tt.input, tt.width))
		})
	}
}

func Test_PadRight_WithStyles(t *testing.T) {
	styled := "\x1b[31mred\x1b[0m"
	result := PadRight(styled, 10)

	assert.True(t, strings.HasPrefix(result, styled))
	assert.Equal(t, 10, lipgloss.Width(result))
}

func Test_TruncateAndPad(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		width  int
		expect string
	}{
		{name: "Exact width", input: "hello", width: 5, expect: "hello"},
		{name: "Shorter pads", input: "hi", width: 5, expect: "hi   "},
		{name: "Longer truncates", input: "hello world", width: 8, expect: "hello w…"},
		{name: "Empty pads", input: "", width: 3, expect: "   "},
		{name: "Width 1", input: "hello", width: 1, expect: "…"},
		{name: "Width 0", input: "hello", width: 0, expect: "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, TruncateAndPad(tt.input, tt.width))
		})
	}
}

func Test_RenderHeader_TruncatesLongTitle(t *testing.T) {
	result := RenderHeader(40, strings.Repeat("x", 100), "status")

	assert.Contains(t, result, "…")
	assert.Contains(t, result, "status")
}

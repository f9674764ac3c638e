package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"logviewer/internal/app/logbook"
	"logviewer/internal/app/session"
	"logviewer/internal/app/ui/components"
	"logviewer/internal/config"
)

const (
	cursorMarker = "▸ "
	cursorBlank  = "  "
)

// View renders the UI
func (m Model) View() string {
	if !m.state.ready {
		return "Initializing…"
	}

	if alert := m.session.Alert(); alert != "" {
		return components.RenderModal(m.ui.width, m.ui.height, "Error", alert, m.ui.help.ShortHelpView(m.ui.keys.alertHelp()))
	}

	return components.RenderPanel(components.PanelOptions{
		Title:   m.renderTitle(),
		Status:  m.renderStatus(),
		Content: m.renderContent(),
		Help:    m.ui.help.ShortHelpView(m.helpBindings()),
		Stats:   m.renderAppStats(),
		Version: fmt.Sprintf("v%s", config.Version),
		Height:  m.ui.height,
		Width:   m.ui.width,
	})
}

// refresh rebuilds the viewport content for the current phase
func (m *Model) refresh() {
	switch m.session.Phase() {
	case session.Selecting, session.Loading:
		m.ui.viewport.SetContent(m.renderSelection())
		m.ensureVisible(m.session.SelectedIndex())
	case session.Viewing:
		m.ui.viewport.SetContent(m.renderTable())
		m.ensureVisible(m.state.cursor)
	default:
		m.state.rowLines = nil
	}
}

// ensureVisible scrolls the viewport so the row at i is fully shown
func (m *Model) ensureVisible(i int) {
	if i < 0 || i >= len(m.state.rowLines) || m.ui.viewport.Height <= 0 {
		return
	}

	span := m.state.rowLines[i]

	if span.start < m.ui.viewport.YOffset {
		m.ui.viewport.SetYOffset(span.start)
		return
	}

	if bottom := m.ui.viewport.YOffset + m.ui.viewport.Height - 1; span.end > bottom {
		m.ui.viewport.SetYOffset(span.end - m.ui.viewport.Height + 1)
	}
}

// renderContent renders the panel body for the current phase
func (m Model) renderContent() string {
	switch m.session.Phase() {
	case session.Login, session.Authenticating:
		return m.renderLogin()
	default:
		return m.ui.viewport.View()
	}
}

// renderTitle renders the panel title
func (m Model) renderTitle() string {
	switch m.session.Phase() {
	case session.Viewing:
		_, entries := logbook.Count(m.session.Rows())
		return fmt.Sprintf("%s · user %s · %d entries", config.AppName, m.session.Viewed(), entries)
	case session.Selecting, session.Loading:
		return fmt.Sprintf("%s · %s", config.AppName, m.session.Credentials().Username)
	default:
		return config.AppName
	}
}

// renderStatus renders the in-flight indicator with the last request outcome
func (m Model) renderStatus() string {
	parts := make([]string, 0, 4)

	if frame := m.ui.blink.Render(components.BlinkStyle); frame != "" {
		parts = append(parts, frame)
	}

	if m.state.lastRequest != "" {
		parts = append(parts, components.MutedStyle.Render(m.state.lastRequest))
	}

	if m.state.configError != "" {
		parts = append(parts, components.ErrorStyle.Render("config invalid"))
	} else if m.state.watching {
		parts = append(parts, components.MutedStyle.Render("watching config"))
	}

	return strings.Join(parts, " ")
}

// renderAppStats renders the viewer's own CPU and memory usage
func (m Model) renderAppStats() string {
	if m.state.appCPU == 0 && m.state.appMEM == 0 {
		return ""
	}

	return fmt.Sprintf("cpu %s • mem %s", formatCPU(m.state.appCPU), formatMEM(m.state.appMEM))
}

// helpBindings returns the key help for the current phase
func (m Model) helpBindings() []key.Binding {
	switch m.session.Phase() {
	case session.Selecting, session.Loading:
		return m.ui.keys.selectionHelp()
	case session.Viewing:
		return m.ui.keys.viewingHelp()
	default:
		return m.ui.keys.loginHelp()
	}
}

// renderLogin renders the username and password form
func (m Model) renderLogin() string {
	labels := []string{"Username", "Password"}
	lines := []string{components.MutedStyle.Render(fmt.Sprintf("Log in to %s", m.state.server)), ""}

	for i, input := range m.ui.inputs {
		label := components.LabelStyle.Render(labels[i])
		if i == m.ui.focus {
			label = components.FocusedLabelStyle.Render(labels[i])
		}

		lines = append(lines, label+" "+input.View())
	}

	if m.session.Phase() == session.Authenticating {
		lines = append(lines, "", m.ui.spinner.View()+" authenticating…")
	}

	return strings.Join(lines, "\n")
}

// renderSelection renders the user IDs with the selection marker
func (m *Model) renderSelection() string {
	ids := m.session.UserIDs()
	if len(ids) == 0 {
		m.state.rowLines = nil
		return components.EmptyStateStyle.Render("No user IDs available")
	}

	selected := m.session.SelectedIndex()
	lines := make([]string, 0, len(ids)+2)
	spans := make([]lineSpan, len(ids))

	for i, id := range ids {
		line := cursorBlank + id.String()
		if i == selected {
			line = components.TitleStyle.Render(cursorMarker) + components.SelectedStyle.Render(id.String())
		}

		spans[i] = lineSpan{start: len(lines), end: len(lines)}
		lines = append(lines, line)
	}

	if m.session.Phase() == session.Loading {
		if id, ok := m.session.Selected(); ok {
			lines = append(lines, "", m.ui.spinner.View()+" loading logs for "+id.String()+"…")
		}
	}

	m.state.rowLines = spans

	return strings.Join(lines, "\n")
}

// renderTable renders date headers and entry rows, recording the lines of each row
func (m *Model) renderTable() string {
	rows := m.session.Rows()
	if len(rows) == 0 {
		m.state.rowLines = nil
		return components.EmptyStateStyle.Render(fmt.Sprintf("No log entries for user %s", m.session.Viewed()))
	}

	width := m.ui.viewport.Width
	if width <= 0 {
		width = components.DefaultViewportWidth
	}

	lines := make([]string, 0, len(rows)*2)
	spans := make([]lineSpan, len(rows))

	for i, row := range rows {
		start := len(lines)

		if row.IsHeader() {
			lines = append(lines, components.DateHeaderStyle.Render("── "+row.Date+" ──"))
		} else {
			lines = append(lines, m.renderEntry(i, row, width)...)
		}

		spans[i] = lineSpan{start: start, end: len(lines) - 1}
	}

	m.state.rowLines = spans

	return strings.Join(lines, "\n")
}

// renderEntry renders one entry row, clamped unless expanded
func (m Model) renderEntry(i int, row logbook.Row, width int) []string {
	expanded := m.session.Expanded(i)
	selected := i == m.state.cursor

	marker := cursorBlank
	if selected {
		marker = components.TitleStyle.Render(cursorMarker)
	}

	stamp := row.Time
	if expanded {
		stamp = m.formatter.Stamp(row.Entry.Time)
	}

	gap := strings.Repeat(" ", components.ColumnGap)
	stampCol := components.MutedStyle.Render(components.PadRight(stamp, components.StampColumnWidth))
	levelCol := components.LevelStyle(row.Class).Render(components.TruncateAndPad(row.Entry.Level, components.LevelColumnWidth))

	prefixWidth := lipgloss.Width(cursorBlank) + components.StampColumnWidth + components.LevelColumnWidth + 2*components.ColumnGap
	messageWidth := max(width-prefixWidth, components.MessageMinWidth)
	indent := strings.Repeat(" ", prefixWidth)

	text := ansi.Strip(row.Entry.Message)

	var message []string
	if expanded {
		message = components.Wrap(text, messageWidth)
	} else {
		message, _ = components.Clamp(text, messageWidth, m.formatter.Clamp())
	}

	out := make([]string, 0, len(message)+1)

	for j, line := range message {
		if selected {
			line = components.SelectedStyle.Render(line)
		}

		if j == 0 {
			out = append(out, marker+stampCol+gap+levelCol+gap+line)
		} else {
			out = append(out, indent+line)
		}
	}

	if expanded {
		out = append(out, indent+components.MutedStyle.Render(m.formatter.Age(row.Entry.Time)))
	}

	return out
}

// formatCPU formats a CPU percentage value
func formatCPU(cpu float64) string {
	return fmt.Sprintf("%.1f%%", cpu)
}

// formatMEM formats a memory value in MB or GB
func formatMEM(mem float64) string {
	if mem < components.MBToGB {
		return fmt.Sprintf("%.0fMB", mem)
	}

	return fmt.Sprintf("%.1fGB", mem/components.MBToGB)
}

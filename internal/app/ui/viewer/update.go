package viewer

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"logviewer/internal/app/bus"
	"logviewer/internal/app/session"
	"logviewer/internal/app/ui/components"
)

// Tick timing constants
const (
	tickInterval       = components.UITickInterval
	tickCounterMaximum = 1000000
)

// msgMsg wraps a bus message for tea messaging
type msgMsg bus.Message

// tickMsg signals a UI tick for animations
type tickMsg time.Time

// channelClosedMsg signals the event channel has closed
type channelClosedMsg struct{}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.ui.width = msg.Width
		m.ui.height = msg.Height
		m.ui.help.Width = msg.Width

		panelHeight := max(msg.Height, components.MinPanelHeight)
		panelWidth := max(msg.Width, components.MinPanelWidth)

		m.ui.viewport.Width = panelWidth - components.PanelInnerPadding
		m.ui.viewport.Height = panelHeight - components.PanelHeightPadding

		for i := range m.ui.inputs {
			m.ui.inputs[i].Width = min(components.AlertMaxWidth, panelWidth-components.PanelInnerPadding*4)
		}

		m.state.ready = true
		m.refresh()

		return m, nil

	case userIDsMsg:
		if m.session.ApplyUserIDs(msg.seq, msg.ids, msg.err) {
			m.syncBlink()
			m.ui.viewport.GotoTop()
			m.refresh()
		}

		return m, nil

	case logsMsg:
		if m.session.ApplyLogs(msg.seq, msg.userID, msg.entries, msg.err) {
			m.syncBlink()

			if msg.err == nil && m.session.Phase() == session.Viewing {
				m.state.cursor = firstEntryRow(m.session.Rows())
				m.ui.viewport.GotoTop()
			}

			m.refresh()
		}

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.ui.spinner, cmd = m.ui.spinner.Update(msg)

		if m.session.Pending() {
			m.refresh()
		}

		return m, cmd

	case tickMsg:
		m.ui.tickCounter++

		if m.ui.tickCounter >= tickCounterMaximum {
			m.ui.tickCounter = 0
		}

		m.syncBlink()
		m.ui.blink.Update()

		return m, tickCmd()

	case statsUpdateMsg:
		if msg.err == nil {
			m.state.appCPU = msg.CPU
			m.state.appMEM = msg.MEM
		}

		return m, statsWorkerCmd(m.ctx, m.monitor)

	case msgMsg:
		return m.handleMessage(bus.Message(msg))

	case channelClosedMsg:
		m.log.Warn().Msg("TUI: Event channel closed, quitting")

		return m, tea.Quit
	}

	if m.onLoginForm() {
		var cmd tea.Cmd

		m.ui.inputs[m.ui.focus], cmd = m.ui.inputs[m.ui.focus].Update(msg)

		return m, cmd
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.ui.keys.ForceQuit) {
		m.log.Debug().Msg("TUI: Quit requested")

		return m, tea.Quit
	}

	if m.session.Alert() != "" {
		return m.handleAlertKey(msg)
	}

	switch m.session.Phase() {
	case session.Login, session.Authenticating:
		return m.handleLoginKey(msg)
	case session.Selecting, session.Loading:
		return m.handleSelectionKey(msg)
	case session.Viewing:
		return m.handleViewingKey(msg)
	}

	return m, nil
}

// handleAlertKey swallows input until the alert is dismissed
func (m Model) handleAlertKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.ui.keys.Confirm, m.ui.keys.Back) {
		m.session.DismissAlert()
		m.refresh()
	}

	return m, nil
}

// handleLoginKey edits the login form and submits it on enter
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ui.keys.NextField):
		m.focusField(m.ui.focus + 1)
		return m, textinput.Blink

	case key.Matches(msg, m.ui.keys.PrevField):
		m.focusField(m.ui.focus - 1)
		return m, textinput.Blink

	case key.Matches(msg, m.ui.keys.Confirm):
		return m.submit()
	}

	var cmd tea.Cmd

	m.ui.inputs[m.ui.focus], cmd = m.ui.inputs[m.ui.focus].Update(msg)

	return m, cmd
}

// handleSelectionKey moves through user IDs and starts log fetches
func (m Model) handleSelectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ui.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.ui.keys.Up):
		m.session.MoveSelection(-1)
		m.refresh()

	case key.Matches(msg, m.ui.keys.Down):
		m.session.MoveSelection(1)
		m.refresh()

	case key.Matches(msg, m.ui.keys.Confirm):
		return m.viewLogs()

	case key.Matches(msg, m.ui.keys.Logout):
		return m.logout()
	}

	return m, nil
}

// handleViewingKey moves the row cursor and toggles entries
func (m Model) handleViewingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ui.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.ui.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.ui.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.ui.keys.Toggle):
		if m.session.Toggle(m.state.cursor) {
			m.refresh()
		}

	case key.Matches(msg, m.ui.keys.Refresh):
		return m.viewLogs()

	case key.Matches(msg, m.ui.keys.Back):
		if err := m.session.Back(); err != nil {
			m.log.Warn().Err(err).Msg("TUI: Back rejected")
		}

		m.ui.viewport.GotoTop()
		m.refresh()

	case key.Matches(msg, m.ui.keys.PageUp, m.ui.keys.PageDown):
		var cmd tea.Cmd

		m.ui.viewport, cmd = m.ui.viewport.Update(msg)

		return m, cmd
	}

	return m, nil
}

// submit starts authentication with the typed credentials
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, err := m.session.Submit(m.credentials())
	if err != nil {
		m.log.Warn().Err(err).Msg("TUI: Submit rejected")
		return m, nil
	}

	m.syncBlink()
	m.refresh()

	return m, requestCmd(m.ctx, m.client, req)
}

// viewLogs starts fetching logs for the selected user
func (m Model) viewLogs() (tea.Model, tea.Cmd) {
	req, err := m.session.ViewLogs()
	if err != nil {
		m.log.Warn().Err(err).Msg("TUI: View logs rejected")
		return m, nil
	}

	m.syncBlink()
	m.refresh()

	return m, requestCmd(m.ctx, m.client, req)
}

// logout returns to the login form with the password cleared
func (m Model) logout() (tea.Model, tea.Cmd) {
	if err := m.session.Logout(); err != nil {
		m.log.Warn().Err(err).Msg("TUI: Logout rejected")
		return m, nil
	}

	m.ui.inputs[fieldPassword].SetValue("")
	m.focusField(fieldPassword)
	m.state.cursor = -1
	m.state.rowLines = nil
	m.syncBlink()
	m.refresh()

	return m, textinput.Blink
}

// moveCursor moves the row cursor to the next entry row in direction delta
func (m *Model) moveCursor(delta int) {
	rows := m.session.Rows()

	for i := m.state.cursor + delta; i >= 0 && i < len(rows); i += delta {
		if !rows[i].IsHeader() {
			m.state.cursor = i
			m.refresh()

			return
		}
	}

	if delta < 0 && m.state.cursor >= 0 {
		// Reveal the date header above the first entry
		m.ui.viewport.GotoTop()
	}
}

// syncBlink runs the in-flight indicator while a request is pending
func (m *Model) syncBlink() {
	if m.session.Pending() {
		m.ui.blink.Start()
		return
	}

	m.ui.blink.Stop()
}

// handleMessage dispatches bus messages to specific handlers
func (m Model) handleMessage(msg bus.Message) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case bus.EventRequestFinished:
		m = m.handleRequestFinished(msg)
	case bus.EventConfigReloaded:
		m = m.handleConfigReloaded(msg)
	case bus.EventWatchStarted:
		m.state.watching = true
	case bus.EventWatchStopped:
		m.state.watching = false
	}

	return m, waitForMsgCmd(m.msgChan)
}

// handleRequestFinished records the outcome of the last API call for the status line
func (m Model) handleRequestFinished(msg bus.Message) Model {
	data, ok := msg.Data.(bus.RequestFinished)
	if !ok {
		m.log.Error().Msg("TUI: Failed to cast RequestFinished")
		return m
	}

	switch {
	case data.Status == 0:
		m.state.lastRequest = fmt.Sprintf("%s failed", data.Endpoint)
	case data.Error != nil:
		m.state.lastRequest = fmt.Sprintf("%s %d", data.Endpoint, data.Status)
	default:
		m.state.lastRequest = fmt.Sprintf("%s %d · %d in %s", data.Endpoint, data.Status, data.Count, data.Duration.Round(time.Millisecond))
	}

	return m
}

// handleConfigReloaded applies new display settings and re-renders the table
func (m Model) handleConfigReloaded(msg bus.Message) Model {
	data, ok := msg.Data.(bus.ConfigReloaded)
	if !ok {
		m.log.Error().Msg("TUI: Failed to cast ConfigReloaded")
		return m
	}

	if data.Error != nil {
		m.log.Warn().Err(data.Error).Msgf("TUI: Ignoring invalid config reload from %s", data.Path)
		m.state.configError = data.Error.Error()

		return m
	}

	if data.Config == nil {
		return m
	}

	if err := m.formatter.Update(data.Config.Display); err != nil {
		m.log.Warn().Err(err).Msg("TUI: Failed to apply display settings")
		m.state.configError = err.Error()

		return m
	}

	m.state.configError = ""
	m.session.Rerender()

	if m.session.Phase() == session.Viewing {
		m.state.cursor = firstEntryRow(m.session.Rows())
	}

	m.refresh()

	m.log.Info().Msgf("TUI: Display settings reloaded from %s", data.Path)

	return m
}

// onLoginForm reports whether keystrokes go to the login inputs
func (m Model) onLoginForm() bool {
	if m.session.Alert() != "" {
		return false
	}

	phase := m.session.Phase()

	return phase == session.Login || phase == session.Authenticating
}

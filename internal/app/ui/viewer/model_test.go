package viewer

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"logviewer/internal/app/api"
	"logviewer/internal/app/bus"
	"logviewer/internal/app/errors"
	"logviewer/internal/app/logbook"
	"logviewer/internal/app/monitor"
	"logviewer/internal/app/session"
	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

type fixture struct {
	model     Model
	client    *api.MockClient
	monitor   *monitor.MockMonitor
	session   *session.Session
	formatter *logbook.Formatter
}

func newTestLogger(ctrl *gomock.Controller) *logger.MockLogger {
	log := logger.NewMockLogger(ctrl)
	nop := zerolog.Nop()
	log.EXPECT().WithComponent(gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().Debug().Return(nop.Debug()).AnyTimes()
	log.EXPECT().Info().Return(nop.Info()).AnyTimes()
	log.EXPECT().Warn().Return(nop.Warn()).AnyTimes()
	log.EXPECT().Error().Return(nop.Error()).AnyTimes()

	return log
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := config.DefaultConfig()
	cfg.Auth.Username = "dev"
	cfg.Auth.Password = "secret"

	log := newTestLogger(ctrl)
	b := bus.NoOp()

	formatter := logbook.NewFormatterIn(time.UTC, 3)
	formatter.SetClock(func() time.Time { return time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC) })

	sess := session.New(formatter, b, log)
	client := api.NewMockClient(ctrl)
	mon := monitor.NewMockMonitor(ctrl)

	m := NewModel(ctx, cfg, sess, client, mon, formatter, b, log)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	return &fixture{model: m, client: client, monitor: mon, session: sess, formatter: formatter}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, _ := m.Update(msg)

	updated, ok := next.(Model)
	require.True(t, ok)

	return updated
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(k)

	updated, ok := next.(Model)
	require.True(t, ok)

	return updated, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

var sampleEntries = []logbook.LogEntry{
	{Time: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), Level: "ERROR", Message: "a"},
	{Time: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), Level: "INFO", Message: "b"},
}

// login drives the model through a successful authentication
func (f *fixture) login(t *testing.T, ids []logbook.UserID) Model {
	t.Helper()

	f.client.EXPECT().
		UserIDs(gomock.Any(), logbook.Credentials{Username: "dev", Password: "secret"}).
		Return(ids, nil)

	m, cmd := press(t, f.model, keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, session.Authenticating, f.session.Phase())

	return update(t, m, cmd())
}

// view drives the model from selection into the log table
func (f *fixture) view(t *testing.T, m Model, userID logbook.UserID, entries []logbook.LogEntry) Model {
	t.Helper()

	f.client.EXPECT().
		Logs(gomock.Any(), gomock.Any(), userID).
		Return(entries, nil)

	m, cmd := press(t, m, keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, session.Loading, f.session.Phase())

	return update(t, m, cmd())
}

func Test_NewModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	assert.Equal(t, session.Login, f.session.Phase())
	assert.Equal(t, logbook.Credentials{Username: "dev", Password: "secret"}, f.model.credentials())
	assert.Equal(t, fieldUsername, f.model.ui.focus)
	assert.Equal(t, -1, f.model.state.cursor)

	view := f.model.View()
	assert.Contains(t, view, "Username")
	assert.Contains(t, view, "Password")
	assert.NotContains(t, view, "secret")
}

func Test_View_BeforeWindowSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := newTestLogger(ctrl)
	formatter := logbook.NewFormatterIn(time.UTC, 3)
	m := NewModel(context.Background(), config.DefaultConfig(), session.New(formatter, bus.NoOp(), log),
		api.NewMockClient(ctrl), monitor.NewMockMonitor(ctrl), formatter, bus.NoOp(), log)

	assert.Equal(t, "Initializing…", m.View())
}

func Test_LoginForm_Focus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	m, _ := press(t, f.model, keyTab)
	assert.Equal(t, fieldPassword, m.ui.focus)

	m, _ = press(t, m, keyTab)
	assert.Equal(t, fieldUsername, m.ui.focus)

	m, _ = press(t, m, runes("x"))
	assert.Equal(t, "devx", m.ui.inputs[fieldUsername].Value())
}

func Test_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	m := f.login(t, []logbook.UserID{"42", "7", "42"})

	assert.Equal(t, session.Selecting, f.session.Phase())
	assert.Equal(t, []logbook.UserID{"42", "7", "42"}, f.session.UserIDs())
	assert.False(t, m.ui.blink.IsActive())

	view := m.View()
	assert.Contains(t, view, "42")
	assert.Contains(t, view, "7")
	assert.NotContains(t, view, "Username")
}

func Test_Login_Failures(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		alert string
	}{
		{name: "Unauthorized", err: errors.ErrUnauthorized, alert: "Unauthorized"},
		{name: "Server error", err: &errors.HTTPError{Status: 500, StatusText: "Internal Server Error"}, alert: "An error occurred: 500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(t, ctrl)
			f.client.EXPECT().UserIDs(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			m, cmd := press(t, f.model, keyEnter)
			m = update(t, m, cmd())

			assert.Equal(t, session.Login, f.session.Phase())
			assert.Empty(t, f.session.UserIDs())
			assert.Equal(t, tt.alert, f.session.Alert())
			assert.Contains(t, m.View(), tt.alert)

			m, _ = press(t, m, runes("x"))
			assert.Equal(t, "dev", m.ui.inputs[fieldUsername].Value(), "input is swallowed while the alert is shown")

			m, _ = press(t, m, keyEnter)
			assert.Empty(t, f.session.Alert())
			assert.Contains(t, m.View(), "Username")
		})
	}
}

func Test_Login_StaleResponseDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	gomock.InOrder(
		f.client.EXPECT().UserIDs(gomock.Any(), gomock.Any()).Return([]logbook.UserID{"old"}, nil),
		f.client.EXPECT().UserIDs(gomock.Any(), gomock.Any()).Return([]logbook.UserID{"new"}, nil),
	)

	m, first := press(t, f.model, keyEnter)
	m, second := press(t, m, keyEnter)

	firstMsg := first()
	secondMsg := second()

	m = update(t, m, secondMsg)
	m = update(t, m, firstMsg)

	assert.Equal(t, session.Selecting, f.session.Phase())
	assert.Equal(t, []logbook.UserID{"new"}, f.session.UserIDs())
	assert.NotContains(t, m.View(), "old")
}

func Test_Selection_Navigation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	m := f.login(t, []logbook.UserID{"1", "2", "3"})

	m, _ = press(t, m, keyDown)
	m, _ = press(t, m, keyDown)
	m, _ = press(t, m, keyDown)
	assert.Equal(t, 2, f.session.SelectedIndex())

	_, _ = press(t, m, keyUp)
	assert.Equal(t, 1, f.session.SelectedIndex())
}

func Test_Selection_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	m := f.login(t, []logbook.UserID{"1"})

	m, _ = press(t, m, keyEsc)

	assert.Equal(t, session.Login, f.session.Phase())
	assert.Empty(t, f.session.UserIDs())
	assert.Empty(t, m.ui.inputs[fieldPassword].Value())
	assert.Equal(t, "dev", m.ui.inputs[fieldUsername].Value())
	assert.Equal(t, fieldPassword, m.ui.focus)
}

func Test_ViewLogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	m := f.login(t, []logbook.UserID{"1", "2"})
	m, _ = press(t, m, keyDown)
	m = f.view(t, m, "2", sampleEntries)

	assert.Equal(t, session.Viewing, f.session.Phase())
	assert.Equal(t, logbook.UserID("2"), f.session.Viewed())
	assert.Equal(t, 1, m.state.cursor)
	require.Len(t, m.state.rowLines, 4)

	view := m.View()
	assert.Contains(t, view, "02.01.2024")
	assert.Contains(t, view, "01.01.2024")
	assert.Contains(t, view, "10:00:00")
	assert.Contains(t, view, "ERROR")
	assert.Contains(t, view, "2 entries")
}

func Test_ViewLogs_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	m := f.login(t, []logbook.UserID{"1"})
	m = f.view(t, m, "1", []logbook.LogEntry{})

	assert.Equal(t, session.Viewing, f.session.Phase())
	assert.Empty(t, f.session.Rows())
	assert.Equal(t, -1, m.state.cursor)
	assert.Contains(t, m.View(), "No log entries for user 1")
}

func Test_ViewLogs_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	m := f.login(t, []logbook.UserID{"1"})

	f.client.EXPECT().Logs(gomock.Any(), gomock.Any(), logbook.UserID("1")).
		Return(nil, &errors.HTTPError{Status: 404, StatusText: "Not Found"})

	m, cmd := press(t, m, keyEnter)
	m = update(t, m, cmd())

	assert.Equal(t, session.Selecting, f.session.Phase())
	assert.Equal(t, "An error occurred: 404 Not Found", f.session.Alert())

	_, _ = press(t, m, keyEsc)
	assert.Empty(t, f.session.Alert())
	assert.Equal(t, session.Selecting, f.session.Phase(), "esc only dismisses the alert")
}

func Test_Viewing_CursorAndToggle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	m := f.login(t, []logbook.UserID{"1"})
	m = f.view(t, m, "1", sampleEntries)

	m, _ = press(t, m, keyDown)
	assert.Equal(t, 3, m.state.cursor, "cursor skips the date header")

	m, _ = press(t, m, keyDown)
	assert.Equal(t, 3, m.state.cursor)

	m, _ = press(t, m, keyUp)
	assert.Equal(t, 1, m.state.cursor)

	m, _ = press(t, m, keySpace)
	assert.True(t, f.session.Expanded(1))
	assert.Contains(t, m.View(), "02.01.2024 10:00:00")
	assert.Contains(t, m.View(), "1 day ago")

	_, _ = press(t, m, keyEnter)
	assert.False(t, f.session.Expanded(1))
}

func Test_Viewing_ClampsLongMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	m := f.login(t, []logbook.UserID{"1"})
	m = f.view(t, m, "1", []logbook.LogEntry{
		{Time: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), Level: "INFO", Message: "l1\nl2\nl3\nl4\nl5"},
	})

	span := m.state.rowLines[1]
	assert.Equal(t, 2, span.end-span.start, "collapsed rows show three lines")

	m, _ = press(t, m, keySpace)

	span = m.state.rowLines[1]
	assert.Equal(t, 5, span.end-span.start, "expanded rows show every line plus the age")
}

func Test_Viewing_RefetchAndBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	m := f.login(t, []logbook.UserID{"1"})
	m = f.view(t, m, "1", sampleEntries)

	f.client.EXPECT().Logs(gomock.Any(), gomock.Any(), logbook.UserID("1")).Return(sampleEntries[:1], nil)

	m, cmd := press(t, m, runes("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.ui.blink.IsActive())

	m = update(t, m, cmd())
	assert.Equal(t, session.Viewing, f.session.Phase())
	assert.Len(t, f.session.Rows(), 2)

	_, _ = press(t, m, keyEsc)
	assert.Equal(t, session.Selecting, f.session.Phase())
}

func Test_Viewing_RefetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	m := f.login(t, []logbook.UserID{"1"})
	m = f.view(t, m, "1", sampleEntries)
	m, _ = press(t, m, keyDown)
	require.Equal(t, 3, m.state.cursor)

	f.client.EXPECT().Logs(gomock.Any(), gomock.Any(), logbook.UserID("1")).
		Return(nil, &errors.HTTPError{Status: 500, StatusText: "Internal Server Error"})

	m, cmd := press(t, m, runes("r"))
	require.NotNil(t, cmd)

	m = update(t, m, cmd())
	assert.Equal(t, session.Viewing, f.session.Phase())
	assert.Equal(t, "An error occurred: 500 Internal Server Error", f.session.Alert())
	assert.Len(t, f.session.Rows(), 4)
	assert.Equal(t, 3, m.state.cursor)

	_, _ = press(t, m, keyEsc)
	assert.Empty(t, f.session.Alert())
	assert.Equal(t, session.Viewing, f.session.Phase(), "esc only dismisses the alert")
}

func Test_ForceQuit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	_, cmd := press(t, f.model, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func Test_Quit_NotOnLoginForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	m, _ := press(t, f.model, runes("q"))
	assert.Equal(t, "devq", m.ui.inputs[fieldUsername].Value())
}

func Test_ConfigReloaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	m := f.login(t, []logbook.UserID{"1"})
	m = f.view(t, m, "1", sampleEntries)
	m, _ = press(t, m, keySpace)

	cfg := config.DefaultConfig()
	cfg.Display.Timezone = "Asia/Tokyo"
	cfg.Display.Clamp = 1

	next, cmd := m.Update(msgMsg(bus.Message{
		Type: bus.EventConfigReloaded,
		Data: bus.ConfigReloaded{Path: "logviewer.yaml", Config: cfg},
	}))
	m = next.(Model)

	assert.NotNil(t, cmd)
	assert.Equal(t, "Asia/Tokyo", f.formatter.Location().String())
	assert.Equal(t, 1, f.formatter.Clamp())
	assert.False(t, f.session.Expanded(1), "re-render collapses rows")
	assert.Contains(t, m.View(), "19:00:00")
}

func Test_ConfigReloaded_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	m := update(t, f.model, msgMsg(bus.Message{
		Type: bus.EventConfigReloaded,
		Data: bus.ConfigReloaded{Path: "logviewer.yaml", Error: errors.ErrInvalidTimezone},
	}))

	assert.Equal(t, "UTC", f.formatter.Location().String())
	assert.Contains(t, m.renderStatus(), "config invalid")
}

func Test_RequestFinished(t *testing.T) {
	tests := []struct {
		name   string
		data   bus.RequestFinished
		expect string
	}{
		{
			name:   "Success",
			data:   bus.RequestFinished{Endpoint: bus.EndpointLogs, Status: 200, Count: 12, Duration: 85 * time.Millisecond},
			expect: "logs 200 · 12 in 85ms",
		},
		{
			name:   "Status error",
			data:   bus.RequestFinished{Endpoint: bus.EndpointUserIDs, Status: 401, Error: errors.ErrUnauthorized},
			expect: "user_ids 401",
		},
		{
			name:   "Transport error",
			data:   bus.RequestFinished{Endpoint: bus.EndpointLogs, Error: errors.ErrRequestFailed},
			expect: "logs failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(t, ctrl)
			m := update(t, f.model, msgMsg(bus.Message{Type: bus.EventRequestFinished, Data: tt.data}))

			assert.Equal(t, tt.expect, m.state.lastRequest)
		})
	}
}

func Test_WatchEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	m := update(t, f.model, msgMsg(bus.Message{Type: bus.EventWatchStarted}))
	assert.True(t, m.state.watching)
	assert.Contains(t, m.renderStatus(), "watching config")

	m = update(t, m, msgMsg(bus.Message{Type: bus.EventWatchStopped}))
	assert.False(t, m.state.watching)
}

func Test_StatsUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	next, cmd := f.model.Update(statsUpdateMsg{CPU: 1.5, MEM: 2048})
	m := next.(Model)

	assert.NotNil(t, cmd)
	assert.Equal(t, "cpu 1.5% • mem 2.0GB", m.renderAppStats())
}

func Test_StatsWorkerCmd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mon := monitor.NewMockMonitor(ctrl)
	mon.EXPECT().Self(gomock.Any()).Return(monitor.Stats{CPU: 2.5, MEM: 100}, nil)

	msg := statsWorkerCmd(context.Background(), mon)()

	assert.Equal(t, statsUpdateMsg{CPU: 2.5, MEM: 100}, msg)
}

func Test_ChannelClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	_, cmd := f.model.Update(channelClosedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func Test_formatMEM(t *testing.T) {
	tests := []struct {
		name   string
		mem    float64
		expect string
	}{
		{name: "Megabytes", mem: 512, expect: "512MB"},
		{name: "Gigabytes", mem: 1536, expect: "1.5GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, formatMEM(tt.mem))
		})
	}
}

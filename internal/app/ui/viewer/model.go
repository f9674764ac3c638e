package viewer

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"logviewer/internal/app/api"
	"logviewer/internal/app/bus"
	"logviewer/internal/app/logbook"
	"logviewer/internal/app/monitor"
	"logviewer/internal/app/session"
	"logviewer/internal/app/ui/components"
	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

// Login form fields
const (
	fieldUsername = iota
	fieldPassword
	fieldCount
)

// Model represents the Bubble Tea model for the log viewer
type Model struct {
	ctx       context.Context
	session   *session.Session
	client    api.Client
	monitor   monitor.Monitor
	formatter *logbook.Formatter
	msgChan   <-chan bus.Message

	state struct {
		server      string
		ready       bool
		cursor      int
		rowLines    []lineSpan
		lastRequest string
		watching    bool
		configError string
		appCPU      float64
		appMEM      float64
	}

	ui struct {
		height      int
		width       int
		keys        KeyMap
		help        help.Model
		inputs      []textinput.Model
		focus       int
		viewport    viewport.Model
		spinner     spinner.Model
		blink       *components.Blink
		tickCounter int
	}

	log logger.Logger
}

// lineSpan is the range of viewport lines occupied by one table row
type lineSpan struct {
	start int
	end   int
}

// NewModel creates a new viewer model in the login phase
func NewModel(
	ctx context.Context,
	cfg *config.Config,
	sess *session.Session,
	client api.Client,
	monitor monitor.Monitor,
	formatter *logbook.Formatter,
	b bus.Bus,
	log logger.Logger,
) Model {
	log = log.WithComponent("UI")
	msgChan := b.Subscribe(ctx)

	log.Debug().Msg("Created model and subscribed to events")

	m := Model{
		ctx:       ctx,
		session:   sess,
		client:    client,
		monitor:   monitor,
		formatter: formatter,
		msgChan:   msgChan,
		log:       log,
	}

	m.state.server = cfg.Server.URL
	m.state.cursor = -1

	m.ui.keys = DefaultKeyMap()
	m.ui.help = help.New()
	m.ui.inputs = newLoginInputs(cfg.Auth)
	m.ui.focus = fieldUsername
	m.ui.viewport = viewport.New(0, 0)
	m.ui.spinner = spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(components.BlinkStyle))
	m.ui.blink = components.NewBlink()

	m.focusField(fieldUsername)

	return m
}

// newLoginInputs creates the username and password fields prefilled from config
func newLoginInputs(auth config.Auth) []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)

	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = ""
	username.CharLimit = 128
	username.SetValue(auth.Username)

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.SetValue(auth.Password)

	inputs[fieldUsername] = username
	inputs[fieldPassword] = password

	return inputs
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.ui.spinner.Tick,
		waitForMsgCmd(m.msgChan),
		tickCmd(),
		statsWorkerCmd(m.ctx, m.monitor),
	)
}

// focusField moves keyboard focus to the login field at i
func (m *Model) focusField(i int) {
	m.ui.focus = (i + fieldCount) % fieldCount

	for idx := range m.ui.inputs {
		if idx == m.ui.focus {
			m.ui.inputs[idx].Focus()
		} else {
			m.ui.inputs[idx].Blur()
		}
	}
}

// credentials returns the values typed into the login form
func (m Model) credentials() logbook.Credentials {
	return logbook.Credentials{
		Username: m.ui.inputs[fieldUsername].Value(),
		Password: m.ui.inputs[fieldPassword].Value(),
	}
}

// firstEntryRow returns the index of the first entry row, -1 when there is none
func firstEntryRow(rows []logbook.Row) int {
	for i, row := range rows {
		if !row.IsHeader() {
			return i
		}
	}

	return -1
}

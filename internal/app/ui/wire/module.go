package wire

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/fx"

	"logviewer/internal/app/api"
	"logviewer/internal/app/bus"
	"logviewer/internal/app/logbook"
	"logviewer/internal/app/monitor"
	"logviewer/internal/app/session"
	"logviewer/internal/app/ui/viewer"
	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

// UI creates a Bubble Tea program for the TUI
type UI func(ctx context.Context) (*tea.Program, error)

// Module provides the UI factory
var Module = fx.Options(
	fx.Provide(NewUI),
)

// UIParams contains dependencies for creating the UI factory
type UIParams struct {
	fx.In

	Config    *config.Config
	Bus       bus.Bus
	Session   *session.Session
	Client    api.Client
	Monitor   monitor.Monitor
	Formatter *logbook.Formatter
	Logger    logger.Logger
}

// NewUI creates a factory function for constructing Bubble Tea programs
func NewUI(params UIParams) UI {
	return func(ctx context.Context) (*tea.Program, error) {
		model := viewer.NewModel(
			ctx,
			params.Config,
			params.Session,
			params.Client,
			params.Monitor,
			params.Formatter,
			params.Bus,
			params.Logger,
		)

		p := tea.NewProgram(
			model,
			tea.WithAltScreen(),
			tea.WithContext(ctx),
		)

		params.Logger.Debug().Msg("TUI: Program created via factory")

		return p, nil
	}
}

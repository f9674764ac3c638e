package session

import (
	"go.uber.org/fx"

	"logviewer/internal/app/bus"
	"logviewer/internal/app/logbook"
	"logviewer/internal/config/logger"
)

// Module provides the fx dependency injection options for the session package
var Module = fx.Options(
	fx.Provide(func(formatter *logbook.Formatter, b bus.Bus, log logger.Logger) *Session {
		return New(formatter, b, log.WithComponent("SESSION"))
	}),
)

package api

import (
	"go.uber.org/fx"

	"logviewer/internal/app/bus"
	"logviewer/internal/app/telemetry"
	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

// Module provides the log API client
var Module = fx.Module("api",
	fx.Provide(func(cfg *config.Config, b bus.Bus, reporter telemetry.Reporter, log logger.Logger) Client {
		return NewClient(cfg, b, reporter, log.WithComponent("API"))
	}),
)

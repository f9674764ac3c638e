package telemetry

import (
	"context"

	"go.uber.org/fx"

	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

// Module provides the error reporter and flushes it on shutdown
var Module = fx.Module("telemetry",
	fx.Provide(func(cfg *config.Config, log logger.Logger) Reporter {
		return NewReporter(cfg, log.WithComponent("TELEMETRY"))
	}),
	fx.Invoke(func(lc fx.Lifecycle, reporter Reporter) {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				reporter.Flush()
				return nil
			},
		})
	}),
)

package bus

import (
	"go.uber.org/fx"

	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

// Module provides bus for dependency injection
var Module = fx.Module("bus",
	fx.Provide(func(log logger.Logger) Bus {
		return New(config.BusBuffer, log.WithComponent("BUS"))
	}),
)

package render

import (
	"github.com/spf13/afero"
	"go.uber.org/fx"

	"logviewer/internal/app/logbook"
	"logviewer/internal/config/logger"
)

// Module provides the fx dependency injection options for the render package
var Module = fx.Options(
	fx.Provide(func(fs afero.Fs, formatter *logbook.Formatter, log logger.Logger) (Renderer, error) {
		return NewRenderer(fs, formatter, log.WithComponent("RENDER"))
	}),
)

package app

import (
	"github.com/spf13/afero"
	"go.uber.org/fx"

	"logviewer/internal/app/api"
	"logviewer/internal/app/bus"
	"logviewer/internal/app/cli"
	"logviewer/internal/app/generator"
	"logviewer/internal/app/logbook"
	"logviewer/internal/app/monitor"
	"logviewer/internal/app/render"
	"logviewer/internal/app/session"
	"logviewer/internal/app/telemetry"
	"logviewer/internal/app/ui/wire"
	"logviewer/internal/app/watcher"
	"logviewer/internal/config/logger"
)

// Module wires every package of the application
var Module = fx.Options(
	fx.Provide(afero.NewOsFs),
	logger.Module,
	bus.Module,
	telemetry.Module,
	logbook.Module,
	api.Module,
	session.Module,
	render.Module,
	generator.Module,
	monitor.Module,
	watcher.Module,
	wire.Module,
	cli.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)

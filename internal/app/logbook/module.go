package logbook

import "go.uber.org/fx"

// Module provides the fx dependency injection options for the logbook package
var Module = fx.Options(
	fx.Provide(NewFormatter),
)

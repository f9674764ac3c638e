package cli

import "go.uber.org/fx"

// Module provides the fx dependency injection options for the cli package
var Module = fx.Options(
	fx.Provide(func(p Params) CLI {
		p.Logger = p.Logger.WithComponent("CLI")
		return NewCLI(p)
	}),
)

package watcher

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the watcher and releases it on shutdown
var Module = fx.Options(
	fx.Provide(NewWatcher),
	fx.Invoke(func(lc fx.Lifecycle, w Watcher) {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				w.Close()
				return nil
			},
		})
	}),
)

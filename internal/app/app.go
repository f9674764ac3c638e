package app

import (
	"context"

	"go.uber.org/fx"

	"logviewer/internal/app/cli"
	"logviewer/internal/config/logger"
)

// App represents the main application container
type App struct {
	cli        cli.CLI
	shutdowner fx.Shutdowner
	log        logger.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewApp creates a new application instance with its dependencies
func NewApp(cli cli.CLI, shutdowner fx.Shutdowner, log logger.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())

	return &App{
		cli:        cli,
		shutdowner: shutdowner,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// Run executes the command and shuts fx down with its exit code
func (a *App) Run() {
	defer close(a.done)

	exitCode := a.execute(a.ctx)

	if err := a.shutdowner.Shutdown(fx.ExitCode(exitCode)); err != nil {
		a.log.Debug().Err(err).Msg("Shutdown already in progress")
	}
}

// execute runs the CLI and returns exit code - extracted for testing
func (a *App) execute(ctx context.Context) int {
	exitCode, err := a.cli.Execute(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("Application error")
	}

	return exitCode
}

// Register registers the application's lifecycle hooks with fx
func Register(lifecycle fx.Lifecycle, app *App) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go app.Run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			app.cancel()

			select {
			case <-app.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

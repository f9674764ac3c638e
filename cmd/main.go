package main

import (
	"fmt"
	"io"
	"os"
	_ "time/tzdata"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"logviewer/internal/app"
	"logviewer/internal/app/cli"
	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

// main is the entry point for the application
func main() {
	runApp(os.Args[1:])
}

// runApp contains the main application logic
func runApp(args []string) {
	opts, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError(err.Error()))
		fmt.Fprintln(os.Stderr, cli.RenderHint())
		os.Exit(1)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError(err.Error()))
		os.Exit(1)
	}

	application := createApp(cfg, opts)
	application.Run()
}

// loadConfig reads the configuration; init may replace a broken file, so it falls back to defaults
func loadConfig(opts *cli.Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil && opts.Type == cli.CommandInit {
		return config.DefaultConfig(), nil
	}

	return cfg, err
}

// createApp creates the FX application with the given config
func createApp(cfg *config.Config, opts *cli.Options) *fx.App {
	options := []fx.Option{
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg, opts),
		app.Module,
	}

	// the TUI owns the terminal, so logs are discarded while it runs
	if opts.Type == cli.CommandTUI {
		options = append(options, fx.Decorate(func(logger.Logger) logger.Logger {
			return logger.NewLoggerWithOutput(cfg, io.Discard)
		}))
	}

	return fx.New(options...)
}

// createFxLogger returns an FX logger based on the config
func createFxLogger(cfg *config.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel {
			return &fxevent.ConsoleLogger{W: os.Stderr}
		}

		return fxevent.NopLogger
	}
}

//go:generate mockgen -source=cli.go -destination=cli_mock.go -package=cli
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"

	"logviewer/internal/app/api"
	"logviewer/internal/app/errors"
	"logviewer/internal/app/generator"
	"logviewer/internal/app/logbook"
	"logviewer/internal/app/render"
	"logviewer/internal/app/ui/wire"
	"logviewer/internal/app/watcher"
	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

// CLI defines the interface for cli operations
type CLI interface {
	Execute(ctx context.Context) (int, error)
}

// Params contains the dependencies of the command handlers
type Params struct {
	fx.In

	Options   *Options
	Config    *config.Config
	Client    api.Client
	Formatter *logbook.Formatter
	Renderer  render.Renderer
	Generator generator.Generator
	Watcher   watcher.Watcher
	UI        wire.UI
	Logger    logger.Logger
}

// cli represents the command-line interface for the application
type cli struct {
	opts      *Options
	cfg       *config.Config
	client    api.Client
	formatter *logbook.Formatter
	renderer  render.Renderer
	generator generator.Generator
	watcher   watcher.Watcher
	ui        wire.UI
	out       io.Writer
	errOut    io.Writer
	log       logger.Logger
}

// NewCLI creates a new cli instance
func NewCLI(p Params) CLI {
	return &cli{
		opts:      p.Options,
		cfg:       p.Config,
		client:    p.Client,
		formatter: p.Formatter,
		renderer:  p.Renderer,
		generator: p.Generator,
		watcher:   p.Watcher,
		ui:        p.UI,
		out:       os.Stdout,
		errOut:    os.Stderr,
		log:       p.Logger,
	}
}

// Execute runs the parsed command and returns the process exit code
func (c *cli) Execute(ctx context.Context) (int, error) {
	switch c.opts.Type {
	case CommandTUI:
		return c.handleTUI(ctx)
	case CommandUsers:
		return c.handleUsers(ctx)
	case CommandLogs:
		return c.handleLogs(ctx)
	case CommandInit:
		return c.handleInit()
	case CommandConfig:
		return c.handleConfig()
	case CommandVersion:
		return c.handleVersion()
	case CommandHelp:
		return c.handleHelp()
	default:
		return c.handleUnknown()
	}
}

// handleTUI runs the interactive viewer with config hot reload
func (c *cli) handleTUI(ctx context.Context) (int, error) {
	c.log.Debug().Msg("Starting interactive viewer")

	if err := c.watcher.Start(ctx); err != nil {
		c.log.Warn().Err(err).Msg("Config watching unavailable")
	}
	defer c.watcher.Close()

	p, err := c.ui(ctx)
	if err != nil {
		return c.fail(err, "Failed to create UI")
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return c.fail(err, "UI exited with error")
	}

	return 0, nil
}

// handleUsers prints one user ID per line
func (c *cli) handleUsers(ctx context.Context) (int, error) {
	c.log.Debug().Msg("Fetching user IDs")

	ids, err := c.client.UserIDs(ctx, c.credentials())
	if err != nil {
		return c.fail(err, "Failed to fetch user IDs")
	}

	for _, id := range ids {
		fmt.Fprintln(c.out, id)
	}

	return 0, nil
}

// handleLogs prints the grouped table or writes the HTML export
func (c *cli) handleLogs(ctx context.Context) (int, error) {
	userID := logbook.UserID(c.opts.UserID)
	if userID == "" {
		return c.fail(errors.ErrUserIDRequired, "Missing user ID")
	}

	c.log.Debug().Msgf("Fetching logs for user %s", userID)

	entries, err := c.client.Logs(ctx, c.credentials(), userID)
	if err != nil {
		return c.fail(err, "Failed to fetch logs")
	}

	rows := logbook.Render(entries, c.formatter)

	if c.opts.HTML != "" {
		if err := c.renderer.Export(c.opts.HTML, userID, rows); err != nil {
			return c.fail(err, "Failed to export logs")
		}

		fmt.Fprintf(c.out, "Exported %d entries to %s\n", len(entries), c.opts.HTML)

		return 0, nil
	}

	if len(entries) == 0 {
		fmt.Fprintf(c.out, "No log entries for user %s\n", userID)
		return 0, nil
	}

	if err := c.renderer.Table(c.out, rows, c.opts.Full); err != nil {
		return c.fail(err, "Failed to print logs")
	}

	return 0, nil
}

// handleInit writes logviewer.yaml from the effective configuration
func (c *cli) handleInit() (int, error) {
	c.log.Debug().Msg("Generating config file")

	if err := c.generator.Generate(generator.OptionsFrom(c.cfg), c.opts.Force, c.opts.DryRun); err != nil {
		return c.fail(err, "Failed to generate config")
	}

	if !c.opts.DryRun {
		fmt.Fprintf(c.out, "Created %s\n", config.ConfigFileName)
	}

	return 0, nil
}

// handleConfig prints the effective configuration with the password redacted
func (c *cli) handleConfig() (int, error) {
	c.log.Debug().Msg("Dumping configuration")

	data, err := c.cfg.Dump()
	if err != nil {
		return c.fail(err, "Failed to dump config")
	}

	source := "built-in defaults"
	if c.cfg.Path != "" {
		source = c.cfg.Path
	}

	fmt.Fprintf(c.out, "# source: %s\n%s", source, data)

	return 0, nil
}

// handleVersion displays version information
func (c *cli) handleVersion() (int, error) {
	c.log.Debug().Msg("Displaying version information")
	fmt.Fprintf(c.out, "%s (%s)\n", config.Version, config.AppName)

	return 0, nil
}

// handleHelp displays help information
func (c *cli) handleHelp() (int, error) {
	c.log.Debug().Msg("Displaying help information")
	fmt.Fprint(c.out, renderHelp())

	return 0, nil
}

// handleUnknown handles unknown commands
func (c *cli) handleUnknown() (int, error) {
	c.log.Debug().Msg("Unknown command")
	fmt.Fprintln(c.errOut, RenderError(errors.ErrUnknownCommand.Error()))
	fmt.Fprintln(c.errOut, RenderHint())

	return 1, errors.ErrUnknownCommand
}

// fail prints the user notification and maps err to exit code 1
func (c *cli) fail(err error, msg string) (int, error) {
	c.log.Error().Err(err).Msg(msg)
	fmt.Fprintln(c.errOut, RenderError(notification(err)))

	return 1, err
}

// credentials prefers flags over configured credentials
func (c *cli) credentials() logbook.Credentials {
	creds := logbook.Credentials{Username: c.cfg.Auth.Username, Password: c.cfg.Auth.Password}

	if c.opts.Username != "" {
		creds.Username = c.opts.Username
	}

	if c.opts.Password != "" {
		creds.Password = c.opts.Password
	}

	return creds
}

// notification uses the request notification text for API failures and the raw error otherwise
func notification(err error) string {
	if errors.IsUserFacing(err) || errors.Is(err, errors.ErrMalformedResponse) || errors.Is(err, errors.ErrRequestFailed) {
		return errors.Notification(err)
	}

	return err.Error()
}

package generator

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/spf13/afero"

	"logviewer/internal/app/errors"
	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

const templatePath = "templates/logviewer.yaml.tmpl"

//go:embed templates/logviewer.yaml.tmpl
var templateFS embed.FS

// Options contains the values written into logviewer.yaml
type Options struct {
	ServerURL   string
	Timeout     time.Duration
	Username    string
	Timezone    string
	Clamp       int
	LogLevel    string
	LogFormat   string
	Environment string
	Watch       bool
	Debounce    time.Duration
}

// DefaultOptions returns the built-in configuration defaults
func DefaultOptions() Options {
	return OptionsFrom(config.DefaultConfig())
}

// OptionsFrom takes generation values from an existing configuration
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		ServerURL:   cfg.Server.URL,
		Timeout:     cfg.Server.Timeout,
		Username:    cfg.Auth.Username,
		Timezone:    cfg.Display.Timezone,
		Clamp:       cfg.Display.Clamp,
		LogLevel:    cfg.Logging.Level,
		LogFormat:   cfg.Logging.Format,
		Environment: cfg.Telemetry.Environment,
		Watch:       cfg.Watch.Enabled,
		Debounce:    cfg.Watch.Debounce,
	}
}

//go:generate mockgen -source=generator.go -destination=generator_mock.go -package=generator

// Generator defines the interface for generating logviewer.yaml
type Generator interface {
	Generate(opts Options, force bool, dryRun bool) error
}

type generator struct {
	fs  afero.Fs
	out io.Writer
	log logger.Logger
}

// NewGenerator creates a new generator instance
func NewGenerator(fs afero.Fs, log logger.Logger) Generator {
	return &generator{
		fs:  fs,
		out: os.Stdout,
		log: log,
	}
}

// Generate creates a logviewer.yaml file from the template
func (g *generator) Generate(opts Options, force bool, dryRun bool) error {
	fileName := config.ConfigFileName

	if !dryRun && !force {
		exists, err := afero.Exists(g.fs, fileName)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", fileName, err)
		}

		if exists {
			return fmt.Errorf("%w: %s", errors.ErrConfigAlreadyExist, fileName)
		}
	}

	content, err := render(opts)
	if err != nil {
		return err
	}

	if dryRun {
		_, err := g.out.Write(content)
		return err
	}

	if err := afero.WriteFile(g.fs, fileName, content, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	g.log.Info().Msgf("Generated %s", fileName)

	return nil
}

func render(opts Options) ([]byte, error) {
	tmplContent, err := templateFS.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	tmpl, err := template.New(config.ConfigFileName).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, opts); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}

package telemetry

import (
	"github.com/getsentry/sentry-go"

	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

//go:generate mockgen -source=telemetry.go -destination=telemetry_mock.go -package=telemetry

// Reporter forwards unexpected failures to an error tracker
type Reporter interface {
	Capture(err error, tags map[string]string)
	Flush()
}

// sentryReporter sends events through a dedicated sentry hub
type sentryReporter struct {
	hub *sentry.Hub
	log logger.Logger
}

// NewReporter creates a sentry reporter, or a no-op one when no DSN is configured
func NewReporter(cfg *config.Config, log logger.Logger) Reporter {
	if cfg.Telemetry.DSN == "" {
		return NoOp()
	}

	reporter, err := newReporter(sentry.ClientOptions{
		Dsn:         cfg.Telemetry.DSN,
		Environment: cfg.Telemetry.Environment,
		Release:     config.AppName + "@" + config.Version,
	}, log)
	if err != nil {
		log.Warn().Err(err).Msg("Telemetry disabled")
		return NoOp()
	}

	return reporter
}

func newReporter(opts sentry.ClientOptions, log logger.Logger) (*sentryReporter, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, err
	}

	return &sentryReporter{
		hub: sentry.NewHub(client, sentry.NewScope()),
		log: log,
	}, nil
}

// Capture reports err with the given tags
func (r *sentryReporter) Capture(err error, tags map[string]string) {
	if err == nil {
		return
	}

	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		r.hub.CaptureException(err)
	})

	r.log.Debug().Err(err).Msg("Reported error")
}

// Flush waits for queued events to be delivered
func (r *sentryReporter) Flush() {
	if !r.hub.Flush(config.FlushTimeout) {
		r.log.Warn().Msg("Timed out flushing telemetry events")
	}
}

// NoOp returns a reporter that drops everything
func NoOp() Reporter {
	return noOpReporter{}
}

type noOpReporter struct{}

func (noOpReporter) Capture(error, map[string]string) {}
func (noOpReporter) Flush()                           {}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"logviewer/internal/app/bus"
	"logviewer/internal/app/errors"
	"logviewer/internal/app/logbook"
	"logviewer/internal/app/telemetry"
	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

//go:generate mockgen -source=client.go -destination=client_mock.go -package=api

// Client talks to the developer log API
type Client interface {
	UserIDs(ctx context.Context, creds logbook.Credentials) ([]logbook.UserID, error)
	Logs(ctx context.Context, creds logbook.Credentials, userID logbook.UserID) ([]logbook.LogEntry, error)
}

// client implements Client on top of resty
type client struct {
	http     *resty.Client
	bus      bus.Bus
	reporter telemetry.Reporter
	log      logger.Logger
}

// NewClient creates a log API client for the configured server
func NewClient(cfg *config.Config, b bus.Bus, reporter telemetry.Reporter, log logger.Logger) Client {
	return newClient(resty.New(), cfg, b, reporter, log)
}

func newClient(rc *resty.Client, cfg *config.Config, b bus.Bus, reporter telemetry.Reporter, log logger.Logger) *client {
	rc.SetBaseURL(cfg.Server.URL).
		SetTimeout(cfg.Server.Timeout).
		SetHeader(config.HeaderAccept, config.MediaTypeJSON)

	return &client{
		http:     rc,
		bus:      b,
		reporter: reporter,
		log:      log,
	}
}

// UserIDs returns the user IDs the credentials may inspect
func (c *client) UserIDs(ctx context.Context, creds logbook.Credentials) ([]logbook.UserID, error) {
	var ids []logbook.UserID

	count, err := c.get(ctx, bus.EndpointUserIDs, config.UserIDsPath, c.request(ctx, creds), "", func(body []byte) (int, error) {
		if err := decode(body, &ids); err != nil {
			return 0, err
		}

		return len(ids), nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Debug().Int("count", count).Msg("Fetched user IDs")

	return ids, nil
}

// Logs returns the log entries of userID
func (c *client) Logs(ctx context.Context, creds logbook.Credentials, userID logbook.UserID) ([]logbook.LogEntry, error) {
	var entries []logbook.LogEntry

	req := c.request(ctx, creds).SetHeader(config.HeaderUserID, userID.String())

	count, err := c.get(ctx, bus.EndpointLogs, config.LogsPath, req, userID.String(), func(body []byte) (int, error) {
		if err := decode(body, &entries); err != nil {
			return 0, err
		}

		return len(entries), nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("user_id", userID.String()).Int("count", count).Msg("Fetched logs")

	return entries, nil
}

// request builds a request carrying the credential headers
func (c *client) request(ctx context.Context, creds logbook.Credentials) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader(config.HeaderUsername, creds.Username).
		SetHeader(config.HeaderPassword, creds.Password)
}

// get sends req and maps the outcome onto the error taxonomy
func (c *client) get(ctx context.Context, endpoint, path string, req *resty.Request, userID string, parse func([]byte) (int, error)) (int, error) {
	c.bus.Publish(bus.Message{
		Type: bus.EventRequestStarted,
		Data: bus.RequestStarted{Endpoint: endpoint, UserID: userID},
	})

	start := time.Now()
	finished := bus.RequestFinished{Endpoint: endpoint, UserID: userID}

	count, err := c.do(req, path, parse, &finished)

	finished.Count = count
	finished.Error = err
	finished.Duration = time.Since(start)

	c.bus.Publish(bus.Message{Type: bus.EventRequestFinished, Data: finished, Critical: true})

	if err != nil && !errors.IsUserFacing(err) && ctx.Err() == nil {
		c.reporter.Capture(err, map[string]string{"endpoint": endpoint})
	}

	return count, err
}

func (c *client) do(req *resty.Request, path string, parse func([]byte) (int, error), finished *bus.RequestFinished) (int, error) {
	resp, err := req.Get(path)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("Request failed")
		return 0, fmt.Errorf("%w: %w", errors.ErrRequestFailed, err)
	}

	finished.Status = resp.StatusCode()

	if resp.StatusCode() == http.StatusUnauthorized {
		c.log.Warn().Str("path", path).Msg("Credentials rejected")
		return 0, errors.ErrUnauthorized
	}

	if !resp.IsSuccess() {
		httpErr := &errors.HTTPError{Status: resp.StatusCode(), StatusText: statusText(resp)}
		c.log.Warn().Str("path", path).Int("status", httpErr.Status).Msg("Unexpected response status")

		return 0, httpErr
	}

	count, err := parse(resp.Body())
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("Malformed response body")
		return 0, err
	}

	return count, nil
}

// decode unmarshals a JSON array body, reporting any failure as a malformed response
func decode(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		if errors.Is(err, errors.ErrMalformedResponse) {
			return err
		}

		return fmt.Errorf("%w: %w", errors.ErrMalformedResponse, err)
	}

	return nil
}

// statusText extracts the reason phrase from the status line
func statusText(resp *resty.Response) string {
	code := strconv.Itoa(resp.StatusCode())
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status(), code))

	if text == "" {
		text = http.StatusText(resp.StatusCode())
	}

	return text
}

package logbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"logviewer/internal/app/errors"
)

// naiveLayouts are accepted for timestamps sent without a zone, read as UTC
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Credentials are resent as headers on every request
type Credentials struct {
	Username string
	Password string
}

// Empty reports whether no username was given
func (c Credentials) Empty() bool {
	return strings.TrimSpace(c.Username) == ""
}

// UserID is an opaque identifier returned by the user lookup
type UserID string

// String returns the textual form
func (u UserID) String() string {
	return string(u)
}

// UnmarshalJSON accepts both JSON strings and numbers
func (u *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: user id: %w", errors.ErrMalformedResponse, err)
		}

		*u = UserID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil || n == "" {
		return fmt.Errorf("%w: user id %s", errors.ErrMalformedResponse, data)
	}

	*u = UserID(n.String())

	return nil
}

// LogEntry is a single record returned by the log query
type LogEntry struct {
	Time    time.Time
	Level   string
	Message string
}

type wireEntry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// UnmarshalJSON decodes {time, level, message}
func (e *LogEntry) UnmarshalJSON(data []byte) error {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: log entry: %w", errors.ErrMalformedResponse, err)
	}

	ts, err := ParseTime(w.Time)
	if err != nil {
		return err
	}

	*e = LogEntry{Time: ts, Level: w.Level, Message: w.Message}

	return nil
}

// MarshalJSON encodes the entry in the same shape the API sends
func (e LogEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEntry{
		Time:    e.Time.Format(time.RFC3339Nano),
		Level:   e.Level,
		Message: e.Message,
	})
}

// ParseTime parses an RFC 3339 timestamp or a naive ISO 8601 one in UTC
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}

	for _, layout := range naiveLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: time '%s'", errors.ErrMalformedResponse, value)
}

package logbook

import (
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"logviewer/internal/config"
)

// Formatter turns timestamps into display strings for the configured time zone
type Formatter struct {
	mu    sync.RWMutex
	loc   *time.Location
	clamp int
	now   func() time.Time
}

// NewFormatter creates a formatter from the display settings
func NewFormatter(cfg *config.Config) (*Formatter, error) {
	f := &Formatter{now: time.Now}
	if err := f.Update(cfg.Display); err != nil {
		return nil, err
	}

	return f, nil
}

// NewFormatterIn creates a formatter for an explicit location
func NewFormatterIn(loc *time.Location, clamp int) *Formatter {
	if clamp < 1 {
		clamp = config.DefaultClamp
	}

	return &Formatter{loc: loc, clamp: clamp, now: time.Now}
}

// Update swaps the display settings, used on config reload
func (f *Formatter) Update(display config.Display) error {
	loc, err := display.Location()
	if err != nil {
		return err
	}

	clamp := display.Clamp
	if clamp < 1 {
		clamp = config.DefaultClamp
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.loc = loc
	f.clamp = clamp

	return nil
}

// Location returns the display time zone
func (f *Formatter) Location() *time.Location {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.loc
}

// Clamp returns how many message lines a collapsed row shows
func (f *Formatter) Clamp() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.clamp
}

// Date formats the calendar day used as group key
func (f *Formatter) Date(t time.Time) string {
	return t.In(f.Location()).Format(config.DateLayout)
}

// Time formats the time of day
func (f *Formatter) Time(t time.Time) string {
	return t.In(f.Location()).Format(config.TimeLayout)
}

// Stamp formats date and time together
func (f *Formatter) Stamp(t time.Time) string {
	return f.Date(t) + " " + f.Time(t)
}

// SetClock replaces the time source used for relative ages
func (f *Formatter) SetClock(now func() time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = now
}

// Now returns the current time of the formatter clock
func (f *Formatter) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.now()
}

// Age returns a relative description such as "3 hours ago"
func (f *Formatter) Age(t time.Time) string {
	return humanize.RelTime(t, f.Now(), "ago", "from now")
}

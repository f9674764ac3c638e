package session

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"logviewer/internal/app/bus"
	"logviewer/internal/app/errors"
	"logviewer/internal/app/logbook"
	"logviewer/internal/config/logger"
)

// RequestKind identifies which endpoint a request targets
type RequestKind int

const (
	Authenticate RequestKind = iota
	FetchLogs
)

// Request describes a network call the caller must perform and report back
type Request struct {
	Seq         uint64
	Kind        RequestKind
	Credentials logbook.Credentials
	UserID      logbook.UserID
}

// Session is the explicit application state behind every screen
type Session struct {
	phase     *fsm.FSM
	formatter *logbook.Formatter
	bus       bus.Bus
	log       logger.Logger

	creds    logbook.Credentials
	userIDs  []logbook.UserID
	selected int

	viewed   logbook.UserID
	entries  []logbook.LogEntry
	rows     []logbook.Row
	expanded []bool
	// refetch is set while a fetch started from the log table is in flight
	refetch  bool

	alert   string
	seq     uint64
	pending uint64
}

// New creates a session in the login phase
func New(formatter *logbook.Formatter, b bus.Bus, log logger.Logger) *Session {
	return &Session{
		phase:     newPhaseFSM(b, log),
		formatter: formatter,
		bus:       b,
		log:       log,
	}
}

// Phase returns the current phase
func (s *Session) Phase() string {
	return s.phase.Current()
}

// Credentials returns the credentials of the last submit
func (s *Session) Credentials() logbook.Credentials {
	return s.creds
}

// UserIDs returns the selectable user IDs in received order
func (s *Session) UserIDs() []logbook.UserID {
	return s.userIDs
}

// SelectedIndex returns the index of the selected user ID
func (s *Session) SelectedIndex() int {
	return s.selected
}

// Selected returns the selected user ID
func (s *Session) Selected() (logbook.UserID, bool) {
	if s.selected < 0 || s.selected >= len(s.userIDs) {
		return "", false
	}

	return s.userIDs[s.selected], true
}

// Viewed returns the user whose logs are shown
func (s *Session) Viewed() logbook.UserID {
	return s.viewed
}

// Rows returns the rendered log table
func (s *Session) Rows() []logbook.Row {
	return s.rows
}

// Expanded reports whether the entry row at i shows its full message
func (s *Session) Expanded(i int) bool {
	return i >= 0 && i < len(s.expanded) && s.expanded[i]
}

// Alert returns the active notification, empty when none
func (s *Session) Alert() string {
	return s.alert
}

// Pending reports whether a request is awaiting its response
func (s *Session) Pending() bool {
	return s.pending != 0
}

// Submit starts authentication with creds
func (s *Session) Submit(creds logbook.Credentials) (Request, error) {
	if err := s.fire(EventSubmit); err != nil {
		return Request{}, err
	}

	s.creds = creds

	return s.issue(Authenticate, ""), nil
}

// ApplyUserIDs handles the authenticate response, returns false for stale responses
func (s *Session) ApplyUserIDs(seq uint64, ids []logbook.UserID, err error) bool {
	if !s.accept(seq) {
		return false
	}

	if err != nil {
		s.raise(err)
		s.fireLogged(EventRejected)

		return true
	}

	s.populateSelection(ids)
	s.fireLogged(EventAuthenticated)

	return true
}

// populateSelection replaces the options with ids and selects the first
func (s *Session) populateSelection(ids []logbook.UserID) {
	s.userIDs = make([]logbook.UserID, len(ids))
	copy(s.userIDs, ids)

	s.selected = 0
}

// Select picks the user ID at index i
func (s *Session) Select(i int) error {
	if i < 0 || i >= len(s.userIDs) {
		return fmt.Errorf("%w: index %d", errors.ErrNoUserSelected, i)
	}

	s.selected = i

	return nil
}

// MoveSelection moves the selection by delta, clamped to the list
func (s *Session) MoveSelection(delta int) {
	if len(s.userIDs) == 0 {
		return
	}

	s.selected = max(0, min(len(s.userIDs)-1, s.selected+delta))
}

// ViewLogs starts fetching logs of the selected user
func (s *Session) ViewLogs() (Request, error) {
	userID, ok := s.Selected()
	if !ok {
		return Request{}, errors.ErrNoUserSelected
	}

	from := s.Phase()
	if err := s.fire(EventFetch); err != nil {
		return Request{}, err
	}

	if from != Loading {
		s.refetch = from == Viewing
	}

	return s.issue(FetchLogs, userID), nil
}

// ApplyLogs handles the fetchLogs response, returns false for stale responses
func (s *Session) ApplyLogs(seq uint64, userID logbook.UserID, entries []logbook.LogEntry, err error) bool {
	if !s.accept(seq) {
		return false
	}

	if err != nil {
		s.raise(err)

		if s.refetch {
			s.fireLogged(EventRestore)
		} else {
			s.fireLogged(EventFailed)
		}

		return true
	}

	s.viewed = userID
	s.entries = entries
	s.render()
	s.fireLogged(EventLoaded)

	return true
}

// Rerender rebuilds rows from the last fetched entries, used after display settings change
func (s *Session) Rerender() {
	if s.Phase() != Viewing {
		return
	}

	s.render()
}

// Toggle flips the expanded state of the entry row at i, header rows are ignored
func (s *Session) Toggle(i int) bool {
	if i < 0 || i >= len(s.rows) || s.rows[i].IsHeader() {
		return false
	}

	s.expanded[i] = !s.expanded[i]

	return true
}

// DismissAlert clears the active notification
func (s *Session) DismissAlert() {
	s.alert = ""
}

// Back leaves the log table for the user selection
func (s *Session) Back() error {
	return s.fire(EventBack)
}

// Logout discards every fetched value and returns to the login form
func (s *Session) Logout() error {
	if err := s.fire(EventLogout); err != nil {
		return err
	}

	s.creds.Password = ""
	s.userIDs = nil
	s.selected = 0
	s.viewed = ""
	s.entries = nil
	s.rows = nil
	s.expanded = nil
	s.refetch = false
	s.alert = ""
	s.pending = 0

	return nil
}

func (s *Session) render() {
	s.rows = logbook.Render(s.entries, s.formatter)
	s.expanded = make([]bool, len(s.rows))
}

func (s *Session) issue(kind RequestKind, userID logbook.UserID) Request {
	s.seq++
	s.pending = s.seq

	return Request{Seq: s.seq, Kind: kind, Credentials: s.creds, UserID: userID}
}

// accept reports whether seq answers the latest issued request
func (s *Session) accept(seq uint64) bool {
	if seq == 0 || seq != s.pending {
		s.log.Debug().Uint64("seq", seq).Uint64("pending", s.pending).Msg("Discarding stale response")
		return false
	}

	s.pending = 0

	return true
}

func (s *Session) raise(err error) {
	s.alert = errors.Notification(err)

	s.bus.Publish(bus.Message{
		Type: bus.EventAlertRaised,
		Data: bus.AlertRaised{Text: s.alert},
	})
}

func (s *Session) fire(event string) error {
	err := s.phase.Event(context.Background(), event)

	var noTransition fsm.NoTransitionError
	if err == nil || errors.As(err, &noTransition) {
		return nil
	}

	return fmt.Errorf("%w: %s in phase %s", errors.ErrInvalidTransition, event, s.Phase())
}

func (s *Session) fireLogged(event string) {
	if err := s.fire(event); err != nil {
		s.log.Warn().Err(err).Msg("Phase transition rejected")
	}
}

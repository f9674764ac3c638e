package session

import (
	"context"

	"github.com/looplab/fsm"

	"logviewer/internal/app/bus"
	"logviewer/internal/config/logger"
)

// FSM states
const (
	Login          = "login"
	Authenticating = "authenticating"
	Selecting      = "selecting"
	Loading        = "loading"
	Viewing        = "viewing"
)

// FSM events
const (
	EventSubmit        = "submit"
	EventAuthenticated = "authenticated"
	EventRejected      = "rejected"
	EventFetch         = "fetch"
	EventLoaded        = "loaded"
	EventFailed        = "failed"
	EventRestore       = "restore"
	EventBack          = "back"
	EventLogout        = "logout"
)

// newPhaseFSM creates the state machine driving screen visibility
func newPhaseFSM(b bus.Bus, log logger.Logger) *fsm.FSM {
	return fsm.NewFSM(
		Login,
		fsm.Events{
			{Name: EventSubmit, Src: []string{Login, Authenticating}, Dst: Authenticating},
			{Name: EventAuthenticated, Src: []string{Authenticating}, Dst: Selecting},
			{Name: EventRejected, Src: []string{Authenticating}, Dst: Login},
			{Name: EventFetch, Src: []string{Selecting, Loading, Viewing}, Dst: Loading},
			{Name: EventLoaded, Src: []string{Loading}, Dst: Viewing},
			{Name: EventFailed, Src: []string{Loading}, Dst: Selecting},
			{Name: EventRestore, Src: []string{Loading}, Dst: Viewing},
			{Name: EventBack, Src: []string{Viewing}, Dst: Selecting},
			{Name: EventLogout, Src: []string{Authenticating, Selecting, Loading, Viewing}, Dst: Login},
		},
		fsm.Callbacks{
			"enter_state": func(ctx context.Context, e *fsm.Event) {
				log.Debug().Msgf("PHASE %s → %s (trigger: %s)", e.Src, e.Dst, e.Event)

				b.Publish(bus.Message{
					Type: bus.EventPhaseChanged,
					Data: bus.PhaseChanged{From: e.Src, To: e.Dst},
				})
			},
		},
	)
}

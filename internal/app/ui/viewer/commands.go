package viewer

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"logviewer/internal/app/api"
	"logviewer/internal/app/bus"
	"logviewer/internal/app/logbook"
	"logviewer/internal/app/monitor"
	"logviewer/internal/app/session"
	"logviewer/internal/app/ui/components"
)

// userIDsMsg carries the authenticate response
type userIDsMsg struct {
	seq uint64
	ids []logbook.UserID
	err error
}

// logsMsg carries the fetchLogs response
type logsMsg struct {
	seq     uint64
	userID  logbook.UserID
	entries []logbook.LogEntry
	err     error
}

// statsUpdateMsg carries the viewer's own resource usage
type statsUpdateMsg struct {
	CPU float64
	MEM float64
	err error
}

// requestCmd performs the network call described by req off the event loop
func requestCmd(ctx context.Context, client api.Client, req session.Request) tea.Cmd {
	switch req.Kind {
	case session.Authenticate:
		return func() tea.Msg {
			ids, err := client.UserIDs(ctx, req.Credentials)
			return userIDsMsg{seq: req.Seq, ids: ids, err: err}
		}
	case session.FetchLogs:
		return func() tea.Msg {
			entries, err := client.Logs(ctx, req.Credentials, req.UserID)
			return logsMsg{seq: req.Seq, userID: req.UserID, entries: entries, err: err}
		}
	}

	return nil
}

// waitForMsgCmd waits for the next bus message
func waitForMsgCmd(ch <-chan bus.Message) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return channelClosedMsg{}
		}

		return msgMsg(msg)
	}
}

// tickCmd schedules the next UI tick
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// statsWorkerCmd schedules a single stats collection of the viewer process
func statsWorkerCmd(ctx context.Context, mon monitor.Monitor) tea.Cmd {
	return tea.Tick(components.StatsPollingInterval, func(t time.Time) tea.Msg {
		callCtx, cancel := context.WithTimeout(ctx, components.StatsCallTimeout)
		defer cancel()

		stats, err := mon.Self(callCtx)

		return statsUpdateMsg{CPU: stats.CPU, MEM: stats.MEM, err: err}
	})
}

// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stagehandapp/stagehand/internal/api"
	"github.com/stagehandapp/stagehand/internal/cache"
	"github.com/stagehandapp/stagehand/internal/event"
	"github.com/stagehandapp/stagehand/internal/schedule"
)

// ScheduleLoadedMsg is sent when a schedule payload has been fetched and
// normalized.
type ScheduleLoadedMsg struct {
	Schedule *event.Schedule
	// FromSnapshot marks data served from the local snapshot store while
	// the backend was unreachable.
	FromSnapshot bool
	FetchedAt    time.Time
}

// CompletionMsg carries the result of a dispatched mutation back to the UI
// loop for reconciliation.
type CompletionMsg struct {
	Completion schedule.Completion
}

// RoomUpdatedMsg is sent after a room mutation; the schedule needs a reload
// to pick up the new column set.
type RoomUpdatedMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadSchedule fetches the schedule for an event and snapshots the raw
// payload. When the backend is unreachable it falls back to the last
// snapshot so the grid still renders.
func LoadSchedule(client *api.Client, store *cache.Store, eventID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		sched, raw, err := client.FetchSchedule(ctx, eventID)
		if err == nil {
			if store != nil {
				_ = store.PutSchedule(ctx, eventID, raw)
			}
			return ScheduleLoadedMsg{Schedule: sched, FetchedAt: time.Now()}
		}

		if store != nil {
			if payload, fetchedAt, snapErr := store.GetSchedule(ctx, eventID); snapErr == nil {
				if snap, parseErr := event.ParseSchedule(payload); parseErr == nil {
					return ScheduleLoadedMsg{Schedule: snap, FromSnapshot: true, FetchedAt: fetchedAt}
				}
			}
		}
		return ErrMsg{Err: err}
	}
}

// CommitSchedule executes a prepared gesture commit off the UI loop.
func CommitSchedule(d *schedule.Dispatcher, t schedule.Ticket, ch event.ScheduleChange) tea.Cmd {
	return func() tea.Msg {
		return CompletionMsg{Completion: d.ExecuteSchedule(context.Background(), t, ch)}
	}
}

// CommitContent executes a prepared content edit.
func CommitContent(d *schedule.Dispatcher, t schedule.Ticket, ch event.ContentChange) tea.Cmd {
	return func() tea.Msg {
		return CompletionMsg{Completion: d.ExecuteContent(context.Background(), t, ch)}
	}
}

// CreateSession executes a session creation.
func CreateSession(d *schedule.Dispatcher, draft event.SessionDraft) tea.Cmd {
	return func() tea.Msg {
		if err := draft.Validate(); err != nil {
			return ErrMsg{Err: err}
		}
		return CompletionMsg{Completion: d.ExecuteCreate(context.Background(), draft)}
	}
}

// DeleteSession executes a session deletion.
func DeleteSession(d *schedule.Dispatcher, sessionID string) tea.Cmd {
	return func() tea.Msg {
		return CompletionMsg{Completion: d.ExecuteDelete(context.Background(), sessionID)}
	}
}

// ToggleRoomBookable flips a room's booking policy, then asks for a reload.
func ToggleRoomBookable(client *api.Client, room *event.Room) tea.Cmd {
	return func() tea.Msg {
		if room == nil {
			return ErrMsg{Err: errors.New("no room under cursor")}
		}
		if err := client.SetRoomBookable(context.Background(), room.ID, room.NotBookable); err != nil {
			return ErrMsg{Err: err}
		}
		return RoomUpdatedMsg{}
	}
}

// Status returns a command that shows a temporary status message.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

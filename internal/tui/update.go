package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stagehandapp/stagehand/internal/tui/commands"
)

const statusLifetime = 4 * time.Second

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		scroll := m.layout.Scroll
		m.layout = computeLayout(m.width, m.height, len(m.rooms), m.rng, m.metrics)
		m.layout.Scroll = m.layout.ClampScroll(scroll)
		return m, nil

	case tea.KeyMsg:
		LogKeyPress(msg)
		if m.mode == ModeModal {
			return m.handleModalKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		LogMouse(msg)
		return m.handleMouse(msg)

	case commands.ScheduleLoadedMsg:
		m.loading = false
		m.offline = msg.FromSnapshot
		m.fetchedAt = msg.FetchedAt
		m.setSchedule(msg.Schedule)
		if msg.FromSnapshot {
			return m, m.setStatus("offline: showing cached schedule", true)
		}
		return m, nil

	case commands.CompletionMsg:
		return m.handleCompletion(msg)

	case commands.RoomUpdatedMsg:
		return m, tea.Batch(
			commands.LoadSchedule(m.client, m.store, m.eventID),
			m.setStatus("room updated", false),
		)

	case commands.ErrMsg:
		m.loading = false
		return m, m.setStatus(msg.Err.Error(), true)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		if time.Since(m.statusTime) >= statusLifetime {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}

// handleCompletion reconciles a finished remote command. Gesture failures
// are reported but leave the grid alone; failed explicit actions force a
// refetch so the local set cannot drift from the store.
func (m *Model) handleCompletion(msg commands.CompletionMsg) (tea.Model, tea.Cmd) {
	c := msg.Completion
	outcome := m.dispatcher.Apply(c)

	Debug("dispatch", "completion", map[string]any{
		"kind":       int(c.Kind),
		"session":    c.Ticket.SessionID,
		"merged":     outcome.Merged,
		"invalidate": outcome.Invalidate,
	})

	if outcome.Invalidate {
		if m.store != nil {
			_ = m.store.DeleteSchedule(context.Background(), m.eventID)
		}
		return m, tea.Batch(
			commands.LoadSchedule(m.client, m.store, m.eventID),
			m.setStatus("update failed: "+c.Err.Error(), true),
		)
	}
	if outcome.Err != nil {
		return m, m.setStatus("schedule change rejected: "+outcome.Err.Error(), true)
	}
	if outcome.Merged {
		m.refreshRange()
	}
	return m, nil
}

// setStatus records a transient status line and schedules its expiry.
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusTime = time.Now()
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

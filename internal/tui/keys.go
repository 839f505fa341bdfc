package tui

import (
	"sort"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stagehandapp/stagehand/internal/event"
	"github.com/stagehandapp/stagehand/internal/schedule"
	"github.com/stagehandapp/stagehand/internal/tui/commands"
)

// handleKey handles key presses in normal mode.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.engine.Active() != "" {
			m.engine.Cancel()
			m.previewActive = false
			return m, nil
		}
		m.selectedID = ""
		return m, nil

	case "r":
		m.loading = true
		return m, commands.LoadSchedule(m.client, m.store, m.eventID)

	case "up", "k":
		m.moveSelection(0, -1)
		m.scrollToSelection()
		return m, nil
	case "down", "j":
		m.moveSelection(0, 1)
		m.scrollToSelection()
		return m, nil
	case "left", "h":
		m.moveSelection(-1, 0)
		m.scrollToSelection()
		return m, nil
	case "right", "l":
		m.moveSelection(1, 0)
		m.scrollToSelection()
		return m, nil

	case "pgup":
		m.layout.Scroll = m.layout.ClampScroll(m.layout.Scroll - m.layout.GridRows)
		return m, nil
	case "pgdown":
		m.layout.Scroll = m.layout.ClampScroll(m.layout.Scroll + m.layout.GridRows)
		return m, nil

	case "enter":
		if s := m.selected(); s != nil {
			m.openDetail(s)
		}
		return m, nil

	case "n":
		return m.newSessionDraft()

	case "e":
		if s := m.selected(); s != nil {
			m.openEditContent(s)
		}
		return m, nil

	case "d":
		if s := m.selected(); s != nil {
			m.openConfirmDelete(s)
		}
		return m, nil

	case "y":
		if s := m.selected(); s != nil {
			if err := clipboard.WriteAll(s.ID); err != nil {
				return m, m.setStatus("clipboard: "+err.Error(), true)
			}
			return m, m.setStatus("copied session id", false)
		}
		return m, nil

	case "b":
		if s := m.selected(); s != nil {
			if i := schedule.RoomIndex(m.rooms, s.RoomID); i >= 0 {
				return m, commands.ToggleRoomBookable(m.client, m.rooms[i])
			}
		}
		return m, nil
	}

	return m, nil
}

// newSessionDraft opens the creation form anchored to the selected session's
// room, falling back to the first column, at the top of the visible range.
func (m *Model) newSessionDraft() (tea.Model, tea.Cmd) {
	if len(m.rooms) == 0 {
		return m, m.setStatus("no rooms to schedule into", true)
	}
	roomID := m.rooms[0].ID
	if s := m.selected(); s != nil {
		roomID = s.RoomID
	}
	m.openSessionForm(m.metrics.DraftAt(roomID, 0, m.rng))
	return m, nil
}

// moveSelection steps the keyboard selection. Horizontal steps jump to the
// session in the neighboring room column whose start is closest to the
// current one; vertical steps walk the room's own timeline.
func (m *Model) moveSelection(dx, dy int) {
	cur := m.selected()
	if cur == nil {
		if first := m.firstSession(); first != nil {
			m.selectedID = first.ID
		}
		return
	}

	if dx != 0 {
		col := schedule.RoomIndex(m.rooms, cur.RoomID)
		for c := col + dx; c >= 0 && c < len(m.rooms); c += dx {
			if s := m.nearestInRoom(m.rooms[c].ID, cur.StartsAt); s != nil {
				m.selectedID = s.ID
				return
			}
		}
		return
	}

	line := m.roomTimeline(cur.RoomID)
	for i, s := range line {
		if s.ID == cur.ID {
			j := i + dy
			if j >= 0 && j < len(line) {
				m.selectedID = line[j].ID
			}
			return
		}
	}
}

// scrollToSelection keeps the selected session visible.
func (m *Model) scrollToSelection() {
	s := m.selected()
	if s == nil {
		return
	}
	start, end := m.rng.SessionMinutes(s)
	sr, er := m.layout.sessionRows(start, end)
	if sr < m.layout.Scroll {
		m.layout.Scroll = m.layout.ClampScroll(sr)
	} else if er > m.layout.Scroll+m.layout.GridRows {
		m.layout.Scroll = m.layout.ClampScroll(er - m.layout.GridRows)
	}
}

func (m *Model) firstSession() *event.Session {
	var best *event.Session
	for _, s := range m.cache.Sessions() {
		if best == nil || s.StartsAt.Before(best.StartsAt) {
			best = s
		}
	}
	return best
}

// roomTimeline returns a room's sessions ordered by start time.
func (m *Model) roomTimeline(roomID string) []*event.Session {
	var line []*event.Session
	for _, s := range m.cache.Sessions() {
		if s.RoomID == roomID {
			line = append(line, s)
		}
	}
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].StartsAt.Before(line[j].StartsAt)
	})
	return line
}

// nearestInRoom finds the session in a room whose start is closest to t.
func (m *Model) nearestInRoom(roomID string, t time.Time) *event.Session {
	var best *event.Session
	var bestDist float64
	for _, s := range m.cache.Sessions() {
		if s.RoomID != roomID {
			continue
		}
		d := s.StartsAt.Sub(t.UTC()).Minutes()
		if d < 0 {
			d = -d
		}
		if best == nil || d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

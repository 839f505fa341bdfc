package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stagehandapp/stagehand/internal/event"
	"github.com/stagehandapp/stagehand/internal/schedule"
	"github.com/stagehandapp/stagehand/internal/tui/commands"
)

// handleMouse routes pointer events. Press over a session block starts a
// gesture, press over empty grid space opens the creation form, motion feeds
// the live preview, release commits through the dispatcher.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.layout.Scroll = m.layout.ClampScroll(m.layout.Scroll - 1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.layout.Scroll = m.layout.ClampScroll(m.layout.Scroll + 1)
		return m, nil
	}

	if m.mode == ModeModal {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return m.mousePress(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		return m.mouseMotion(msg.X, msg.Y)
	case tea.MouseActionRelease:
		return m.mouseRelease()
	}
	return m, nil
}

func (m *Model) mousePress(x, y int) (tea.Model, tea.Cmd) {
	roomIndex, p, ok := m.layout.CellToPointer(x, y)
	if !ok {
		return m, nil
	}
	absRow := m.layout.Scroll + (y - headerRows)

	if s, startRow, endRow := m.sessionAtRow(roomIndex, absRow); s != nil {
		mode := hitZone(startRow, endRow, absRow)
		if err := m.engine.Begin(mode, s, roomIndex, p); err != nil {
			Debug("gesture", "begin rejected", map[string]any{"err": err.Error()})
			return m, nil
		}
		m.selectedID = s.ID
		m.preview = schedule.Preview{SessionID: s.ID}
		m.previewActive = true
		m.hoverActive = false
		Debug("gesture", "begin", map[string]any{
			"session": s.ID, "mode": mode.String(), "room": roomIndex,
		})
		return m, nil
	}

	// Empty grid space: open the creation form prefilled with the snapped
	// placement under the cursor.
	room := m.roomAt(roomIndex)
	if room == nil {
		return m, nil
	}
	m.openSessionForm(m.metrics.DraftAt(room.ID, p.Y, m.rng))
	m.hoverActive = false
	return m, nil
}

func (m *Model) mouseMotion(x, y int) (tea.Model, tea.Cmd) {
	if m.engine.Active() != "" {
		// Keep the gesture tracking even when the pointer leaves the
		// grid body; clamping the cell keeps the preview on screen.
		cx, cy := m.clampToGrid(x, y)
		_, p, ok := m.layout.CellToPointer(cx, cy)
		if !ok {
			return m, nil
		}
		if pv, ok := m.engine.Move(p); ok {
			m.preview = pv
			m.previewActive = true
		}
		return m, nil
	}

	// No gesture: track the hover placement preview over empty cells.
	roomIndex, p, ok := m.layout.CellToPointer(x, y)
	if !ok {
		m.hoverActive = false
		return m, nil
	}
	absRow := m.layout.Scroll + (y - headerRows)
	if s, _, _ := m.sessionAtRow(roomIndex, absRow); s != nil {
		m.hoverActive = false
		return m, nil
	}
	m.hoverRoom = roomIndex
	m.hoverMinute = m.metrics.PlacementMinutes(p.Y, m.rng)
	m.hoverActive = true
	return m, nil
}

func (m *Model) mouseRelease() (tea.Model, tea.Cmd) {
	if m.engine.Active() == "" {
		return m, nil
	}
	upd, ok := m.engine.Finish()
	m.previewActive = false
	if !ok {
		return m, nil
	}
	ticket, ok := m.dispatcher.PrepareSchedule(upd)
	if !ok {
		Debug("gesture", "no-op release", map[string]any{"session": upd.SessionID})
		return m, nil
	}
	Debug("gesture", "commit", map[string]any{
		"session": upd.SessionID, "version": ticket.Version,
	})
	return m, commands.CommitSchedule(m.dispatcher, ticket, upd.Change)
}

// sessionAtRow finds the session occupying the given absolute row in a room
// column, together with its absolute row span.
func (m *Model) sessionAtRow(roomIndex, absRow int) (*event.Session, int, int) {
	room := m.roomAt(roomIndex)
	if room == nil {
		return nil, 0, 0
	}
	for _, s := range m.cache.Sessions() {
		if s.RoomID != room.ID {
			continue
		}
		start, end := m.rng.SessionMinutes(s)
		sr, er := m.layout.sessionRows(start, end)
		if absRow >= sr && absRow < er {
			return s, sr, er
		}
	}
	return nil, 0, 0
}

// clampToGrid bounds a cell coordinate to the grid body.
func (m *Model) clampToGrid(x, y int) (int, int) {
	maxX := gutterWidth + m.layout.NumRooms*m.layout.ColCells - 1
	x = max(gutterWidth, min(x, maxX))
	y = max(headerRows, min(y, headerRows+m.layout.GridRows-1))
	return x, y
}

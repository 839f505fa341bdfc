package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/stagehandapp/stagehand/internal/event"
	"github.com/stagehandapp/stagehand/internal/schedule"
)

// previewSpan is the room column and minute bounds of the active gesture's
// preview, derived from the engine's pixel transform.
type previewSpan struct {
	session   *event.Session
	roomIndex int
	start     float64
	end       float64
}

// currentPreview resolves the active preview transform back into grid
// coordinates for rendering.
func (m *Model) currentPreview() (previewSpan, bool) {
	if !m.previewActive {
		return previewSpan{}, false
	}
	s := m.cache.Get(m.preview.SessionID)
	if s == nil {
		return previewSpan{}, false
	}
	origIdx := schedule.RoomIndex(m.rooms, s.RoomID)
	if origIdx < 0 {
		return previewSpan{}, false
	}
	start, end := m.rng.SessionMinutes(s)
	ppm := m.metrics.PixelsPerMinute

	sp := previewSpan{
		session:   s,
		roomIndex: origIdx + int(math.Round(m.preview.TranslateX/m.metrics.RoomColumnWidth)),
		start:     start + m.preview.TranslateY/ppm,
	}
	sp.end = sp.start + (end - start) + m.preview.HeightDelta/ppm
	return sp, true
}

// renderRoomHeader renders the room name row above the grid body.
func (m *Model) renderRoomHeader() string {
	var b strings.Builder
	b.WriteString(m.styles.TimeGutter.Render(strings.Repeat(" ", gutterWidth)))
	for _, r := range m.rooms {
		name := r.DisplayName()
		style := m.styles.RoomHeader
		if r.NotBookable {
			name = "✕ " + name
			style = m.styles.RoomHeaderBlocked
		}
		b.WriteString(style.Width(m.layout.ColCells).Align(lipgloss.Center).Render(
			ansi.Truncate(name, m.layout.ColCells, "…")))
	}
	return b.String()
}

// renderGridRows renders the grid body, one string per terminal row.
func (m *Model) renderGridRows() []string {
	cols := make([][]string, len(m.rooms))
	for i := range m.rooms {
		cols[i] = m.columnCells(i)
	}

	rows := make([]string, m.layout.GridRows)
	for r := 0; r < m.layout.GridRows; r++ {
		var b strings.Builder
		b.WriteString(m.gutterCell(r))
		for i := range m.rooms {
			b.WriteString(cols[i][r])
		}
		rows[r] = b.String()
	}
	return rows
}

// gutterCell renders the time axis cell for one visible row.
func (m *Model) gutterCell(row int) string {
	minute := m.layout.RowMinute(row)
	if minute >= m.rng.EndMinutes || m.metrics.TimeLabelInterval <= 0 ||
		minute%m.metrics.TimeLabelInterval != 0 {
		return m.styles.TimeGutter.Render(strings.Repeat(" ", gutterWidth))
	}
	label := schedule.FormatMinutes(minute)
	return m.styles.TimeLabel.Render(padRight(label, gutterWidth))
}

// columnCells renders every visible cell of one room column. Cards win over
// the hover preview, the active gesture preview wins over both.
func (m *Model) columnCells(roomIndex int) []string {
	room := m.rooms[roomIndex]
	w := m.layout.ColCells
	cells := make([]string, m.layout.GridRows)

	pv, pvOK := m.currentPreview()

	for r := 0; r < m.layout.GridRows; r++ {
		absRow := m.layout.Scroll + r

		if pvOK && pv.roomIndex == roomIndex {
			sr, er := m.layout.sessionRows(pv.start, pv.end)
			if absRow >= sr && absRow < er {
				cells[r] = m.cardCell(pv.session, absRow-sr, w, m.styles.CardPreview)
				continue
			}
		}

		if s, sr, _ := m.sessionAtRow(roomIndex, absRow); s != nil &&
			!(pvOK && s.ID == pv.session.ID) {
			style := m.styles.Card
			if room.NotBookable {
				style = m.styles.CardBlocked
			}
			if s.ID == m.selectedID {
				style = m.styles.CardSelected
			}
			cells[r] = m.cardCell(s, absRow-sr, w, style)
			continue
		}

		if m.hoverActive && m.hoverRoom == roomIndex && !pvOK {
			hs := m.hoverMinute
			he := hs + float64(m.metrics.DefaultDurationMinutes)
			sr, er := m.layout.sessionRows(hs, he)
			if absRow >= sr && absRow < er {
				label := ""
				if absRow == sr {
					label = " + " + schedule.FormatMinutes(int(hs))
				}
				cells[r] = m.styles.HoverCell.Render(padRight(label, w))
				continue
			}
		}

		cells[r] = m.emptyCell(room, m.layout.RowMinute(r), w)
	}
	return cells
}

// cardCell renders one row of a session block: title, then time range, then
// speakers, then blank filler.
func (m *Model) cardCell(s *event.Session, rowInCard, w int, style lipgloss.Style) string {
	var text string
	switch rowInCard {
	case 0:
		text = " " + s.DisplayTitle()
	case 1:
		start, end := m.rng.SessionMinutes(s)
		text = " " + schedule.FormatMinutes(int(start)) + "-" + schedule.FormatMinutes(int(end))
	case 2:
		if sp := s.SpeakerLabel(); sp != "" {
			text = " " + sp
		}
	}
	return style.Render(padRight(ansi.Truncate(text, w, "…"), w))
}

// emptyCell renders unoccupied grid space: a gridline on label boundaries,
// a wash over not-bookable columns, plain background otherwise.
func (m *Model) emptyCell(room *event.Room, minute, w int) string {
	if room.NotBookable {
		return m.styles.BlockedCell.Render(strings.Repeat(" ", w))
	}
	if m.metrics.TimeLabelInterval > 0 && minute%m.metrics.TimeLabelInterval == 0 &&
		minute < m.rng.EndMinutes {
		return m.styles.GridLine.Render(strings.Repeat("╌", w))
	}
	return m.styles.GridCell.Render(strings.Repeat(" ", w))
}

func padRight(s string, w int) string {
	if n := ansi.StringWidth(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

package tui

import (
	"github.com/stagehandapp/stagehand/internal/schedule"
)

const (
	// gutterWidth is the width of the time axis column, "HH:MM " plus a
	// separator cell.
	gutterWidth = 7

	// headerRows is the title line plus the room header line.
	headerRows = 2

	// footerRows is the status line plus the help line.
	footerRows = 2

	// minColCells keeps room columns readable on narrow terminals.
	minColCells = 14
)

// GridLayout maps terminal cells onto the grid's reference pixel space. All
// scheduling math runs in pixels; the layout is the single place where cell
// coordinates are converted, so the engine never learns about terminal
// geometry.
type GridLayout struct {
	Metrics    schedule.Metrics
	Range      schedule.TimeRange
	NumRooms   int
	ColCells   int // terminal cells per room column
	RowMinutes int // minutes covered by one terminal row
	GridRows   int // rows available for the grid body
	Scroll     int // vertical scroll offset, in rows
}

// computeLayout sizes the grid for the current terminal. The row granularity
// is the finest of 15, 30 or 60 minutes that fits the visible range without
// scrolling; when none fits, the coarsest is kept and scrolling covers the
// rest.
func computeLayout(width, height, rooms int, rng schedule.TimeRange, metrics schedule.Metrics) GridLayout {
	gridRows := height - headerRows - footerRows
	if gridRows < 1 {
		gridRows = 1
	}

	colCells := minColCells
	if rooms > 0 {
		colCells = (width - gutterWidth) / rooms
		if colCells < minColCells {
			colCells = minColCells
		}
	}

	total := rng.TotalMinutes()
	rowMinutes := 60
	for _, rm := range []int{15, 30} {
		if total/rm <= gridRows {
			rowMinutes = rm
			break
		}
	}

	return GridLayout{
		Metrics:    metrics,
		Range:      rng,
		NumRooms:   rooms,
		ColCells:   colCells,
		RowMinutes: rowMinutes,
		GridRows:   gridRows,
	}
}

// TotalRows is the number of rows the full range needs at the current
// granularity.
func (l GridLayout) TotalRows() int {
	if l.RowMinutes <= 0 {
		return 0
	}
	return (l.Range.TotalMinutes() + l.RowMinutes - 1) / l.RowMinutes
}

// MaxScroll is the largest useful scroll offset.
func (l GridLayout) MaxScroll() int {
	return max(0, l.TotalRows()-l.GridRows)
}

// ClampScroll bounds a requested scroll offset.
func (l GridLayout) ClampScroll(s int) int {
	return max(0, min(s, l.MaxScroll()))
}

// RowMinute returns the minute-of-day at the top edge of a visible row.
func (l GridLayout) RowMinute(row int) int {
	return l.Range.StartMinutes + (l.Scroll+row)*l.RowMinutes
}

// RowOf maps a minute-of-day to a visible row index. The result may fall
// outside [0, GridRows) when the minute is scrolled out of view.
func (l GridLayout) RowOf(minutes float64) int {
	if l.RowMinutes <= 0 {
		return 0
	}
	return int((minutes-float64(l.Range.StartMinutes))/float64(l.RowMinutes)) - l.Scroll
}

// CellToPointer converts a terminal cell to a room column index and a pixel
// space pointer. ok is false for cells outside the grid body.
func (l GridLayout) CellToPointer(x, y int) (roomIndex int, p schedule.Pointer, ok bool) {
	if l.NumRooms == 0 || l.ColCells <= 0 {
		return 0, schedule.Pointer{}, false
	}
	if x < gutterWidth || y < headerRows || y >= headerRows+l.GridRows {
		return 0, schedule.Pointer{}, false
	}

	colFloat := float64(x-gutterWidth) / float64(l.ColCells)
	roomIndex = int(colFloat)
	if roomIndex >= l.NumRooms {
		return 0, schedule.Pointer{}, false
	}

	row := l.Scroll + (y - headerRows)
	minutes := float64(l.Range.StartMinutes) + float64(row*l.RowMinutes)

	p = schedule.Pointer{
		X: colFloat * l.Metrics.RoomColumnWidth,
		Y: (minutes - float64(l.Range.StartMinutes)) * l.Metrics.PixelsPerMinute,
	}
	return roomIndex, p, true
}

// hitZone classifies a press on a session block into a gesture mode from the
// row position within the block. Tall blocks expose both resize handles, two
// row blocks only the bottom one, and single row blocks are drag only so a
// short session can still be moved at all.
func hitZone(startRow, endRow, row int) schedule.Mode {
	span := endRow - startRow
	switch {
	case span >= 3:
		if row == startRow {
			return schedule.ModeResizeTop
		}
		if row == endRow-1 {
			return schedule.ModeResizeBottom
		}
		return schedule.ModeDrag
	case span == 2:
		if row == endRow-1 {
			return schedule.ModeResizeBottom
		}
		return schedule.ModeDrag
	default:
		return schedule.ModeDrag
	}
}

// sessionRows returns the absolute row span a session occupies, start
// inclusive and end exclusive, before scrolling.
func (l GridLayout) sessionRows(start, end float64) (int, int) {
	if l.RowMinutes <= 0 {
		return 0, 0
	}
	s := int((start - float64(l.Range.StartMinutes)) / float64(l.RowMinutes))
	e := int((end - float64(l.Range.StartMinutes)) / float64(l.RowMinutes))
	if e <= s {
		e = s + 1
	}
	return s, e
}

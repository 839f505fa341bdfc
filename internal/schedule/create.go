package schedule

import (
	"math"

	"github.com/stagehandapp/stagehand/internal/event"
)

// PlacementMinutes computes the snapped minute-of-day under a pointer at
// vertical pixel y within a room column. Placement uses its own, coarser
// snap grid than drag/resize; the two resolutions are distinct on purpose.
func (m Metrics) PlacementMinutes(y float64, r TimeRange) float64 {
	minutes := float64(r.StartMinutes) + y/m.PixelsPerMinute
	snap := float64(m.PlacementSnapMinutes)
	snapped := math.Round(minutes/snap) * snap
	return clampF(snapped, 0, MinutesPerDay-float64(m.DefaultDurationMinutes))
}

// DraftAt builds a creation draft for a click on empty grid space: the
// snapped start under the cursor plus the default duration. The same
// computation backs the hover preview, so the preview and the created
// session always agree.
func (m Metrics) DraftAt(roomID string, y float64, r TimeRange) event.SessionDraft {
	start := m.PlacementMinutes(y, r)
	end := start + float64(m.DefaultDurationMinutes)
	return event.SessionDraft{
		RoomID:   roomID,
		StartsAt: r.Instant(start),
		EndsAt:   r.Instant(end),
	}
}

package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/stagehandapp/stagehand/internal/event"
)

const (
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440

	// Default window rendered when the schedule has no sessions yet.
	defaultRangeStart = 9 * 60
	defaultRangeEnd   = 17 * 60

	// rangePadding is added around the min/max session bounds, in minutes.
	rangePadding = 60
)

// TimeRange is the minute-of-day window the grid renders, derived from the
// session set. DayStart anchors minute offsets to an absolute instant.
type TimeRange struct {
	StartMinutes int
	EndMinutes   int
	DayStart     time.Time
}

// ComputeTimeRange derives the visible window from the session set.
// With no sessions it returns a fixed 09:00-17:00 window anchored on the
// local midnight of today. Otherwise it anchors on the local midnight of the
// first session's start, scans all sessions for their min/max minute offsets,
// floors the start down to the hour minus padding and ceils the end up to the
// hour plus padding, clamped to [0, 1440].
func ComputeTimeRange(sessions []*event.Session, now func() time.Time) TimeRange {
	if now == nil {
		now = time.Now
	}
	if len(sessions) == 0 {
		return TimeRange{
			StartMinutes: defaultRangeStart,
			EndMinutes:   defaultRangeEnd,
			DayStart:     startOfDay(now()),
		}
	}

	dayStart := startOfDay(sessions[0].StartsAt.Local())

	minStart := math.Inf(1)
	maxEnd := math.Inf(-1)
	for _, s := range sessions {
		start := minutesSince(dayStart, s.StartsAt)
		end := minutesSince(dayStart, s.EndsAt)
		minStart = math.Min(minStart, start)
		maxEnd = math.Max(maxEnd, end)
	}

	start := int(math.Floor(minStart/60)*60) - rangePadding
	end := int(math.Ceil(maxEnd/60)*60) + rangePadding

	return TimeRange{
		StartMinutes: max(0, start),
		EndMinutes:   min(MinutesPerDay, end),
		DayStart:     dayStart,
	}
}

// TotalMinutes returns the length of the visible window.
func (r TimeRange) TotalMinutes() int {
	return max(0, r.EndMinutes-r.StartMinutes)
}

// Instant converts a minute offset within this range's day to an absolute
// UTC-normalized instant.
func (r TimeRange) Instant(minutes float64) time.Time {
	return r.DayStart.Add(time.Duration(minutes * float64(time.Minute))).UTC()
}

// SessionMinutes returns a session's start and end as minute offsets since
// the range's day start.
func (r TimeRange) SessionMinutes(s *event.Session) (start, end float64) {
	return minutesSince(r.DayStart, s.StartsAt), minutesSince(r.DayStart, s.EndsAt)
}

// CardLayout is the vertical placement of one session block.
type CardLayout struct {
	Top    float64
	Height float64
}

// PixelOffset maps a minute offset to a vertical pixel position within the
// visible range.
func (m Metrics) PixelOffset(minutes float64, r TimeRange) float64 {
	return (minutes - float64(r.StartMinutes)) * m.PixelsPerMinute
}

// Layout computes the block placement for a session. Height carries the true
// duration; use RenderHeight for the cosmetic clickability floor.
func (m Metrics) Layout(s *event.Session, r TimeRange) CardLayout {
	start, end := r.SessionMinutes(s)
	return CardLayout{
		Top:    m.PixelOffset(start, r),
		Height: (end - start) * m.PixelsPerMinute,
	}
}

// RenderHeight applies the minimum card height. Rendering only; the true
// height keeps feeding scheduling math.
func (m Metrics) RenderHeight(height float64) float64 {
	return math.Max(height, m.MinCardHeight)
}

// GridlineMinutes returns the minute offsets at which gridlines and axis
// labels are drawn, spaced by the configured interval.
func (m Metrics) GridlineMinutes(r TimeRange) []int {
	if m.TimeLabelInterval <= 0 {
		return nil
	}
	var lines []int
	for t := r.StartMinutes; t <= r.EndMinutes; t += m.TimeLabelInterval {
		lines = append(lines, t)
	}
	return lines
}

// FormatMinutes renders a minute-of-day offset as "HH:MM".
func FormatMinutes(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func minutesSince(dayStart time.Time, t time.Time) float64 {
	return t.Sub(dayStart).Minutes()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

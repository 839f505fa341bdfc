package schedule

import (
	"testing"
	"time"

	"github.com/stagehandapp/stagehand/internal/event"
)

// testDay is a fixed local midnight all geometry tests anchor on.
var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

func at(h, m int) time.Time {
	return testDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func testSession(id, roomID string, start, end time.Time) *event.Session {
	return &event.Session{ID: id, RoomID: roomID, StartsAt: start, EndsAt: end, Title: "s" + id}
}

func fixedNow() time.Time {
	return testDay.Add(14 * time.Hour)
}

func TestComputeTimeRange_EmptyScheduleUsesDefaultWindow(t *testing.T) {
	r := ComputeTimeRange(nil, fixedNow)

	if r.StartMinutes != 9*60 || r.EndMinutes != 17*60 {
		t.Errorf("window = %d..%d, want 540..1020", r.StartMinutes, r.EndMinutes)
	}
	if !r.DayStart.Equal(testDay) {
		t.Errorf("day start = %v, want %v", r.DayStart, testDay)
	}
}

func TestComputeTimeRange_PadsAndFloorsToHour(t *testing.T) {
	sessions := []*event.Session{
		testSession("1", "r1", at(10, 0), at(10, 30)),
		testSession("2", "r2", at(10, 15), at(10, 25)),
	}
	r := ComputeTimeRange(sessions, fixedNow)

	// earliest 10:00 floors to 10:00, minus padding -> 09:00
	// latest 10:30 ceils to 11:00, plus padding -> 12:00
	if r.StartMinutes != 540 {
		t.Errorf("start = %d, want 540", r.StartMinutes)
	}
	if r.EndMinutes != 720 {
		t.Errorf("end = %d, want 720", r.EndMinutes)
	}
}

func TestComputeTimeRange_ClampsToDayBounds(t *testing.T) {
	sessions := []*event.Session{
		testSession("1", "r1", at(0, 20), at(23, 30)),
	}
	r := ComputeTimeRange(sessions, fixedNow)

	if r.StartMinutes != 0 {
		t.Errorf("start = %d, want 0", r.StartMinutes)
	}
	if r.EndMinutes != MinutesPerDay {
		t.Errorf("end = %d, want %d", r.EndMinutes, MinutesPerDay)
	}
}

func TestComputeTimeRange_ContainsEverySession(t *testing.T) {
	sessions := []*event.Session{
		testSession("1", "r1", at(8, 45), at(9, 30)),
		testSession("2", "r1", at(13, 0), at(14, 10)),
		testSession("3", "r2", at(19, 55), at(20, 0)),
	}
	r := ComputeTimeRange(sessions, fixedNow)

	for _, s := range sessions {
		start, end := r.SessionMinutes(s)
		if start < float64(r.StartMinutes) || end > float64(r.EndMinutes) {
			t.Errorf("session %s (%v..%v) escapes window %d..%d",
				s.ID, start, end, r.StartMinutes, r.EndMinutes)
		}
	}
}

func TestLayout_TopAndHeightFromMinutes(t *testing.T) {
	m := DefaultMetrics()
	r := TimeRange{StartMinutes: 540, EndMinutes: 1020, DayStart: testDay}

	l := m.Layout(testSession("1", "r1", at(10, 0), at(10, 30)), r)
	if l.Top != 180 {
		t.Errorf("top = %v, want 180", l.Top)
	}
	if l.Height != 90 {
		t.Errorf("height = %v, want 90", l.Height)
	}
}

func TestRenderHeight_CosmeticFloorOnly(t *testing.T) {
	m := DefaultMetrics()
	r := TimeRange{StartMinutes: 540, EndMinutes: 1020, DayStart: testDay}

	short := testSession("1", "r1", at(10, 0), at(10, 10))
	l := m.Layout(short, r)
	if l.Height != 30 {
		t.Errorf("true height = %v, want 30", l.Height)
	}
	if got := m.RenderHeight(l.Height); got != m.MinCardHeight {
		t.Errorf("render height = %v, want %v", got, m.MinCardHeight)
	}
	// the floor must never leak back into scheduling math
	if s, e := r.SessionMinutes(short); e-s != 10 {
		t.Errorf("duration = %v, want 10", e-s)
	}
}

func TestGridlineMinutes(t *testing.T) {
	m := DefaultMetrics()
	r := TimeRange{StartMinutes: 540, EndMinutes: 660, DayStart: testDay}

	got := m.GridlineMinutes(r)
	want := []int{540, 570, 600, 630, 660}
	if len(got) != len(want) {
		t.Fatalf("gridlines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("gridline[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{545, "09:05"},
		{1020, "17:00"},
		{1439, "23:59"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestSnapPixels(t *testing.T) {
	m := DefaultMetrics() // snap grid is 15px at 3 px/min

	tests := []struct {
		px   float64
		want float64
	}{
		{0, 0},
		{7, 15},
		{36, 30}, // 12 minutes of travel lands on 10
		{-36, -30},
		{45, 45},
	}
	for _, tt := range tests {
		got := m.SnapPixels(tt.px)
		if got != tt.want {
			t.Errorf("SnapPixels(%v) = %v, want %v", tt.px, got, tt.want)
		}
		// snapping an already snapped value changes nothing
		if again := m.SnapPixels(got); again != got {
			t.Errorf("SnapPixels(%v) not idempotent: %v", got, again)
		}
	}
}

func TestPlacementMinutes_CoarserThanDragSnap(t *testing.T) {
	m := DefaultMetrics()
	r := TimeRange{StartMinutes: 540, EndMinutes: 1020, DayStart: testDay}

	// pointer at 10:07 snaps to the 15-minute grid, not the 5-minute one
	y := (607 - 540) * m.PixelsPerMinute
	if got := m.PlacementMinutes(y, r); got != 600 {
		t.Errorf("placement = %v, want 600", got)
	}

	// tightening the drag snap must not change placement
	fine := m
	fine.SnapMinutes = 1
	if got := fine.PlacementMinutes(y, r); got != 600 {
		t.Errorf("placement with fine drag snap = %v, want 600", got)
	}
}

func TestPlacementMinutes_ClampsSoDefaultDurationFits(t *testing.T) {
	m := DefaultMetrics()
	r := TimeRange{StartMinutes: 540, EndMinutes: 1440, DayStart: testDay}

	y := float64(r.TotalMinutes()) * m.PixelsPerMinute // bottom of the grid
	got := m.PlacementMinutes(y, r)
	if got != float64(MinutesPerDay-m.DefaultDurationMinutes) {
		t.Errorf("placement = %v, want %d", got, MinutesPerDay-m.DefaultDurationMinutes)
	}
}

func TestDraftAt(t *testing.T) {
	m := DefaultMetrics()
	r := TimeRange{StartMinutes: 540, EndMinutes: 1020, DayStart: testDay}

	y := (600 - 540) * m.PixelsPerMinute
	draft := m.DraftAt("r1", y, r)

	if draft.RoomID != "r1" {
		t.Errorf("room = %q, want r1", draft.RoomID)
	}
	if !draft.StartsAt.Equal(at(10, 0)) {
		t.Errorf("start = %v, want %v", draft.StartsAt, at(10, 0))
	}
	if !draft.EndsAt.Equal(at(10, 30)) {
		t.Errorf("end = %v, want %v", draft.EndsAt, at(10, 30))
	}
}

package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stagehandapp/stagehand/internal/event"
)

func minutesDur(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

func testRooms(ids ...string) []*event.Room {
	rooms := make([]*event.Room, len(ids))
	for i, id := range ids {
		rooms[i] = &event.Room{ID: id, Name: "room " + id}
	}
	return rooms
}

func testEngine(ids ...string) *Engine {
	rng := TimeRange{StartMinutes: 540, EndMinutes: 1020, DayStart: testDay}
	return NewEngine(DefaultMetrics(), testRooms(ids...), rng)
}

func mustBegin(t *testing.T, e *Engine, mode Mode, s *event.Session, roomIndex int, p Pointer) {
	t.Helper()
	if err := e.Begin(mode, s, roomIndex, p); err != nil {
		t.Fatalf("Begin: %v", err)
	}
}

func TestDrag_SnapsToFiveMinuteGrid(t *testing.T) {
	e := testEngine("r1", "r2")
	s := testSession("1", "r1", at(10, 0), at(10, 30))

	mustBegin(t, e, ModeDrag, s, 0, Pointer{X: 50, Y: 200})

	// 36px is 12 minutes of travel; the nearest snap point is 10 minutes
	p, ok := e.Move(Pointer{X: 50, Y: 236})
	if !ok {
		t.Fatal("Move returned no preview")
	}
	if p.TranslateY != 30 {
		t.Errorf("preview translateY = %v, want 30", p.TranslateY)
	}
	if p.TranslateX != 0 || p.HeightDelta != 0 {
		t.Errorf("drag preview should only translate vertically, got %+v", p)
	}

	upd, ok := e.Finish()
	if !ok {
		t.Fatal("Finish returned no update")
	}
	if upd.Change.RoomID != "" {
		t.Errorf("room unchanged but change carries %q", upd.Change.RoomID)
	}
	if upd.Change.StartTime == nil || !upd.Change.StartTime.Equal(at(10, 10)) {
		t.Errorf("start = %v, want 10:10", upd.Change.StartTime)
	}
	if upd.Change.EndTime == nil || !upd.Change.EndTime.Equal(at(10, 40)) {
		t.Errorf("end = %v, want 10:40", upd.Change.EndTime)
	}
}

func TestDrag_UnchangedEmitsEmptyChange(t *testing.T) {
	e := testEngine("r1", "r2")
	s := testSession("1", "r1", at(10, 0), at(10, 30))

	mustBegin(t, e, ModeDrag, s, 0, Pointer{X: 50, Y: 200})
	e.Move(Pointer{X: 53, Y: 204}) // well under half a snap step

	upd, ok := e.Finish()
	if !ok {
		t.Fatal("Finish returned no update")
	}
	if !upd.Change.Empty() {
		t.Errorf("no-op drag produced %+v", upd.Change)
	}
}

func TestDrag_RoomOnlyChange(t *testing.T) {
	e := testEngine("r1", "r2", "r3")
	s := testSession("1", "r1", at(10, 0), at(10, 30))

	mustBegin(t, e, ModeDrag, s, 0, Pointer{X: 50, Y: 200})
	p, _ := e.Move(Pointer{X: 250, Y: 200}) // one column right, no vertical travel

	if p.TranslateX != 200 {
		t.Errorf("preview translateX = %v, want 200", p.TranslateX)
	}

	upd, _ := e.Finish()
	if upd.Change.RoomID != "r2" {
		t.Errorf("room = %q, want r2", upd.Change.RoomID)
	}
	if upd.Change.StartTime != nil || upd.Change.EndTime != nil {
		t.Errorf("times unchanged but change carries %+v", upd.Change)
	}
}

func TestDrag_RoomTargetClampedToColumns(t *testing.T) {
	e := testEngine("r1", "r2")
	s := testSession("1", "r2", at(10, 0), at(10, 30))

	mustBegin(t, e, ModeDrag, s, 1, Pointer{X: 250, Y: 200})
	p, _ := e.Move(Pointer{X: 2500, Y: 200}) // far past the last column

	if p.TranslateX != 0 {
		t.Errorf("preview translateX = %v, want 0 (already in last column)", p.TranslateX)
	}

	upd, _ := e.Finish()
	if !upd.Change.Empty() {
		t.Errorf("clamped drag produced %+v", upd.Change)
	}
}

func TestResizeBottom_ClampsToMinDuration(t *testing.T) {
	e := testEngine("r1")
	s := testSession("1", "r1", at(9, 0), at(10, 0))

	mustBegin(t, e, ModeResizeBottom, s, 0, Pointer{X: 50, Y: 180})

	// dragging the bottom edge 70 minutes up would invert the block;
	// it stops 5 minutes after the start
	p, _ := e.Move(Pointer{X: 50, Y: 180 - 70*3})
	if p.HeightDelta != -165 {
		t.Errorf("preview heightDelta = %v, want -165", p.HeightDelta)
	}
	if p.TranslateY != 0 {
		t.Errorf("bottom resize must not move the top edge, translateY = %v", p.TranslateY)
	}

	upd, _ := e.Finish()
	if upd.Change.EndTime == nil || !upd.Change.EndTime.Equal(at(9, 5)) {
		t.Errorf("end = %v, want 09:05", upd.Change.EndTime)
	}
	if upd.Change.StartTime != nil || upd.Change.RoomID != "" {
		t.Errorf("bottom resize emitted more than end time: %+v", upd.Change)
	}
}

func TestResizeBottom_ClampsToEndOfDay(t *testing.T) {
	rng := TimeRange{StartMinutes: 540, EndMinutes: 1440, DayStart: testDay}
	e := NewEngine(DefaultMetrics(), testRooms("r1"), rng)
	s := testSession("1", "r1", at(23, 0), at(23, 30))

	mustBegin(t, e, ModeResizeBottom, s, 0, Pointer{X: 50, Y: 0})
	p, _ := e.Move(Pointer{X: 50, Y: 600}) // 200 minutes down

	if p.HeightDelta != 90 { // only 30 minutes of day remain
		t.Errorf("preview heightDelta = %v, want 90", p.HeightDelta)
	}

	upd, _ := e.Finish()
	if upd.Change.EndTime == nil || !upd.Change.EndTime.Equal(testDay.Add(24*time.Hour)) {
		t.Errorf("end = %v, want midnight", upd.Change.EndTime)
	}
}

func TestResizeBottom_AlwaysEmitsEndTime(t *testing.T) {
	e := testEngine("r1")
	s := testSession("1", "r1", at(10, 0), at(11, 0))

	mustBegin(t, e, ModeResizeBottom, s, 0, Pointer{X: 50, Y: 100})
	upd, _ := e.Finish() // no movement at all

	if upd.Change.EndTime == nil || !upd.Change.EndTime.Equal(at(11, 0)) {
		t.Errorf("end = %v, want the original 11:00", upd.Change.EndTime)
	}
}

func TestResizeTop_ClampsToMinDuration(t *testing.T) {
	e := testEngine("r1")
	s := testSession("1", "r1", at(10, 0), at(10, 30))

	mustBegin(t, e, ModeResizeTop, s, 0, Pointer{X: 50, Y: 180})
	p, _ := e.Move(Pointer{X: 50, Y: 180 + 100*3}) // 100 minutes down

	// the edge stops 5 minutes short of the end: 25 minutes of travel
	if p.TranslateY != 75 {
		t.Errorf("preview translateY = %v, want 75", p.TranslateY)
	}
	if p.HeightDelta != -75 {
		t.Errorf("preview heightDelta = %v, want -75", p.HeightDelta)
	}

	upd, _ := e.Finish()
	if upd.Change.StartTime == nil || !upd.Change.StartTime.Equal(at(10, 25)) {
		t.Errorf("start = %v, want 10:25", upd.Change.StartTime)
	}
	if upd.Change.EndTime != nil || upd.Change.RoomID != "" {
		t.Errorf("top resize emitted more than start time: %+v", upd.Change)
	}
}

func TestResizeTop_PreviewClampsToRangeStart(t *testing.T) {
	e := testEngine("r1")
	s := testSession("1", "r1", at(10, 0), at(10, 30))

	mustBegin(t, e, ModeResizeTop, s, 0, Pointer{X: 50, Y: 180})
	p, _ := e.Move(Pointer{X: 50, Y: 180 - 500})

	// the block cannot climb above the top of the visible window
	if p.TranslateY != -180 {
		t.Errorf("preview translateY = %v, want -180", p.TranslateY)
	}
	if p.HeightDelta != 180 {
		t.Errorf("preview heightDelta = %v, want 180", p.HeightDelta)
	}
}

func TestPreviewAndCommitAgree(t *testing.T) {
	// whatever the preview showed is exactly what gets committed
	for _, dy := range []float64{-97, -15, -2, 0, 8, 36, 121} {
		e := testEngine("r1", "r2")
		s := testSession("1", "r1", at(11, 0), at(12, 0))

		mustBegin(t, e, ModeDrag, s, 0, Pointer{X: 50, Y: 300})
		p, _ := e.Move(Pointer{X: 50, Y: 300 + dy})
		upd, _ := e.Finish()

		previewMinutes := p.TranslateY / 3
		if previewMinutes == 0 {
			if upd.Change.StartTime != nil {
				t.Errorf("dy=%v: preview showed no move but commit has times", dy)
			}
			continue
		}
		wantStart := at(11, 0).Add(minutesDur(previewMinutes))
		if upd.Change.StartTime == nil || !upd.Change.StartTime.Equal(wantStart) {
			t.Errorf("dy=%v: commit start %v, preview promised %v", dy, upd.Change.StartTime, wantStart)
		}
	}
}

func TestEngine_SecondGestureRejected(t *testing.T) {
	e := testEngine("r1")
	s := testSession("1", "r1", at(10, 0), at(10, 30))

	mustBegin(t, e, ModeDrag, s, 0, Pointer{})
	err := e.Begin(ModeResizeTop, s, 0, Pointer{})
	if !errors.Is(err, ErrGestureActive) {
		t.Errorf("err = %v, want ErrGestureActive", err)
	}

	// the first gesture is still the one that finishes
	if upd, ok := e.Finish(); !ok || upd.SessionID != "1" {
		t.Errorf("Finish = %+v, %v", upd, ok)
	}
}

func TestEngine_BeginValidation(t *testing.T) {
	s := testSession("1", "r1", at(10, 0), at(10, 30))

	empty := NewEngine(DefaultMetrics(), nil, TimeRange{StartMinutes: 540, EndMinutes: 1020, DayStart: testDay})
	if err := empty.Begin(ModeDrag, s, 0, Pointer{}); !errors.Is(err, ErrNoRooms) {
		t.Errorf("err = %v, want ErrNoRooms", err)
	}

	e := testEngine("r1")
	if err := e.Begin(ModeDrag, s, 3, Pointer{}); !errors.Is(err, ErrBadRoomIndex) {
		t.Errorf("err = %v, want ErrBadRoomIndex", err)
	}
}

func TestEngine_CancelDropsGesture(t *testing.T) {
	e := testEngine("r1")
	s := testSession("1", "r1", at(10, 0), at(10, 30))

	mustBegin(t, e, ModeDrag, s, 0, Pointer{})
	e.Move(Pointer{X: 0, Y: 90})
	e.Cancel()

	if e.Active() != "" {
		t.Errorf("gesture still active after cancel: %q", e.Active())
	}
	if _, ok := e.Finish(); ok {
		t.Error("Finish produced an update after cancel")
	}
}

func TestEngine_RoomsFrozenMidGesture(t *testing.T) {
	e := testEngine("r1", "r2")
	s := testSession("1", "r1", at(10, 0), at(10, 30))

	mustBegin(t, e, ModeDrag, s, 0, Pointer{X: 50, Y: 200})
	e.SetRooms(testRooms("rX"))
	e.Move(Pointer{X: 250, Y: 200})

	upd, _ := e.Finish()
	if upd.Change.RoomID != "r2" {
		t.Errorf("room = %q, want r2 from the order captured at pointer-down", upd.Change.RoomID)
	}
}

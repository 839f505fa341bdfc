package schedule

import (
	"errors"
	"math"

	"github.com/stagehandapp/stagehand/internal/event"
)

// Interaction engine errors.
var (
	ErrGestureActive = errors.New("a gesture is already active")
	ErrNoRooms       = errors.New("no rooms to schedule into")
	ErrBadRoomIndex  = errors.New("room index out of range")
)

// Mode identifies the kind of gesture in progress.
type Mode int

const (
	ModeDrag Mode = iota
	ModeResizeTop
	ModeResizeBottom
)

// String returns the mode name for logs.
func (m Mode) String() string {
	switch m {
	case ModeDrag:
		return "drag"
	case ModeResizeTop:
		return "resize-top"
	case ModeResizeBottom:
		return "resize-bottom"
	default:
		return "unknown"
	}
}

// Pointer is a screen-space pointer position in pixels.
type Pointer struct {
	X float64
	Y float64
}

// Gesture is the state captured at pointer-down and accumulated until
// release. It exists only while a gesture is active; exactly one gesture may
// be active at a time.
type Gesture struct {
	Mode            Mode
	Session         *event.Session
	OriginRoomIndex int

	origin             Pointer
	originStartMinutes float64
	originEndMinutes   float64
	originHeight       float64
	lastDX             float64
	lastDY             float64
}

// Preview is the purely visual transform applied to the active session block
// while a gesture is in progress. It is recomputed on every pointer move and
// never mutates the session record.
type Preview struct {
	SessionID   string
	TranslateX  float64
	TranslateY  float64
	HeightDelta float64
}

// Update is the committed schedule change produced when a gesture ends.
type Update struct {
	SessionID string
	Change    event.ScheduleChange
}

// Engine turns raw pointer movement into committed schedule changes with
// snapping and clamping. It tracks at most one active gesture; a second
// pointer-down while one is active is rejected so a missed release cannot
// wedge two captures.
type Engine struct {
	metrics Metrics
	rng     TimeRange
	roomIDs []string
	active  *Gesture
}

// NewEngine creates an interaction engine over the given room order and
// visible range. Room order must match the rendered column order.
func NewEngine(metrics Metrics, rooms []*event.Room, rng TimeRange) *Engine {
	ids := make([]string, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	return &Engine{metrics: metrics, rng: rng, roomIDs: ids}
}

// SetRange updates the visible range after a reload. No-op mid-gesture.
func (e *Engine) SetRange(rng TimeRange) {
	if e.active == nil {
		e.rng = rng
	}
}

// SetRooms updates the room column order after a reload. No-op mid-gesture.
func (e *Engine) SetRooms(rooms []*event.Room) {
	if e.active != nil {
		return
	}
	ids := make([]string, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	e.roomIDs = ids
}

// Active returns the session id of the gesture in progress, or "".
func (e *Engine) Active() string {
	if e.active == nil {
		return ""
	}
	return e.active.Session.ID
}

// Mode returns the active gesture mode. Only meaningful while Active() != "".
func (e *Engine) Mode() Mode {
	if e.active == nil {
		return ModeDrag
	}
	return e.active.Mode
}

// Begin starts a gesture on pointer-down over a session block or one of its
// resize handles. It captures the session snapshot, the origin room column,
// the pointer origin, and the session's original bounds in minutes and pixels.
func (e *Engine) Begin(mode Mode, s *event.Session, roomIndex int, p Pointer) error {
	if e.active != nil {
		return ErrGestureActive
	}
	if len(e.roomIDs) == 0 {
		return ErrNoRooms
	}
	if roomIndex < 0 || roomIndex >= len(e.roomIDs) {
		return ErrBadRoomIndex
	}

	start, end := e.rng.SessionMinutes(s)
	e.active = &Gesture{
		Mode:               mode,
		Session:            s,
		OriginRoomIndex:    roomIndex,
		origin:             p,
		originStartMinutes: start,
		originEndMinutes:   end,
		originHeight:       (end - start) * e.metrics.PixelsPerMinute,
	}
	return nil
}

// Move accumulates the pointer delta and returns the live preview transform.
// Returns false when no gesture is active.
func (e *Engine) Move(p Pointer) (Preview, bool) {
	g := e.active
	if g == nil {
		return Preview{}, false
	}

	g.lastDX = p.X - g.origin.X
	g.lastDY = p.Y - g.origin.Y

	snappedDY := e.metrics.SnapPixels(g.lastDY)
	preview := Preview{SessionID: g.Session.ID}

	switch g.Mode {
	case ModeDrag:
		target := e.targetRoomIndex(g)
		preview.TranslateX = float64(target-g.OriginRoomIndex) * e.metrics.RoomColumnWidth
		preview.TranslateY = snappedDY

	case ModeResizeTop:
		// Top edge: cannot shrink below the minimum duration, cannot
		// climb above the visible range start.
		maxDelta := g.originHeight - e.metrics.MinDurationPixels()
		minDelta := -(g.originStartMinutes - float64(e.rng.StartMinutes)) * e.metrics.PixelsPerMinute
		clamped := clampF(snappedDY, minDelta, maxDelta)
		preview.TranslateY = clamped
		preview.HeightDelta = -clamped

	case ModeResizeBottom:
		// Bottom edge: cannot grow past end of day, cannot shrink below
		// the minimum duration.
		maxDelta := (MinutesPerDay - g.originEndMinutes) * e.metrics.PixelsPerMinute
		minDelta := e.metrics.MinDurationPixels() - g.originHeight
		preview.HeightDelta = clampF(snappedDY, minDelta, maxDelta)
	}

	return preview, true
}

// Finish ends the gesture on pointer-up or pointer-cancel and computes the
// committed change from the last recorded delta. The same snap used for the
// preview is applied, so the commit lands exactly where the preview showed.
// A pure no-op drag returns an Update with an empty Change; callers must not
// issue a request for it.
func (e *Engine) Finish() (Update, bool) {
	g := e.active
	if g == nil {
		return Update{}, false
	}
	e.active = nil

	deltaMinutes := e.metrics.SnapMinutesOf(g.lastDY)
	upd := Update{SessionID: g.Session.ID}

	switch g.Mode {
	case ModeDrag:
		target := e.targetRoomIndex(g)
		if e.roomIDs[target] != g.Session.RoomID {
			upd.Change.RoomID = e.roomIDs[target]
		}
		if deltaMinutes != 0 {
			start := e.rng.Instant(g.originStartMinutes + deltaMinutes)
			end := e.rng.Instant(g.originEndMinutes + deltaMinutes)
			upd.Change.StartTime = &start
			upd.Change.EndTime = &end
		}

	case ModeResizeTop:
		newStart := g.originStartMinutes + deltaMinutes
		clamped := clampF(newStart, 0, g.originEndMinutes-float64(e.metrics.MinDurationMinutes))
		start := e.rng.Instant(clamped)
		upd.Change.StartTime = &start

	case ModeResizeBottom:
		newEnd := g.originEndMinutes + deltaMinutes
		clamped := clampF(newEnd, g.originStartMinutes+float64(e.metrics.MinDurationMinutes), MinutesPerDay)
		end := e.rng.Instant(clamped)
		upd.Change.EndTime = &end
	}

	return upd, true
}

// Cancel aborts the active gesture without producing an update.
func (e *Engine) Cancel() {
	e.active = nil
}

// targetRoomIndex maps the horizontal delta to a room column index, clamped
// to the valid column range.
func (e *Engine) targetRoomIndex(g *Gesture) int {
	roomDelta := int(math.Round(g.lastDX / e.metrics.RoomColumnWidth))
	target := g.OriginRoomIndex + roomDelta
	if target < 0 {
		target = 0
	}
	if target > len(e.roomIDs)-1 {
		target = len(e.roomIDs) - 1
	}
	return target
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

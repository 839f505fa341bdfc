// Package schedule implements the time-by-room grid: geometry between
// wall-clock instants and pixel offsets, the drag/resize interaction engine,
// room ordering, and the update dispatcher.
package schedule

import "math"

// Metrics is the single configuration object shared by layout and the
// interaction engine. Rendering constants and scheduling math must read the
// same values; duplicating any of these as literals elsewhere is a bug.
type Metrics struct {
	// PixelsPerMinute is the vertical scale of the grid.
	PixelsPerMinute float64

	// RoomColumnWidth is the width of one room column in pixels.
	RoomColumnWidth float64

	// SnapMinutes is the time grid drag and resize deltas snap to.
	SnapMinutes int

	// PlacementSnapMinutes is the coarser grid used when placing a new
	// session on empty space. Deliberately independent of SnapMinutes.
	PlacementSnapMinutes int

	// MinDurationMinutes is the floor a resize may shrink a session to.
	MinDurationMinutes int

	// DefaultDurationMinutes is the length of a freshly created session.
	DefaultDurationMinutes int

	// MinCardHeight is the cosmetic render floor for session blocks, in
	// pixels. It keeps short sessions clickable and must never feed back
	// into scheduling math.
	MinCardHeight float64

	// TimeLabelInterval is the spacing of gridlines and axis labels,
	// in minutes.
	TimeLabelInterval int
}

// DefaultMetrics returns the reference grid configuration.
func DefaultMetrics() Metrics {
	return Metrics{
		PixelsPerMinute:        3,
		RoomColumnWidth:        200,
		SnapMinutes:            5,
		PlacementSnapMinutes:   15,
		MinDurationMinutes:     5,
		DefaultDurationMinutes: 30,
		MinCardHeight:          44,
		TimeLabelInterval:      30,
	}
}

// SnapPixels rounds a vertical pixel delta to the nearest multiple of the
// snap grid. Applied identically during live preview and at commit so the
// preview never lies about where the drop will land.
func (m Metrics) SnapPixels(px float64) float64 {
	snapPx := float64(m.SnapMinutes) * m.PixelsPerMinute
	return math.Round(px/snapPx) * snapPx
}

// SnapMinutesOf converts a raw pixel delta to snapped minutes.
func (m Metrics) SnapMinutesOf(px float64) float64 {
	return m.SnapPixels(px) / m.PixelsPerMinute
}

// MinDurationPixels returns the minimum session height in pixels.
func (m Metrics) MinDurationPixels() float64 {
	return float64(m.MinDurationMinutes) * m.PixelsPerMinute
}

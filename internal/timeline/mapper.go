package timeline

import "math"

const (
	// BasePixelsPerSecond is the horizontal scale at zoom 1.0.
	BasePixelsPerSecond = 100.0

	MinZoom = 0.1
	MaxZoom = 10.0
)

// Mapper converts between timeline time (ms) and pixel space for a fixed
// zoom and scroll offset. Gestures capture a Mapper by value at press time
// so a concurrent scroll cannot skew an in-flight drag.
type Mapper struct {
	zoom   float64
	offset float64
}

func NewMapper() Mapper {
	return Mapper{zoom: 1.0}
}

// SetZoom clamps to [MinZoom, MaxZoom].
func (m *Mapper) SetZoom(zoom float64) {
	m.zoom = math.Max(MinZoom, math.Min(zoom, MaxZoom))
}

func (m Mapper) Zoom() float64 {
	return m.zoom
}

// SetOffset sets the horizontal scroll offset in pixels. Unconstrained.
func (m *Mapper) SetOffset(offset float64) {
	m.offset = offset
}

func (m Mapper) Offset() float64 {
	return m.offset
}

func (m Mapper) pixelsPerMs() float64 {
	return BasePixelsPerSecond * m.zoom / 1000.0
}

// TimeToX converts a timeline position to an x coordinate.
func (m Mapper) TimeToX(timeMs int64) float64 {
	return float64(timeMs)*m.pixelsPerMs() - m.offset
}

// XToTime converts an x coordinate back to a timeline position, rounding to
// the nearest millisecond. XToTime(TimeToX(t)) == t for any fixed mapper.
func (m Mapper) XToTime(x float64) int64 {
	return int64(math.Round((x + m.offset) / m.pixelsPerMs()))
}

// DeltaToTime converts a pixel delta to a time delta. Subtracting the
// mapping of zero cancels the additive offset term, so the result depends
// only on the zoom captured in this mapper.
func (m Mapper) DeltaToTime(dx float64) int64 {
	return m.XToTime(dx) - m.XToTime(0)
}

package timeline

import "math"

// EdgeGrabPx is the hit-test tolerance around a clip edge: a press within
// this many pixels of an edge starts a trim instead of a move.
const EdgeGrabPx = 8.0

type Handle int

const (
	// HandleNone means the gesture drags the clip body (a move).
	HandleNone Handle = iota
	HandleLeft
	HandleRight
)

// gestureState carries one press-to-release interaction. It is armed on
// press, mutated on every pointer sample, and cleared on release or cancel.
// A new press implicitly terminates any unreleased prior gesture.
type gestureState struct {
	active     bool
	trackIndex int
	clipID     string
	handle     Handle
	startX     float64

	origStart    int64
	origDuration int64
	origIn       int64
	origOut      int64

	// view is the mapper snapshot at press time; a scroll or zoom during
	// the gesture does not skew the drag.
	view Mapper
}

// GestureActive reports whether a press is currently armed.
func (tl *Timeline) GestureActive() bool {
	return tl.gesture.active
}

// BeginGesture hit-tests the pointer at x on the given track and arms a
// move or trim gesture for the clip under it. It emits EventSelected with
// the hit clip, or with no clip when the press lands on empty lane. Presses
// on a locked track or an out-of-range index clear any prior gesture and
// select nothing.
func (tl *Timeline) BeginGesture(trackIndex int, x float64) (Clip, bool) {
	tl.gesture = gestureState{}

	track := tl.Track(trackIndex)
	if track == nil || track.Locked {
		tl.emit(Event{Kind: EventSelected, TrackIndex: trackIndex})
		return Clip{}, false
	}

	clip, handle, ok := tl.hitTest(track, x)
	if !ok {
		tl.emit(Event{Kind: EventSelected, TrackIndex: trackIndex})
		return Clip{}, false
	}

	tl.gesture = gestureState{
		active:       true,
		trackIndex:   trackIndex,
		clipID:       clip.ID,
		handle:       handle,
		startX:       x,
		origStart:    clip.StartTime,
		origDuration: clip.Duration,
		origIn:       clip.InPoint,
		origOut:      clip.OutPoint,
		view:         tl.view,
	}
	tl.emitClip(EventSelected, clip)
	return clip, true
}

func (tl *Timeline) hitTest(track *Track, x float64) (Clip, Handle, bool) {
	for _, c := range track.clips {
		left := tl.view.TimeToX(c.StartTime)
		right := tl.view.TimeToX(c.EndTime())
		switch {
		case math.Abs(x-left) <= EdgeGrabPx:
			return c, HandleLeft, true
		case math.Abs(x-right) <= EdgeGrabPx:
			return c, HandleRight, true
		case x > left && x < right:
			return c, HandleNone, true
		}
	}
	return Clip{}, HandleNone, false
}

// UpdateGesture applies one pointer-move sample to the backing model. The
// model is mutated in place on every sample; the external notification only
// fires on release.
func (tl *Timeline) UpdateGesture(x float64) {
	g := &tl.gesture
	if !g.active {
		return
	}
	track := tl.Track(g.trackIndex)
	if track == nil {
		return
	}
	clip, ok := track.Get(g.clipID)
	if !ok {
		// Clip vanished mid-gesture (e.g. deleted through the API); drop
		// the gesture rather than resurrect it.
		tl.gesture = gestureState{}
		return
	}

	switch g.handle {
	case HandleNone:
		dt := g.view.DeltaToTime(x - g.startX)
		clip.StartTime = clampMs(g.origStart + dt)
	case HandleLeft:
		dt := g.view.XToTime(x) - g.view.XToTime(g.startX)
		newStart := clampMs(g.origStart + dt)
		durationChange := g.origStart - newStart
		clip.StartTime = newStart
		// When the floor clamps, StartTime is deliberately not re-derived
		// from the clamped duration; the pair converges on the next sample.
		clip.Duration = maxMs(MinClipDurationMs, g.origDuration+durationChange)
		clip.InPoint = g.origIn + (newStart - g.origStart)
		clip.OutPoint = g.origOut
	case HandleRight:
		dt := g.view.XToTime(x) - g.view.XToTime(g.startX)
		clip.StartTime = g.origStart
		clip.InPoint = g.origIn
		clip.Duration = maxMs(MinClipDurationMs, g.origDuration+dt)
		clip.OutPoint = clip.InPoint + clip.Duration
	}

	track.replace(clip)
}

// EndGesture releases the active gesture, emitting a single EventMoved or
// EventTrimmed with the final clip state. No-op when nothing is armed.
func (tl *Timeline) EndGesture() {
	g := tl.gesture
	tl.gesture = gestureState{}
	if !g.active {
		return
	}
	clip, _, ok := tl.FindClip(g.clipID)
	if !ok {
		return
	}
	kind := EventMoved
	if g.handle != HandleNone {
		kind = EventTrimmed
	}
	if tl.logger != nil {
		tl.logger.Debug("gesture released", "clip_id", clip.ID, "kind", string(kind), "start_ms", clip.StartTime, "duration_ms", clip.Duration)
	}
	tl.emitClip(kind, clip)
}

// CancelGesture clears the gesture state without emitting a notification,
// for releases that are never delivered (focus loss mid-drag). The model
// keeps the last applied sample.
func (tl *Timeline) CancelGesture() {
	tl.gesture = gestureState{}
}

func clampMs(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func maxMs(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

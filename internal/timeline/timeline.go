// Package timeline implements the editing model of a video timeline: tracks
// holding clips on a millisecond time axis, pixel/time coordinate mapping,
// and the pointer-driven move/trim/split/delete operations over them.
//
// The engine is single-writer: all mutations happen synchronously on the
// caller's goroutine, and out-of-range input is clamped or ignored rather
// than rejected with an error.
package timeline

import "log/slog"

// Timeline owns an ordered list of tracks plus the interactive view state
// (zoom, scroll offset, playhead). Track index is semantically meaningful:
// clips reference their track by index and tracks are never removed.
type Timeline struct {
	tracks   []*Track
	view     Mapper
	playhead int64
	gesture  gestureState
	sinks    []Sink
	logger   *slog.Logger
}

// New creates a timeline with the two default tracks, one video and one
// audio. logger may be nil.
func New(logger *slog.Logger) *Timeline {
	tl := &Timeline{view: NewMapper(), logger: logger}
	tl.AddTrack("Video 1", TrackVideo)
	tl.AddTrack("Audio 1", TrackAudio)
	return tl
}

// AddTrack appends a new empty track and returns it. The track's index is
// its position at creation time.
func (tl *Timeline) AddTrack(name string, kind TrackKind) *Track {
	track := NewTrack(name, kind)
	tl.tracks = append(tl.tracks, track)
	if tl.logger != nil {
		tl.logger.Debug("track added", "track_id", track.ID, "kind", string(kind), "index", len(tl.tracks)-1)
	}
	return track
}

func (tl *Timeline) TrackCount() int {
	return len(tl.tracks)
}

// Track returns the track at the given index, or nil if out of range.
func (tl *Timeline) Track(index int) *Track {
	if index < 0 || index >= len(tl.tracks) {
		return nil
	}
	return tl.tracks[index]
}

// AddClip appends a clip to the given track. Out-of-range indexes are
// ignored. No overlap checking and no notification; this is the store-level
// primitive used by loading and placement.
func (tl *Timeline) AddClip(trackIndex int, c Clip) {
	track := tl.Track(trackIndex)
	if track == nil {
		return
	}
	c.TrackIndex = trackIndex
	track.Append(c)
}

// RemoveClip removes a clip by id from whichever track holds it. Returns
// false (and emits nothing) if the id is absent.
func (tl *Timeline) RemoveClip(id string) bool {
	for _, track := range tl.tracks {
		if track.remove(id) {
			return true
		}
	}
	return false
}

// FindClip returns a copy of the clip with the given id and its track index.
func (tl *Timeline) FindClip(id string) (Clip, int, bool) {
	for i, track := range tl.tracks {
		if c, ok := track.Get(id); ok {
			return c, i, true
		}
	}
	return Clip{}, 0, false
}

// Clips flattens all tracks in track order, insertion order within a track.
func (tl *Timeline) Clips() []Clip {
	var out []Clip
	for _, track := range tl.tracks {
		out = append(out, track.clips...)
	}
	return out
}

// PlaceClip appends a clip to a track using the "after the last clip"
// policy: its start time becomes the end time of the track's last clip.
// Emits EventAdded and returns the placed clip.
func (tl *Timeline) PlaceClip(trackIndex int, c Clip) (Clip, bool) {
	track := tl.Track(trackIndex)
	if track == nil {
		return Clip{}, false
	}
	c.TrackIndex = trackIndex
	if c.ID == "" {
		c.ID = NewID()
	}
	if c.Duration < MinClipDurationMs {
		c.Duration = MinClipDurationMs
	}
	c.StartTime = 0
	if n := len(track.clips); n > 0 {
		c.StartTime = track.clips[n-1].EndTime()
	}
	if c.OutPoint <= c.InPoint {
		c.OutPoint = c.InPoint + c.Duration
	}
	track.Append(c)
	if tl.logger != nil {
		tl.logger.Info("clip placed", "clip_id", c.ID, "track", trackIndex, "start_ms", c.StartTime, "duration_ms", c.Duration)
	}
	tl.emitClip(EventAdded, c)
	return c, true
}

// ClearClips drops every clip from every track without emitting events.
// Used when restoring a persisted project over the live model.
func (tl *Timeline) ClearClips() {
	for _, track := range tl.tracks {
		track.clips = nil
		track.slots = make(map[string]int)
	}
}

// SetZoom clamps to [0.1, 10.0].
func (tl *Timeline) SetZoom(zoom float64) {
	tl.view.SetZoom(zoom)
}

func (tl *Timeline) Zoom() float64 {
	return tl.view.Zoom()
}

func (tl *Timeline) SetOffset(offset float64) {
	tl.view.SetOffset(offset)
}

func (tl *Timeline) Offset() float64 {
	return tl.view.Offset()
}

// SetPlayhead positions the playhead. Negative positions clamp to 0.
func (tl *Timeline) SetPlayhead(positionMs int64) {
	if positionMs < 0 {
		positionMs = 0
	}
	tl.playhead = positionMs
}

func (tl *Timeline) Playhead() int64 {
	return tl.playhead
}

// View returns a snapshot of the current coordinate mapper.
func (tl *Timeline) View() Mapper {
	return tl.view
}

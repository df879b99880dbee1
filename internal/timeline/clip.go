package timeline

import "github.com/google/uuid"

type TrackKind string

const (
	TrackVideo TrackKind = "video"
	TrackAudio TrackKind = "audio"
	TrackText  TrackKind = "text"
)

const (
	// MinClipDurationMs is the floor every trim and split clamps to.
	MinClipDurationMs = 500

	// DefaultTrackHeight is the render height of a track lane in pixels.
	DefaultTrackHeight = 60

	// Default clip colors, by source kind.
	ColorVideoClip = "#e85d04"
	ColorAudioClip = "#38b000"
)

// Clip is a time-bounded placement of a media source excerpt on a track.
// All times are in milliseconds. StartTime is the position on the timeline;
// InPoint/OutPoint are offsets into the source media.
type Clip struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FilePath   string `json:"file_path"`
	TrackIndex int    `json:"track_index"`
	StartTime  int64  `json:"start_time"`
	Duration   int64  `json:"duration"`
	InPoint    int64  `json:"in_point"`
	OutPoint   int64  `json:"out_point"`
	Color      string `json:"color"`
}

// EndTime returns the clip's end position on the timeline.
func (c Clip) EndTime() int64 {
	return c.StartTime + c.Duration
}

// NewID mints a fresh unique id for clips and tracks.
func NewID() string {
	return uuid.NewString()
}

// Track is an ordered lane holding clips of one kind. Clips are stored in
// insertion order in an indexable slice with an id-to-slot map, so per-sample
// gesture mutations replace a value in place instead of scanning.
type Track struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Kind   TrackKind `json:"kind"`
	Height int       `json:"height"`
	Muted  bool      `json:"muted"`
	Locked bool      `json:"locked"`

	clips []Clip
	slots map[string]int
}

func NewTrack(name string, kind TrackKind) *Track {
	return &Track{
		ID:     NewID(),
		Name:   name,
		Kind:   kind,
		Height: DefaultTrackHeight,
		slots:  make(map[string]int),
	}
}

// Append adds a clip at the end of the track's collection. No overlap
// checking is performed; placement policy is the caller's responsibility.
func (t *Track) Append(c Clip) {
	t.slots[c.ID] = len(t.clips)
	t.clips = append(t.clips, c)
}

// Get returns a copy of the clip with the given id.
func (t *Track) Get(id string) (Clip, bool) {
	slot, ok := t.slots[id]
	if !ok {
		return Clip{}, false
	}
	return t.clips[slot], true
}

// Clips returns the track's clips in insertion order. The slice is a copy;
// callers must re-fetch after any edit operation.
func (t *Track) Clips() []Clip {
	out := make([]Clip, len(t.clips))
	copy(out, t.clips)
	return out
}

func (t *Track) Len() int {
	return len(t.clips)
}

// replace overwrites the clip value in its existing slot.
func (t *Track) replace(c Clip) bool {
	slot, ok := t.slots[c.ID]
	if !ok {
		return false
	}
	t.clips[slot] = c
	return true
}

// insertAfter places c immediately after the clip in the given slot.
func (t *Track) insertAfter(slot int, c Clip) {
	t.clips = append(t.clips, Clip{})
	copy(t.clips[slot+2:], t.clips[slot+1:])
	t.clips[slot+1] = c
	for i := slot + 1; i < len(t.clips); i++ {
		t.slots[t.clips[i].ID] = i
	}
}

// remove deletes the clip with the given id, preserving insertion order of
// the remainder. Returns false if the id is not on this track.
func (t *Track) remove(id string) bool {
	slot, ok := t.slots[id]
	if !ok {
		return false
	}
	t.clips = append(t.clips[:slot], t.clips[slot+1:]...)
	delete(t.slots, id)
	for i := slot; i < len(t.clips); i++ {
		t.slots[t.clips[i].ID] = i
	}
	return true
}

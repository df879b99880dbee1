package timeline

type EventKind string

const (
	EventAdded    EventKind = "added"
	EventMoved    EventKind = "moved"
	EventTrimmed  EventKind = "trimmed"
	EventSplit    EventKind = "split"
	EventDeleted  EventKind = "deleted"
	EventChanged  EventKind = "changed"
	EventSelected EventKind = "selected"
)

// Event describes one externally visible timeline mutation. Clip is a
// snapshot taken at emission time; it is nil for EventDeleted and for an
// EventSelected that cleared the selection.
type Event struct {
	Kind       EventKind `json:"kind"`
	ClipID     string    `json:"clip_id,omitempty"`
	TrackIndex int       `json:"track_index"`
	Clip       *Clip     `json:"clip,omitempty"`
}

// Sink receives events synchronously on the mutating goroutine, after the
// mutation has been applied. Sinks may read the timeline but must not
// mutate it.
type Sink func(Event)

// Subscribe registers a collaborator (auto-save, inspector, event feed).
func (tl *Timeline) Subscribe(sink Sink) {
	tl.sinks = append(tl.sinks, sink)
}

func (tl *Timeline) emit(ev Event) {
	for _, sink := range tl.sinks {
		sink(ev)
	}
}

func (tl *Timeline) emitClip(kind EventKind, c Clip) {
	snapshot := c
	tl.emit(Event{Kind: kind, ClipID: c.ID, TrackIndex: c.TrackIndex, Clip: &snapshot})
}

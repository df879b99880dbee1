package timeline

// SplitClip divides a clip in two at an absolute timeline position. The
// split point must fall strictly inside the clip; otherwise the call is a
// silent no-op. The first half keeps the original id and slot, the second
// half gets a fresh id and is inserted immediately after it. Emits a single
// EventSplit carrying the second half.
func (tl *Timeline) SplitClip(id string, splitTimeMs int64) {
	for _, track := range tl.tracks {
		slot, ok := track.slots[id]
		if !ok {
			continue
		}
		original := track.clips[slot]
		if splitTimeMs <= original.StartTime || splitTimeMs >= original.EndTime() {
			return
		}

		firstDuration := splitTimeMs - original.StartTime

		first := original
		first.Duration = firstDuration
		first.OutPoint = first.InPoint + firstDuration

		second := original
		second.ID = NewID()
		second.Name = original.Name + " (2)"
		second.StartTime = splitTimeMs
		second.Duration = original.Duration - firstDuration
		second.InPoint = original.InPoint + firstDuration
		second.OutPoint = original.OutPoint

		track.clips[slot] = first
		track.insertAfter(slot, second)

		if tl.logger != nil {
			tl.logger.Info("clip split", "clip_id", id, "new_clip_id", second.ID, "at_ms", splitTimeMs)
		}
		tl.emitClip(EventSplit, second)
		return
	}
}

// DeleteClip removes a clip by id from whichever track holds it. A distinct
// EventDeleted is emitted first, then a generic EventChanged, so
// collaborators can tell removal apart from other mutations. Absent ids are
// a silent no-op with no events.
func (tl *Timeline) DeleteClip(id string) {
	for i, track := range tl.tracks {
		if !track.remove(id) {
			continue
		}
		if tl.logger != nil {
			tl.logger.Info("clip deleted", "clip_id", id, "track", i)
		}
		tl.emit(Event{Kind: EventDeleted, ClipID: id, TrackIndex: i})
		tl.emit(Event{Kind: EventChanged, ClipID: id, TrackIndex: i})
		return
	}
}

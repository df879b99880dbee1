// Package project persists the timeline as plain clip records and restores
// it, tolerating partially damaged saves: a malformed record is skipped
// with a diagnostic and loading continues.
package project

import (
	"log/slog"

	"github.com/cutline/cutline/internal/timeline"
)

// ClipRecord is the persisted form of a clip. Field set and meaning match
// the in-memory model one to one.
type ClipRecord struct {
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

func recordFromClip(c timeline.Clip) ClipRecord {
	return ClipRecord{
		ID:         c.ID,
		Name:       c.Name,
		FilePath:   c.FilePath,
		TrackIndex: c.TrackIndex,
		StartTime:  c.StartTime,
		Duration:   c.Duration,
		InPoint:    c.InPoint,
		OutPoint:   c.OutPoint,
		Color:      c.Color,
	}
}

func (r ClipRecord) toClip() timeline.Clip {
	return timeline.Clip{
		ID:         r.ID,
		Name:       r.Name,
		FilePath:   r.FilePath,
		TrackIndex: r.TrackIndex,
		StartTime:  r.StartTime,
		Duration:   r.Duration,
		InPoint:    r.InPoint,
		OutPoint:   r.OutPoint,
		Color:      r.Color,
	}
}

// Snapshot returns the clip records for every clip on the timeline, track
// order first, insertion order within a track.
func Snapshot(tl *timeline.Timeline) []ClipRecord {
	clips := tl.Clips()
	records := make([]ClipRecord, len(clips))
	for i, c := range clips {
		records[i] = recordFromClip(c)
	}
	return records
}

// Load rebuilds the timeline's clips from records. Tracks are auto-created
// up to the highest referenced index, alternating video/audio by index
// parity. Malformed records (empty id, negative track index, non-positive
// duration) are skipped with a warning; a negative start time is clamped
// to zero. Loading never fails as a whole.
func Load(tl *timeline.Timeline, records []ClipRecord, logger *slog.Logger) {
	for _, r := range records {
		if r.ID == "" || r.TrackIndex < 0 || r.Duration <= 0 {
			if logger != nil {
				logger.Warn("skipping malformed clip record",
					"clip_id", r.ID, "track", r.TrackIndex, "duration_ms", r.Duration)
			}
			continue
		}

		for tl.TrackCount() <= r.TrackIndex {
			index := tl.TrackCount()
			kind := timeline.TrackVideo
			name := "Video"
			if index%2 == 1 {
				kind = timeline.TrackAudio
				name = "Audio"
			}
			tl.AddTrack(name, kind)
		}

		clip := r.toClip()
		if clip.StartTime < 0 {
			clip.StartTime = 0
		}
		tl.AddClip(r.TrackIndex, clip)
	}
}

// Package assets tracks the media files available to the timeline and the
// conventions for turning one into a clip: which track it lands on, what
// its initial duration is, and what color it renders with.
package assets

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/cutline/cutline/internal/timeline"
)

type Kind string

const (
	KindVideo   Kind = "video"
	KindAudio   Kind = "audio"
	KindImage   Kind = "image"
	KindUnknown Kind = "unknown"
)

// DefaultStillDurationMs is the clip duration for images and assets with no
// known duration.
const DefaultStillDurationMs = 5000

type Asset struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FilePath   string    `json:"file_path"`
	Kind       Kind      `json:"kind"`
	DurationMs int64     `json:"duration_ms"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

var (
	videoExtensions = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true, ".mkv": true,
		".webm": true, ".wmv": true, ".flv": true, ".m4v": true,
	}
	audioExtensions = map[string]bool{
		".mp3": true, ".wav": true, ".ogg": true, ".flac": true,
		".aac": true, ".m4a": true, ".wma": true,
	}
	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".bmp": true, ".webp": true, ".svg": true, ".tiff": true,
	}
)

// DetectKind classifies a media file by extension.
func DetectKind(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case videoExtensions[ext]:
		return KindVideo
	case audioExtensions[ext]:
		return KindAudio
	case imageExtensions[ext]:
		return KindImage
	default:
		return KindUnknown
	}
}

// ClipDuration returns the initial duration a clip cut from this asset
// gets: the probed media duration when one is known, otherwise the still
// default.
func (a Asset) ClipDuration() int64 {
	if a.DurationMs > 0 {
		return a.DurationMs
	}
	return DefaultStillDurationMs
}

// TargetTrack returns the track an asset lands on by convention: visual
// material on the video track, audio on the audio track.
func (a Asset) TargetTrack() int {
	if a.Kind == KindAudio {
		return 1
	}
	return 0
}

// ClipColor returns the render color for clips cut from this asset.
func (a Asset) ClipColor() string {
	if a.Kind == KindVideo {
		return timeline.ColorVideoClip
	}
	return timeline.ColorAudioClip
}

// ToClip builds the clip an asset produces when placed on the timeline.
// The start time is left at zero; the timeline's placement policy assigns
// the real position.
func (a Asset) ToClip() timeline.Clip {
	duration := a.ClipDuration()
	return timeline.Clip{
		ID:         timeline.NewID(),
		Name:       a.Name,
		FilePath:   a.FilePath,
		TrackIndex: a.TargetTrack(),
		Duration:   duration,
		InPoint:    0,
		OutPoint:   duration,
		Color:      a.ClipColor(),
	}
}

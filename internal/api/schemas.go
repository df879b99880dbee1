package api

import (
	"time"

	"github.com/cutline/cutline/internal/assets"
	"github.com/cutline/cutline/internal/timeline"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type ClipResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FilePath   string `json:"file_path"`
	TrackIndex int    `json:"track_index"`
	StartTime  int64  `json:"start_time"`
	Duration   int64  `json:"duration"`
	EndTime    int64  `json:"end_time"`
	InPoint    int64  `json:"in_point"`
	OutPoint   int64  `json:"out_point"`
	Color      string `json:"color"`
}

type TrackResponse struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Kind   string         `json:"kind"`
	Height int            `json:"height"`
	Muted  bool           `json:"muted"`
	Locked bool           `json:"locked"`
	Clips  []ClipResponse `json:"clips"`
}

type TimelineResponse struct {
	Tracks   []TrackResponse `json:"tracks"`
	Zoom     float64         `json:"zoom"`
	Offset   float64         `json:"offset"`
	Playhead int64           `json:"playhead_ms"`
}

type ViewRequest struct {
	Zoom   *float64 `json:"zoom,omitempty"`
	Offset *float64 `json:"offset,omitempty"`
}

type PlayheadRequest struct {
	PositionMs int64 `json:"position_ms"`
}

type AddTrackRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type AddClipRequest struct {
	Name       string `json:"name"`
	FilePath   string `json:"file_path"`
	TrackIndex int    `json:"track_index"`
	Duration   int64  `json:"duration"`
	InPoint    int64  `json:"in_point"`
	OutPoint   int64  `json:"out_point"`
	Color      string `json:"color"`
}

type SplitClipRequest struct {
	TimeMs int64 `json:"time_ms"`
}

type GesturePressRequest struct {
	TrackIndex int     `json:"track_index"`
	X          float64 `json:"x"`
}

type GestureMoveRequest struct {
	X float64 `json:"x"`
}

type GesturePressResponse struct {
	Selected bool          `json:"selected"`
	Clip     *ClipResponse `json:"clip,omitempty"`
}

type AddAssetRequest struct {
	Name       string `json:"name"`
	FilePath   string `json:"file_path"`
	DurationMs int64  `json:"duration_ms"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SizeBytes  int64  `json:"size_bytes"`
}

type AssetResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FilePath   string `json:"file_path"`
	Kind       string `json:"kind"`
	DurationMs int64  `json:"duration_ms"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SizeBytes  int64  `json:"size_bytes"`
	CreatedAt  string `json:"created_at"`
}

type AssetsResponse struct {
	Assets []AssetResponse `json:"assets"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func ClipToResponse(c timeline.Clip) ClipResponse {
	return ClipResponse{
		ID:         c.ID,
		Name:       c.Name,
		FilePath:   c.FilePath,
		TrackIndex: c.TrackIndex,
		StartTime:  c.StartTime,
		Duration:   c.Duration,
		EndTime:    c.EndTime(),
		InPoint:    c.InPoint,
		OutPoint:   c.OutPoint,
		Color:      c.Color,
	}
}

func TrackToResponse(t *timeline.Track) TrackResponse {
	clips := t.Clips()
	resp := TrackResponse{
		ID:     t.ID,
		Name:   t.Name,
		Kind:   string(t.Kind),
		Height: t.Height,
		Muted:  t.Muted,
		Locked: t.Locked,
		Clips:  make([]ClipResponse, len(clips)),
	}
	for i, c := range clips {
		resp.Clips[i] = ClipToResponse(c)
	}
	return resp
}

func TimelineToResponse(tl *timeline.Timeline) TimelineResponse {
	resp := TimelineResponse{
		Tracks:   make([]TrackResponse, tl.TrackCount()),
		Zoom:     tl.Zoom(),
		Offset:   tl.Offset(),
		Playhead: tl.Playhead(),
	}
	for i := 0; i < tl.TrackCount(); i++ {
		resp.Tracks[i] = TrackToResponse(tl.Track(i))
	}
	return resp
}

func AssetToResponse(a *assets.Asset) AssetResponse {
	return AssetResponse{
		ID:         a.ID,
		Name:       a.Name,
		FilePath:   a.FilePath,
		Kind:       string(a.Kind),
		DurationMs: a.DurationMs,
		Width:      a.Width,
		Height:     a.Height,
		SizeBytes:  a.SizeBytes,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

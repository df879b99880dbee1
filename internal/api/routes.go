package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cutline/cutline/internal/assets"
	"github.com/cutline/cutline/internal/config"
	"github.com/cutline/cutline/internal/export"
	"github.com/cutline/cutline/internal/timeline"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))
	r.Get("/timeline", timelineHandler(cfg))
	r.Put("/timeline/view", viewHandler(cfg))
	r.Put("/timeline/playhead", playheadHandler(cfg))

	r.Post("/tracks", addTrackHandler(cfg))

	r.Post("/clips", addClipHandler(cfg))
	r.Delete("/clips/{id}", deleteClipHandler(cfg))
	r.Post("/clips/{id}/split", splitClipHandler(cfg))

	r.Post("/gesture/press", gesturePressHandler(cfg))
	r.Post("/gesture/move", gestureMoveHandler(cfg))
	r.Post("/gesture/release", gestureReleaseHandler(cfg))
	r.Post("/gesture/cancel", gestureCancelHandler(cfg))

	r.Post("/assets", addAssetHandler(cfg))
	r.Get("/assets", listAssetsHandler(cfg))
	r.Post("/assets/{id}/place", placeAssetHandler(cfg))
	if cfg.Media != nil {
		r.Get("/media/{id}", mediaHandler(cfg))
	}

	r.Get("/export/edl", exportEDLHandler(cfg))
	r.Post("/project/save", projectSaveHandler(cfg))
	r.Post("/project/load", projectLoadHandler(cfg))

	if cfg.Hub != nil {
		r.Get("/events", cfg.Hub.ServeHTTP)
	}

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: config.Version,
			UptimeS: uptime,
		})
	}
}

func timelineHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp TimelineResponse
		cfg.withEngine(func(tl *timeline.Timeline) {
			resp = TimelineToResponse(tl)
		})
		WriteJSON(w, http.StatusOK, resp)
	}
}

func viewHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ViewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		var resp TimelineResponse
		cfg.withEngine(func(tl *timeline.Timeline) {
			if req.Zoom != nil {
				tl.SetZoom(*req.Zoom)
			}
			if req.Offset != nil {
				tl.SetOffset(*req.Offset)
			}
			resp = TimelineToResponse(tl)
		})
		WriteJSON(w, http.StatusOK, resp)
	}
}

func playheadHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlayheadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		var position int64
		cfg.withEngine(func(tl *timeline.Timeline) {
			tl.SetPlayhead(req.PositionMs)
			position = tl.Playhead()
		})
		WriteJSON(w, http.StatusOK, PlayheadRequest{PositionMs: position})
	}
}

func addTrackHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddTrackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		kind := timeline.TrackKind(req.Kind)
		switch kind {
		case timeline.TrackVideo, timeline.TrackAudio, timeline.TrackText:
		default:
			WriteError(w, http.StatusBadRequest, "unknown track kind", "BAD_REQUEST")
			return
		}
		var resp TrackResponse
		cfg.withEngine(func(tl *timeline.Timeline) {
			resp = TrackToResponse(tl.AddTrack(req.Name, kind))
		})
		WriteJSON(w, http.StatusCreated, resp)
	}
}

func addClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddClipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		var resp ClipResponse
		var placed bool
		cfg.withEngine(func(tl *timeline.Timeline) {
			clip, ok := tl.PlaceClip(req.TrackIndex, timeline.Clip{
				Name:     req.Name,
				FilePath: req.FilePath,
				Duration: req.Duration,
				InPoint:  req.InPoint,
				OutPoint: req.OutPoint,
				Color:    req.Color,
			})
			placed = ok
			if ok {
				resp = ClipToResponse(clip)
			}
		})
		if !placed {
			WriteError(w, http.StatusNotFound, "track not found", "NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusCreated, resp)
	}
}

func deleteClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		// Deleting an absent id is a silent no-op by contract.
		cfg.withEngine(func(tl *timeline.Timeline) {
			tl.DeleteClip(id)
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func splitClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req SplitClipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		var resp TimelineResponse
		cfg.withEngine(func(tl *timeline.Timeline) {
			tl.SplitClip(id, req.TimeMs)
			resp = TimelineToResponse(tl)
		})
		// An out-of-bounds split point is a documented no-op; the caller
		// gets the (unchanged) timeline either way.
		WriteJSON(w, http.StatusOK, resp)
	}
}

func gesturePressHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GesturePressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		var resp GesturePressResponse
		cfg.withEngine(func(tl *timeline.Timeline) {
			clip, ok := tl.BeginGesture(req.TrackIndex, req.X)
			resp.Selected = ok
			if ok {
				c := ClipToResponse(clip)
				resp.Clip = &c
			}
		})
		WriteJSON(w, http.StatusOK, resp)
	}
}

func gestureMoveHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GestureMoveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		cfg.withEngine(func(tl *timeline.Timeline) {
			tl.UpdateGesture(req.X)
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func gestureReleaseHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.withEngine(func(tl *timeline.Timeline) {
			tl.EndGesture()
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func gestureCancelHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.withEngine(func(tl *timeline.Timeline) {
			tl.CancelGesture()
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func addAssetHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddAssetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.FilePath == "" {
			WriteError(w, http.StatusBadRequest, "file_path is required", "BAD_REQUEST")
			return
		}
		name := req.Name
		if name == "" {
			name = req.FilePath
		}
		asset := &assets.Asset{
			ID:         timeline.NewID(),
			Name:       name,
			FilePath:   req.FilePath,
			Kind:       assets.DetectKind(req.FilePath),
			DurationMs: req.DurationMs,
			Width:      req.Width,
			Height:     req.Height,
			SizeBytes:  req.SizeBytes,
			CreatedAt:  time.Now(),
		}
		if err := cfg.Assets.Create(r.Context(), asset); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to store asset", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusCreated, AssetToResponse(asset))
	}
}

func listAssetsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := cfg.Assets.List(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list assets", "INTERNAL_ERROR")
			return
		}
		resp := AssetsResponse{Assets: make([]AssetResponse, len(list))}
		for i, a := range list {
			resp.Assets[i] = AssetToResponse(a)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func placeAssetHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		asset, err := cfg.Assets.Get(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to resolve asset", "INTERNAL_ERROR")
			return
		}
		if asset == nil {
			WriteError(w, http.StatusNotFound, "asset not found", "NOT_FOUND")
			return
		}
		clip := asset.ToClip()
		var resp ClipResponse
		var placed bool
		cfg.withEngine(func(tl *timeline.Timeline) {
			out, ok := tl.PlaceClip(clip.TrackIndex, clip)
			placed = ok
			if ok {
				resp = ClipToResponse(out)
			}
		})
		if !placed {
			WriteError(w, http.StatusNotFound, "target track not found", "NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusCreated, resp)
	}
}

func mediaHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := cfg.Media.ServeAsset(w, r, id); err != nil {
			cfg.Logger.Error("media serve failed", "asset_id", id, "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to serve media", "INTERNAL_ERROR")
		}
	}
}

func exportEDLHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trackIndex := 0
		if s := r.URL.Query().Get("track"); s != "" {
			if v, err := strconv.Atoi(s); err == nil {
				trackIndex = v
			}
		}
		fps := 30.0
		if s := r.URL.Query().Get("fps"); s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				fps = v
			}
		}
		title := r.URL.Query().Get("title")
		if title == "" {
			title = "cutline"
		}

		var clips []timeline.Clip
		var found bool
		cfg.withEngine(func(tl *timeline.Timeline) {
			track := tl.Track(trackIndex)
			if track == nil {
				return
			}
			found = true
			clips = track.Clips()
		})
		if !found {
			WriteError(w, http.StatusNotFound, "track not found", "NOT_FOUND")
			return
		}

		edl := export.GenerateEDL(clips, title, fps)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(edl))
	}
}

func projectSaveHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		cfg.withEngine(func(tl *timeline.Timeline) {
			err = cfg.Project.Save(r.Context(), tl)
		})
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to save project", "INTERNAL_ERROR")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func projectLoadHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		var resp TimelineResponse
		cfg.withEngine(func(tl *timeline.Timeline) {
			err = cfg.Project.Restore(r.Context(), tl)
			resp = TimelineToResponse(tl)
		})
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to load project", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cutline/cutline/internal/assets"
	"github.com/cutline/cutline/internal/timeline"
)

type memAssetRepo struct {
	byID map[string]*assets.Asset
}

func newMemAssetRepo() *memAssetRepo {
	return &memAssetRepo{byID: make(map[string]*assets.Asset)}
}

func (m *memAssetRepo) Create(ctx context.Context, a *assets.Asset) error {
	m.byID[a.ID] = a
	return nil
}

func (m *memAssetRepo) Get(ctx context.Context, id string) (*assets.Asset, error) {
	return m.byID[id], nil
}

func (m *memAssetRepo) List(ctx context.Context) ([]*assets.Asset, error) {
	var out []*assets.Asset
	for _, a := range m.byID {
		out = append(out, a)
	}
	return out, nil
}

func (m *memAssetRepo) Delete(ctx context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

func testServerConfig(t *testing.T) (ServerConfig, *timeline.Timeline) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := timeline.New(logger)
	return ServerConfig{
		Port:      0,
		Engine:    engine,
		EngineMu:  &sync.Mutex{},
		Assets:    newMemAssetRepo(),
		Logger:    logger,
		StartTime: time.Now(),
	}, engine
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	router.ServeHTTP(rr, req)
	return rr
}

func decodeJSONBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestHealthHandler(t *testing.T) {
	cfg, _ := testServerConfig(t)
	router := NewRouter(cfg)

	rr := doJSON(t, router, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := decodeJSONBody(t, rr)
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestTimelineHandler_Defaults(t *testing.T) {
	cfg, _ := testServerConfig(t)
	router := NewRouter(cfg)

	rr := doJSON(t, router, http.MethodGet, "/timeline", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp TimelineResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(resp.Tracks))
	}
	if resp.Tracks[0].Kind != "video" || resp.Tracks[1].Kind != "audio" {
		t.Errorf("default track kinds = %s/%s", resp.Tracks[0].Kind, resp.Tracks[1].Kind)
	}
	if resp.Zoom != 1.0 {
		t.Errorf("zoom = %v, want 1.0", resp.Zoom)
	}
}

func TestViewHandler_ClampsZoom(t *testing.T) {
	cfg, engine := testServerConfig(t)
	router := NewRouter(cfg)

	zoom := 99.0
	rr := doJSON(t, router, http.MethodPut, "/timeline/view", ViewRequest{Zoom: &zoom})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if engine.Zoom() != timeline.MaxZoom {
		t.Errorf("zoom = %v, want clamped to %v", engine.Zoom(), timeline.MaxZoom)
	}
}

func TestAddClipAndSplit(t *testing.T) {
	cfg, engine := testServerConfig(t)
	router := NewRouter(cfg)

	rr := doJSON(t, router, http.MethodPost, "/clips", AddClipRequest{
		Name:       "A",
		FilePath:   "/media/a.mp4",
		TrackIndex: 0,
		Duration:   5000,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("add clip status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	var clip ClipResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &clip); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if clip.StartTime != 0 || clip.Duration != 5000 {
		t.Fatalf("clip = %+v", clip)
	}

	rr = doJSON(t, router, http.MethodPost, "/clips/"+clip.ID+"/split", SplitClipRequest{TimeMs: 2000})
	if rr.Code != http.StatusOK {
		t.Fatalf("split status = %d: %s", rr.Code, rr.Body.String())
	}
	if got := engine.Track(0).Len(); got != 2 {
		t.Errorf("track 0 has %d clips after split, want 2", got)
	}

	// Out-of-bounds split point is a no-op, still 200.
	rr = doJSON(t, router, http.MethodPost, "/clips/"+clip.ID+"/split", SplitClipRequest{TimeMs: 99999})
	if rr.Code != http.StatusOK {
		t.Fatalf("no-op split status = %d", rr.Code)
	}
	if got := engine.Track(0).Len(); got != 2 {
		t.Errorf("track 0 has %d clips after no-op split, want 2", got)
	}
}

func TestDeleteClipHandler_AbsentIsNoContent(t *testing.T) {
	cfg, _ := testServerConfig(t)
	router := NewRouter(cfg)

	rr := doJSON(t, router, http.MethodDelete, "/clips/does-not-exist", nil)
	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestGestureEndpoints(t *testing.T) {
	cfg, engine := testServerConfig(t)
	router := NewRouter(cfg)

	engine.AddClip(0, timeline.Clip{
		ID: "a", Name: "A", FilePath: "/a.mp4",
		StartTime: 1000, Duration: 4000, OutPoint: 4000,
	})

	rr := doJSON(t, router, http.MethodPost, "/gesture/press", GesturePressRequest{TrackIndex: 0, X: 300})
	if rr.Code != http.StatusOK {
		t.Fatalf("press status = %d", rr.Code)
	}
	var press GesturePressResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &press); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !press.Selected || press.Clip == nil || press.Clip.ID != "a" {
		t.Fatalf("press response = %+v", press)
	}

	// Drag the body 50px right: +500ms at zoom 1.
	rr = doJSON(t, router, http.MethodPost, "/gesture/move", GestureMoveRequest{X: 350})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("move status = %d", rr.Code)
	}
	rr = doJSON(t, router, http.MethodPost, "/gesture/release", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("release status = %d", rr.Code)
	}

	got, _, ok := engine.FindClip("a")
	if !ok || got.StartTime != 1500 {
		t.Errorf("clip start = %d (found=%v), want 1500", got.StartTime, ok)
	}
}

func TestAssetLifecycle(t *testing.T) {
	cfg, engine := testServerConfig(t)
	router := NewRouter(cfg)

	rr := doJSON(t, router, http.MethodPost, "/assets", AddAssetRequest{
		Name:       "Voiceover",
		FilePath:   "/media/vo.mp3",
		DurationMs: 12000,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("add asset status = %d: %s", rr.Code, rr.Body.String())
	}
	var asset AssetResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &asset); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if asset.Kind != "audio" {
		t.Errorf("kind = %s, want audio", asset.Kind)
	}

	rr = doJSON(t, router, http.MethodPost, "/assets/"+asset.ID+"/place", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("place status = %d: %s", rr.Code, rr.Body.String())
	}
	var clip ClipResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &clip); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if clip.TrackIndex != 1 {
		t.Errorf("audio clip landed on track %d, want 1", clip.TrackIndex)
	}
	if clip.Duration != 12000 {
		t.Errorf("duration = %d, want 12000", clip.Duration)
	}
	if engine.Track(1).Len() != 1 {
		t.Errorf("audio track has %d clips, want 1", engine.Track(1).Len())
	}
}

func TestAddAssetRequiresFilePath(t *testing.T) {
	cfg, _ := testServerConfig(t)
	router := NewRouter(cfg)

	rr := doJSON(t, router, http.MethodPost, "/assets", AddAssetRequest{Name: "x"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestExportEDLHandler(t *testing.T) {
	cfg, engine := testServerConfig(t)
	router := NewRouter(cfg)

	engine.AddClip(0, timeline.Clip{
		ID: "a", Name: "Intro", FilePath: "/media/intro.mp4",
		StartTime: 0, Duration: 2000, OutPoint: 2000,
	})

	rr := doJSON(t, router, http.MethodGet, "/export/edl?title=MyCut", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "TITLE: MyCut") {
		t.Errorf("missing title: %q", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "* FROM CLIP NAME:  Intro") {
		t.Errorf("missing clip: %q", rr.Body.String())
	}

	rr = doJSON(t, router, http.MethodGet, "/export/edl?track=9", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing track status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestAddTrackHandler(t *testing.T) {
	cfg, engine := testServerConfig(t)
	router := NewRouter(cfg)

	rr := doJSON(t, router, http.MethodPost, "/tracks", AddTrackRequest{Name: "Titles", Kind: "text"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	if engine.TrackCount() != 3 {
		t.Errorf("track count = %d, want 3", engine.TrackCount())
	}

	rr = doJSON(t, router, http.MethodPost, "/tracks", AddTrackRequest{Name: "Bad", Kind: "midi"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown kind status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

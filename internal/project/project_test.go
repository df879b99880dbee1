package project

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/cutline/cutline/internal/db"
	"github.com/cutline/cutline/internal/timeline"
)

func setupTestDB(t *testing.T) (*db.DB, Repository) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	database, err := db.New(dbPath, nil)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	repo := NewRepository(database.Conn())
	return database, repo
}

func record(id string, track int, start, duration int64) ClipRecord {
	return ClipRecord{
		ID:         id,
		Name:       "clip " + id,
		FilePath:   "/media/" + id + ".mp4",
		TrackIndex: track,
		StartTime:  start,
		Duration:   duration,
		InPoint:    0,
		OutPoint:   duration,
		Color:      "#e85d04",
	}
}

func TestRoundTrip(t *testing.T) {
	database, repo := setupTestDB(t)
	defer database.Close()

	tl := timeline.New(nil)
	tl.AddTrack("Video 2", timeline.TrackVideo)
	tl.AddClip(0, record("a", 0, 0, 5000).toClip())
	tl.AddClip(1, record("b", 1, 1000, 2000).toClip())
	tl.AddClip(2, record("c", 2, 500, 3000).toClip())

	svc := NewService(repo, nil)
	if err := svc.Save(context.Background(), tl); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	restored := timeline.New(nil)
	restored.AddTrack("Video 2", timeline.TrackVideo)
	if err := svc.Restore(context.Background(), restored); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	want := Snapshot(tl)
	got := Snapshot(restored)
	if len(got) != len(want) {
		t.Fatalf("restored %d clips, want %d", len(got), len(want))
	}

	// The round-trip contract is set equality, order not significant.
	sort.Slice(want, func(i, j int) bool { return want[i].ID < want[j].ID })
	sort.Slice(got, func(i, j int) bool { return got[i].ID < got[j].ID })
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadAutoCreatesTracksByParity(t *testing.T) {
	tl := timeline.New(nil) // 2 default tracks

	Load(tl, []ClipRecord{record("a", 5, 0, 1000)}, nil)

	if tl.TrackCount() != 6 {
		t.Fatalf("TrackCount() = %d, want 6", tl.TrackCount())
	}
	if kind := tl.Track(4).Kind; kind != timeline.TrackVideo {
		t.Errorf("track 4 kind = %s, want %s", kind, timeline.TrackVideo)
	}
	if kind := tl.Track(5).Kind; kind != timeline.TrackAudio {
		t.Errorf("track 5 kind = %s, want %s", kind, timeline.TrackAudio)
	}
	if got, _, ok := tl.FindClip("a"); !ok || got.TrackIndex != 5 {
		t.Errorf("clip a on track %d (found=%v), want 5", got.TrackIndex, ok)
	}
}

func TestLoadSkipsMalformedRecords(t *testing.T) {
	tl := timeline.New(nil)

	records := []ClipRecord{
		record("good", 0, 0, 1000),
		{ID: "", TrackIndex: 0, Duration: 1000},       // empty id
		{ID: "negtrack", TrackIndex: -1, Duration: 5}, // negative track
		{ID: "nodur", TrackIndex: 0, Duration: 0},     // no duration
		record("also-good", 1, 2000, 1500),
	}
	Load(tl, records, nil)

	clips := tl.Clips()
	if len(clips) != 2 {
		t.Fatalf("loaded %d clips, want 2", len(clips))
	}
}

func TestLoadClampsNegativeStart(t *testing.T) {
	tl := timeline.New(nil)

	rec := record("a", 0, -500, 1000)
	Load(tl, []ClipRecord{rec}, nil)

	got, _, ok := tl.FindClip("a")
	if !ok {
		t.Fatal("clip a not loaded")
	}
	if got.StartTime != 0 {
		t.Errorf("StartTime = %d, want 0", got.StartTime)
	}
}

func TestAutosaveSink(t *testing.T) {
	database, repo := setupTestDB(t)
	defer database.Close()

	tl := timeline.New(nil)
	svc := NewService(repo, nil)
	tl.Subscribe(svc.AutosaveSink(tl))

	if _, ok := tl.PlaceClip(0, record("a", 0, 0, 5000).toClip()); !ok {
		t.Fatal("PlaceClip failed")
	}

	stored, err := repo.LoadClips(context.Background())
	if err != nil {
		t.Fatalf("LoadClips() error = %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored %d clips after place, want 1", len(stored))
	}

	tl.DeleteClip(stored[0].ID)

	stored, err = repo.LoadClips(context.Background())
	if err != nil {
		t.Fatalf("LoadClips() error = %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("stored %d clips after delete, want 0", len(stored))
	}
}

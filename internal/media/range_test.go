package media

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cutline/cutline/internal/assets"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		size      int64
		wantStart int64
		wantEnd   int64
		wantNil   bool
		wantErr   error
	}{
		{"empty header", "", 1000, 0, 0, true, nil},
		{"full range", "bytes=0-999", 1000, 0, 999, false, nil},
		{"partial start", "bytes=500-", 1000, 500, 999, false, nil},
		{"suffix range", "bytes=-500", 1000, 500, 999, false, nil},
		{"single byte", "bytes=0-0", 1000, 0, 0, false, nil},
		{"beyond size clamped", "bytes=0-2000", 1000, 0, 999, false, nil},
		{"suffix larger than file", "bytes=-2000", 500, 0, 499, false, nil},
		{"multi range takes first", "bytes=0-99, 200-299", 1000, 0, 99, false, nil},

		{"unsatisfiable start", "bytes=1000-", 1000, 0, 0, false, ErrUnsatisfiable},
		{"invalid format no bytes", "invalid", 1000, 0, 0, false, ErrInvalidRange},
		{"wrong unit", "chars=0-100", 1000, 0, 0, false, ErrInvalidRange},
		{"invalid start", "bytes=abc-100", 1000, 0, 0, false, ErrInvalidRange},
		{"negative suffix", "bytes=-0", 1000, 0, 0, false, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.header, tt.size)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("ParseRange() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseRange() unexpected error: %v", err)
				return
			}

			if tt.wantNil {
				if got != nil {
					t.Errorf("ParseRange() = %v, want nil", got)
				}
				return
			}

			if got == nil {
				t.Fatal("ParseRange() = nil, want a range")
			}
			if got.Start != tt.wantStart || got.End != tt.wantEnd {
				t.Errorf("ParseRange() = [%d,%d], want [%d,%d]", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

type fakeAssetRepo struct {
	asset *assets.Asset
}

func (f *fakeAssetRepo) Create(ctx context.Context, a *assets.Asset) error { return nil }
func (f *fakeAssetRepo) Get(ctx context.Context, id string) (*assets.Asset, error) {
	if f.asset != nil && f.asset.ID == id {
		return f.asset, nil
	}
	return nil, nil
}
func (f *fakeAssetRepo) List(ctx context.Context) ([]*assets.Asset, error) {
	return nil, nil
}
func (f *fakeAssetRepo) Delete(ctx context.Context, id string) error { return nil }

func TestServeAsset_FullAndRange(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "clip.mp4")
	if err := os.WriteFile(path, []byte("0123456789"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	repo := &fakeAssetRepo{asset: &assets.Asset{
		ID: "a1", Name: "clip", FilePath: path, Kind: assets.KindVideo, CreatedAt: time.Now(),
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewServer(repo, logger)

	t.Run("whole file", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/media/a1", nil)
		if err := srv.ServeAsset(rr, req, "a1"); err != nil {
			t.Fatalf("ServeAsset() error = %v", err)
		}
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
		if rr.Body.String() != "0123456789" {
			t.Errorf("body = %q", rr.Body.String())
		}
	})

	t.Run("byte range", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/media/a1", nil)
		req.Header.Set("Range", "bytes=2-5")
		if err := srv.ServeAsset(rr, req, "a1"); err != nil {
			t.Fatalf("ServeAsset() error = %v", err)
		}
		if rr.Code != http.StatusPartialContent {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusPartialContent)
		}
		if rr.Body.String() != "2345" {
			t.Errorf("body = %q, want 2345", rr.Body.String())
		}
		if got := rr.Header().Get("Content-Range"); got != "bytes 2-5/10" {
			t.Errorf("Content-Range = %q", got)
		}
	})

	t.Run("unknown asset", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/media/nope", nil)
		if err := srv.ServeAsset(rr, req, "nope"); err != nil {
			t.Fatalf("ServeAsset() error = %v", err)
		}
		if rr.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
		}
	})
}

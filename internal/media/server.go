// Package media serves the source files behind timeline assets over HTTP
// with Range support, so the player component can seek without the engine
// touching decoding.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cutline/cutline/internal/assets"
)

type Service interface {
	ServeAsset(w http.ResponseWriter, r *http.Request, assetID string) error
}

type Server struct {
	repo   assets.Repository
	logger *slog.Logger
}

func NewServer(repo assets.Repository, logger *slog.Logger) *Server {
	return &Server{repo: repo, logger: logger}
}

// ServeAsset resolves an asset id and streams its file, honoring a Range
// header. Unknown assets and missing files answer 404.
func (s *Server) ServeAsset(w http.ResponseWriter, r *http.Request, assetID string) error {
	asset, err := s.repo.Get(r.Context(), assetID)
	if err != nil {
		return fmt.Errorf("failed to resolve asset: %w", err)
	}
	if asset == nil {
		http.Error(w, "asset not found", http.StatusNotFound)
		return nil
	}
	return s.serveFile(r.Context(), w, r, asset.FilePath)
}

func (s *Server) serveFile(_ context.Context, w http.ResponseWriter, r *http.Request, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "file not found", http.StatusNotFound)
			return nil
		}
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	size := stat.Size()
	contentType := mime.TypeByExtension(filepath.Ext(filePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Type", contentType)

	parsedRange, err := ParseRange(r.Header.Get("Range"), size)

	if err == ErrUnsatisfiable {
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		http.Error(w, "Range Not Satisfiable", http.StatusRequestedRangeNotSatisfiable)
		return nil
	}

	// A malformed Range header falls back to serving the whole file.
	if err != nil && err != ErrInvalidRange {
		return err
	}

	if parsedRange == nil || err == ErrInvalidRange {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", size))
		w.WriteHeader(http.StatusOK)
		io.Copy(w, file)
		return nil
	}

	w.Header().Set("Content-Length", fmt.Sprintf("%d", parsedRange.ContentLength()))
	w.Header().Set("Content-Range", parsedRange.ContentRange(size))
	w.WriteHeader(http.StatusPartialContent)

	if _, err := file.Seek(parsedRange.Start, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}

	io.CopyN(w, file, parsedRange.ContentLength())
	return nil
}

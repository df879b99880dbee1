package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cutline/cutline/internal/assets"
	"github.com/cutline/cutline/internal/media"
	"github.com/cutline/cutline/internal/project"
	"github.com/cutline/cutline/internal/timeline"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// ServerConfig wires the handlers to their collaborators. EngineMu
// serializes all engine access: the timeline itself is single-writer and
// handlers run on arbitrary goroutines.
type ServerConfig struct {
	Port      int
	Engine    *timeline.Timeline
	EngineMu  *sync.Mutex
	Assets    assets.Repository
	Project   *project.Service
	Media     media.Service
	Hub       *Hub
	Logger    *slog.Logger
	StartTime time.Time
}

// withEngine runs fn with the engine lock held.
func (cfg ServerConfig) withEngine(fn func(tl *timeline.Timeline)) {
	cfg.EngineMu.Lock()
	defer cfg.EngineMu.Unlock()
	fn(cfg.Engine)
}

func NewServer(cfg ServerConfig) *Server {
	router := NewRouter(cfg)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("127.0.0.1:%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0,
			IdleTimeout:  60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

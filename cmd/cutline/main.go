package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cutline/cutline/internal/api"
	"github.com/cutline/cutline/internal/assets"
	"github.com/cutline/cutline/internal/config"
	"github.com/cutline/cutline/internal/db"
	"github.com/cutline/cutline/internal/logging"
	"github.com/cutline/cutline/internal/media"
	"github.com/cutline/cutline/internal/project"
	"github.com/cutline/cutline/internal/timeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting cutline", "version", config.Version, "data_dir", cfg.DataDir())

	database, err := db.New(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	assetRepo := assets.NewRepository(database.Conn())
	projectRepo := project.NewRepository(database.Conn())
	projectSvc := project.NewService(projectRepo, logger)

	engine := timeline.New(logger)

	restoreCtx, restoreCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := projectSvc.Restore(restoreCtx, engine); err != nil {
		logger.Warn("could not restore previous session", "error", err)
	}
	restoreCancel()

	// Subscriptions happen after restore so the initial load does not
	// trigger a save or a broadcast.
	engine.Subscribe(projectSvc.AutosaveSink(engine))

	hub := api.NewHub(logger)
	engine.Subscribe(hub.Sink())

	mediaServer := media.NewServer(assetRepo, logger)

	apiServer := api.NewServer(api.ServerConfig{
		Port:      cfg.Port(),
		Engine:    engine,
		EngineMu:  &sync.Mutex{},
		Assets:    assetRepo,
		Project:   projectSvc,
		Media:     mediaServer,
		Hub:       hub,
		Logger:    logger,
		StartTime: startTime,
	})

	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	logger.Info("listening", "addr", fmt.Sprintf("http://127.0.0.1:%d", cfg.Port()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	if err := projectSvc.Save(shutdownCtx, engine); err != nil {
		logger.Error("final save failed", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

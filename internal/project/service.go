package project

import (
	"context"
	"log/slog"

	"github.com/cutline/cutline/internal/timeline"
)

// Service ties the timeline to the clip repository: explicit save/load plus
// an auto-save event sink.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Save persists the timeline's current clip set.
func (s *Service) Save(ctx context.Context, tl *timeline.Timeline) error {
	records := Snapshot(tl)
	if err := s.repo.SaveClips(ctx, records); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("project saved", "clips", len(records))
	}
	return nil
}

// Restore loads the stored clip set into the timeline.
func (s *Service) Restore(ctx context.Context, tl *timeline.Timeline) error {
	records, err := s.repo.LoadClips(ctx)
	if err != nil {
		return err
	}
	tl.ClearClips()
	Load(tl, records, s.logger)
	if s.logger != nil {
		s.logger.Info("project restored", "clips", len(records))
	}
	return nil
}

// AutosaveSink returns an event sink that persists the timeline whenever a
// clip is added, edited, or deleted. Gestures emit one event per release,
// so auto-save runs once per discrete edit, not per pointer sample. A
// failed save is logged and otherwise swallowed; persistence must never
// break the interactive loop.
func (s *Service) AutosaveSink(tl *timeline.Timeline) timeline.Sink {
	return func(ev timeline.Event) {
		switch ev.Kind {
		case timeline.EventSelected:
			return
		}
		if err := s.repo.SaveClips(context.Background(), Snapshot(tl)); err != nil && s.logger != nil {
			s.logger.Error("auto-save failed", "error", err, "event", string(ev.Kind))
		}
	}
}

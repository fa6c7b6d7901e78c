package core

import (
	"context"
	"log/slog"
	"time"
)

type SchedulerService struct {
	ingestion *IngestionService
	logger    *slog.Logger
}

func NewSchedulerService(ingestion *IngestionService, logger *slog.Logger) *SchedulerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchedulerService{ingestion: ingestion, logger: logger.With("component", "scheduler")}
}

// Run executes one pipeline run immediately and, when every is positive,
// repeats it on that interval until ctx is cancelled. Runs never overlap:
// a tick that arrives while a run is in progress is dropped.
func (s *SchedulerService) Run(ctx context.Context, every time.Duration) error {
	if err := s.runOnce(ctx); err != nil && every <= 0 {
		return err
	}
	if every <= 0 {
		return nil
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// runOnce logs failures; the next tick tries again.
			s.runOnce(ctx)
		}
	}
}

func (s *SchedulerService) runOnce(ctx context.Context) error {
	res, err := s.ingestion.Run(ctx)
	if err != nil {
		s.logger.Error("pipeline run failed", "error", err)
		return err
	}
	s.logger.Info("pipeline run complete",
		"listings", res.Listings,
		"linked", res.Linked,
		"saved", res.Saved,
		"failed", res.Failed,
	)
	return nil
}

// Package retention prunes old calculation history on a cron schedule.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/calclab/calc-engine/internal/metrics"
	"github.com/calclab/calc-engine/internal/store"
)

// Scheduler runs the prune job and any housekeeping registered alongside it.
type Scheduler struct {
	cron   *cron.Cron
	store  store.Store
	maxAge time.Duration
	now    func() time.Time
}

// NewScheduler creates a scheduler that deletes calculations older than maxAge.
// Cron expressions use six fields, seconds first.
func NewScheduler(st store.Store, maxAge time.Duration) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		store:  st,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Register schedules the prune job.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.pruneTask); err != nil {
		return fmt.Errorf("register prune task: %w", err)
	}
	return nil
}

// AddFunc schedules an extra housekeeping job.
func (s *Scheduler) AddFunc(spec, name string, fn func()) error {
	if _, err := s.cron.AddFunc(spec, fn); err != nil {
		return fmt.Errorf("register %s task: %w", name, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("retention scheduler started", "max_age", s.maxAge.String())
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("retention scheduler stopped")
}

// RunOnce prunes immediately and returns the number of deleted records.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-s.maxAge)
	n, err := s.store.PruneCalculations(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	metrics.PrunedCalculations.Add(float64(n))
	return n, nil
}

func (s *Scheduler) pruneTask() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.RunOnce(ctx)
	if err != nil {
		slog.Error("retention prune failed", "err", err)
		return
	}
	slog.Info("retention prune finished", "deleted", n)
}

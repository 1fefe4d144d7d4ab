package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/osrs-price-tracker/internal/metrics"
	"github.com/donaldgifford/osrs-price-tracker/internal/notify"
	"github.com/donaldgifford/osrs-price-tracker/internal/store"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// Schedule label values for the next-run gauge.
const (
	scheduleWeekly = "weekly"
	schedulePrices = "prices"
)

// Scheduler runs the weekly refresh and the price refresh on cron schedules
// and records every run in job_runs.
type Scheduler struct {
	cron     *cron.Cron
	engine   *Engine
	store    store.Store
	notifier notify.Notifier
	log      *slog.Logger

	weeklyEntryID cron.EntryID
	pricesEntryID cron.EntryID
	staleAfter    time.Duration
}

// SchedulerOption configures the Scheduler.
type SchedulerOption func(*Scheduler)

// WithStaleAfter sets how long a running job may go without completing
// before RecoverStaleJobRuns marks it crashed.
func WithStaleAfter(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.staleAfter = d
	}
}

// NewScheduler creates a new Scheduler. weeklySpec drives the catalog,
// equipment and consumable refresh; pricesSpec drives the price refresh.
func NewScheduler(
	eng *Engine,
	s store.Store,
	n notify.Notifier,
	weeklySpec string,
	pricesSpec string,
	log *slog.Logger,
	opts ...SchedulerOption,
) (*Scheduler, error) {
	c := cron.New()

	sched := &Scheduler{
		cron:       c,
		engine:     eng,
		store:      s,
		notifier:   n,
		log:        log,
		staleAfter: 2 * time.Hour,
	}
	for _, opt := range opts {
		opt(sched)
	}

	weeklyID, err := c.AddFunc(weeklySpec, sched.runWeekly)
	if err != nil {
		return nil, fmt.Errorf("registering weekly schedule %q: %w", weeklySpec, err)
	}
	sched.weeklyEntryID = weeklyID

	pricesID, err := c.AddFunc(pricesSpec, sched.runPrices)
	if err != nil {
		return nil, fmt.Errorf("registering price schedule %q: %w", pricesSpec, err)
	}
	sched.pricesEntryID = pricesID

	return sched, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
	s.SyncNextRunTimestamps()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SyncNextRunTimestamps publishes the next fire time of each schedule.
func (s *Scheduler) SyncNextRunTimestamps() {
	for label, id := range map[string]cron.EntryID{
		scheduleWeekly: s.weeklyEntryID,
		schedulePrices: s.pricesEntryID,
	} {
		entry := s.cron.Entry(id)
		if entry.Next.IsZero() {
			continue
		}
		metrics.SchedulerNextRunTimestamp.WithLabelValues(label).Set(float64(entry.Next.Unix()))
	}
}

// RecoverStaleJobRuns marks runs left in the running state by a previous
// process as crashed.
func (s *Scheduler) RecoverStaleJobRuns(ctx context.Context) {
	n, err := s.store.RecoverStaleJobRuns(ctx, s.staleAfter)
	if err != nil {
		s.log.Error("recovering stale job runs", "error", err)
		return
	}
	if n > 0 {
		s.log.Warn("marked stale job runs as crashed", "count", n)
	}
}

// RunStartup populates the catalog and prices, then the wiki data unless
// scraping is disabled. Each job is independent; a failure is logged and the
// next job still runs.
func (s *Scheduler) RunStartup(ctx context.Context) {
	s.log.Info("startup sync starting")
	for _, job := range Jobs {
		if !s.engine.ScrapingEnabled() && (job == JobEquipment || job == JobConsumables) {
			s.log.Info("scraping disabled, skipping", "job", job)
			continue
		}
		_, _ = s.RunNow(ctx, job)
	}
}

// RunNow executes a job immediately, recording it like a scheduled run.
func (s *Scheduler) RunNow(ctx context.Context, job string) (domain.RunCounters, error) {
	if !isJob(job) {
		return domain.RunCounters{}, fmt.Errorf("%w: %q", ErrUnknownJob, job)
	}
	return s.runJob(ctx, job, func(ctx context.Context) (domain.RunCounters, error) {
		return s.engine.Run(ctx, job)
	})
}

func (s *Scheduler) runWeekly() {
	ctx := context.Background()
	s.log.Info("scheduled weekly refresh starting")
	for _, job := range []string{JobCatalog, JobEquipment, JobConsumables} {
		if !s.engine.ScrapingEnabled() && job != JobCatalog {
			continue
		}
		_, _ = s.RunNow(ctx, job)
	}
	s.SyncNextRunTimestamps()
}

func (s *Scheduler) runPrices() {
	ctx := context.Background()
	s.log.Info("scheduled price refresh starting")
	_, _ = s.RunNow(ctx, JobPrices)
	s.SyncNextRunTimestamps()
}

// runJob wraps fn with job_runs bookkeeping and a run summary notification.
// Bookkeeping failures are logged and never stop the job itself.
func (s *Scheduler) runJob(
	ctx context.Context,
	name string,
	fn func(context.Context) (domain.RunCounters, error),
) (domain.RunCounters, error) {
	runID, err := s.store.InsertJobRun(ctx, name)
	if err != nil {
		s.log.Error("recording job start", "job", name, "error", err)
	}

	start := time.Now()
	counters, jobErr := fn(ctx)
	elapsed := time.Since(start)

	status := domain.JobStatusSucceeded
	errText := ""
	if jobErr != nil {
		status = domain.JobStatusFailed
		errText = jobErr.Error()
	}

	if runID != "" {
		if err := s.store.CompleteJobRun(ctx, runID, status, errText, counters.Persisted); err != nil {
			s.log.Error("recording job completion", "job", name, "run_id", runID, "error", err)
		}
	}

	if s.notifier != nil && !errors.Is(jobErr, ErrScrapingDisabled) {
		summary := &notify.RunSummary{
			JobName:  name,
			Status:   status,
			Counters: counters,
			Duration: elapsed,
			Error:    errText,
		}
		if err := s.notifier.SendRunSummary(ctx, summary); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			s.log.Error("sending run summary", "job", name, "error", err)
		}
	}

	return counters, jobErr
}

func isJob(name string) bool {
	return slices.Contains(Jobs, name)
}

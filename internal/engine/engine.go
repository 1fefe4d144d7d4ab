// Package engine drives the sync runs that acquire, extract, match and
// persist game economy data, and schedules them.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/osrs-price-tracker/internal/gedata"
	"github.com/donaldgifford/osrs-price-tracker/internal/metrics"
	"github.com/donaldgifford/osrs-price-tracker/internal/store"
	"github.com/donaldgifford/osrs-price-tracker/internal/telemetry"
	"github.com/donaldgifford/osrs-price-tracker/internal/wiki"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// Job names.
const (
	JobCatalog     = "catalog"
	JobPrices      = "prices"
	JobEquipment   = "equipment"
	JobConsumables = "consumables"
)

// Jobs lists every job in the order a full refresh runs them.
var Jobs = []string{JobCatalog, JobPrices, JobEquipment, JobConsumables}

var (
	// ErrUnknownJob is returned by Run for a job name outside Jobs.
	ErrUnknownJob = errors.New("unknown job")

	// ErrScrapingDisabled is returned by the wiki jobs when scraping is off.
	ErrScrapingDisabled = errors.New("scraping is disabled")
)

// SlotPage is the wiki page holding one slot's stat table.
type SlotPage struct {
	Slot domain.Slot
	URL  string
}

// Engine runs the sync jobs. Each run checks out one store session and
// processes rows sequentially.
type Engine struct {
	store    store.Store
	source   gedata.Source
	fetcher  wiki.Fetcher
	log      *slog.Logger
	tracer   trace.Tracer
	runCount metric.Int64Counter

	slots            []SlotPage
	foodURL          string
	slotDelay        time.Duration
	scrapingDisabled bool
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	s store.Store,
	src gedata.Source,
	f wiki.Fetcher,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		store:     s,
		source:    src,
		fetcher:   f,
		log:       slog.Default(),
		tracer:    otel.Tracer(telemetry.InstrumentationName),
		slotDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(eng)
	}

	counter, err := otel.Meter(telemetry.InstrumentationName).Int64Counter(
		"opt.sync.runs",
		metric.WithDescription("Completed sync runs by job and status."),
	)
	if err != nil {
		eng.log.Warn("creating sync run counter", "error", err)
	}
	eng.runCount = counter

	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithSlots sets the slot pages scraped by the equipment job, in order.
func WithSlots(slots []SlotPage) EngineOption {
	return func(e *Engine) {
		e.slots = slots
	}
}

// WithFoodURL sets the page scraped by the consumables job.
func WithFoodURL(u string) EngineOption {
	return func(e *Engine) {
		e.foodURL = u
	}
}

// WithSlotDelay sets the pause between successive slot page fetches.
func WithSlotDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.slotDelay = d
	}
}

// WithScrapingDisabled turns the wiki jobs off.
func WithScrapingDisabled(disabled bool) EngineOption {
	return func(e *Engine) {
		e.scrapingDisabled = disabled
	}
}

// ScrapingEnabled reports whether the wiki jobs run.
func (eng *Engine) ScrapingEnabled() bool {
	return !eng.scrapingDisabled
}

// Run executes the named job.
func (eng *Engine) Run(ctx context.Context, job string) (domain.RunCounters, error) {
	switch job {
	case JobCatalog:
		return eng.RunCatalogSync(ctx)
	case JobPrices:
		return eng.RunPriceSync(ctx)
	case JobEquipment:
		return eng.RunEquipmentSync(ctx)
	case JobConsumables:
		return eng.RunConsumableSync(ctx)
	default:
		return domain.RunCounters{}, fmt.Errorf("%w: %q", ErrUnknownJob, job)
	}
}

// begin starts the span and timer shared by every run. The returned func
// records the outcome and must be deferred.
func (eng *Engine) begin(
	ctx context.Context,
	job string,
) (context.Context, func(*domain.RunCounters, *error)) {
	ctx, span := eng.tracer.Start(ctx, "sync."+job, trace.WithAttributes(
		attribute.String("job", job),
	))
	start := time.Now()
	eng.log.InfoContext(ctx, "sync starting", "job", job)

	return ctx, func(c *domain.RunCounters, errp *error) {
		elapsed := time.Since(start)
		metrics.SyncDuration.WithLabelValues(job).Observe(elapsed.Seconds())
		metrics.SyncRowsTotal.WithLabelValues(job, metrics.OutcomeMatched).Add(float64(c.Matched))
		metrics.SyncRowsTotal.WithLabelValues(job, metrics.OutcomeUnmatched).Add(float64(c.Unmatched()))
		metrics.SyncRowsTotal.WithLabelValues(job, metrics.OutcomePersisted).Add(float64(c.Persisted))
		metrics.SyncRowsTotal.WithLabelValues(job, metrics.OutcomeFailed).Add(float64(c.Failed))

		span.SetAttributes(
			attribute.Int("rows.attempted", c.Attempted),
			attribute.Int("rows.matched", c.Matched),
			attribute.Int("rows.persisted", c.Persisted),
			attribute.Int("rows.failed", c.Failed),
		)

		status := domain.JobStatusSucceeded
		if *errp != nil {
			status = domain.JobStatusFailed
			span.RecordError(*errp)
			span.SetStatus(codes.Error, (*errp).Error())
			eng.log.ErrorContext(ctx, "sync failed",
				"job", job,
				"duration", elapsed,
				"attempted", c.Attempted,
				"persisted", c.Persisted,
				"error", *errp,
			)
		} else {
			metrics.SyncLastSuccessTimestamp.WithLabelValues(job).SetToCurrentTime()
			eng.log.InfoContext(ctx, "sync complete",
				"job", job,
				"duration", elapsed,
				"attempted", c.Attempted,
				"matched", c.Matched,
				"unmatched", c.Unmatched(),
				"persisted", c.Persisted,
				"failed", c.Failed,
				"inserted", c.Inserted,
				"updated", c.Updated,
			)
		}
		if eng.runCount != nil {
			eng.runCount.Add(ctx, 1, metric.WithAttributes(
				attribute.String("job", job),
				attribute.String("status", status),
			))
		}
		span.End()
	}
}

// acquire checks out the run's store session.
func (eng *Engine) acquire(ctx context.Context) (store.Session, error) {
	sess, err := eng.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring store session: %w", err)
	}
	return sess, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

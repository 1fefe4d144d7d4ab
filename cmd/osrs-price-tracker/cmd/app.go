package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/osrs-price-tracker/internal/config"
	"github.com/donaldgifford/osrs-price-tracker/internal/engine"
	"github.com/donaldgifford/osrs-price-tracker/internal/gedata"
	"github.com/donaldgifford/osrs-price-tracker/internal/notify"
	"github.com/donaldgifford/osrs-price-tracker/internal/store"
	"github.com/donaldgifford/osrs-price-tracker/internal/wiki"
)

// app holds the long-lived components shared by serve and sync.
type app struct {
	store     *store.PostgresStore
	scheduler *engine.Scheduler
	closers   []func() error
}

func (a *app) Close(log *slog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn("closing component", "error", err)
		}
	}
	a.store.Close()
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN(),
		store.WithPoolSize(int32(cfg.Database.PoolSize)), //nolint:gosec // validated to 1..100
		store.WithQueryTimeout(cfg.Database.QueryTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	a := &app{store: pg}

	src := gedata.NewClient(
		gedata.WithURLs(cfg.Sources.ItemsURL, cfg.Sources.PricesURL, cfg.Sources.VolumesURL),
		gedata.WithTimeout(cfg.Sources.Timeout),
		gedata.WithUserAgent(cfg.Sources.UserAgent),
		gedata.WithRateLimiter(limiter(cfg.Sources.RateLimit)),
	)

	fetcher := newFetcher(cfg.Scraping)
	if c, ok := fetcher.(interface{ Close() error }); ok {
		a.closers = append(a.closers, c.Close)
	}

	slots := make([]engine.SlotPage, 0, len(cfg.Scraping.Slots))
	for _, s := range cfg.Scraping.Slots {
		slots = append(slots, engine.SlotPage{Slot: s.Slot, URL: cfg.Scraping.BaseURL + s.Path})
	}

	eng := engine.NewEngine(pg, src, fetcher,
		engine.WithLogger(log),
		engine.WithSlots(slots),
		engine.WithFoodURL(cfg.Scraping.BaseURL+cfg.Scraping.FoodPath),
		engine.WithSlotDelay(cfg.Scraping.SlotDelay),
		engine.WithScrapingDisabled(cfg.Scraping.Disabled),
	)

	sched, err := engine.NewScheduler(eng, pg, newNotifier(cfg.Notifications, log),
		cfg.Schedule.WeeklyCron, cfg.Schedule.PriceCron, log,
		engine.WithStaleAfter(cfg.Schedule.StaleJobAfter),
	)
	if err != nil {
		a.Close(log)
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	a.scheduler = sched

	return a, nil
}

func newFetcher(cfg config.ScrapingConfig) wiki.Fetcher {
	opts := []wiki.Option{
		wiki.WithPageTimeout(cfg.PageTimeout),
		wiki.WithUserAgent(cfg.UserAgent),
		wiki.WithRateLimiter(limiter(cfg.RateLimit)),
	}
	if cfg.TableSelector != "" {
		opts = append(opts, wiki.WithTableSelector(cfg.TableSelector))
	}
	if cfg.Renderer == config.RendererBrowser {
		return wiki.NewBrowserFetcher(cfg.BrowserBin, opts...)
	}
	return wiki.NewHTTPFetcher(opts...)
}

func newNotifier(cfg config.NotificationsConfig, log *slog.Logger) notify.Notifier {
	if cfg.Discord.Enabled && cfg.Discord.WebhookURL != "" {
		return notify.NewDiscordNotifier(cfg.Discord.WebhookURL)
	}
	return notify.NewNoOpNotifier(log)
}

func limiter(cfg config.RateLimitConfig) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(cfg.PerSecond), cfg.Burst)
}

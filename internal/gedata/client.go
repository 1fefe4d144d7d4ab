// Package gedata fetches the item catalog, prices and trading volumes from the
// Grand Exchange pricing API.
package gedata

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/osrs-price-tracker/internal/metrics"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// Default endpoints.
const (
	DefaultItemsURL   = "https://grandexchange.tools/api/items"
	DefaultPricesURL  = "https://grandexchange.tools/api/prices"
	DefaultVolumesURL = "https://grandexchange.tools/api/volumes"
)

// Source is the read side of the pricing API. Entries without a numeric id
// are dropped before they reach the caller.
type Source interface {
	FetchItems(ctx context.Context) ([]domain.Item, error)
	FetchPrices(ctx context.Context) ([]domain.PriceSnapshot, error)
	FetchVolumes(ctx context.Context) ([]domain.ItemVolume, error)
}

// Client implements Source over HTTP using resty.
type Client struct {
	http       *resty.Client
	itemsURL   string
	pricesURL  string
	volumesURL string
	limiter    *rate.Limiter
	nowFunc    func() time.Time
}

// Option configures the Client.
type Option func(*Client)

// WithURLs overrides the endpoints. Empty values keep the default.
func WithURLs(items, prices, volumes string) Option {
	return func(c *Client) {
		if items != "" {
			c.itemsURL = items
		}
		if prices != "" {
			c.pricesURL = prices
		}
		if volumes != "" {
			c.volumesURL = volumes
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.http.SetHeader("User-Agent", ua)
	}
}

// WithRateLimiter makes every request wait on the limiter first.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithNowFunc overrides the clock used to stamp price snapshots.
func WithNowFunc(f func() time.Time) Option {
	return func(c *Client) {
		c.nowFunc = f
	}
}

// NewClient creates a pricing API client.
func NewClient(opts ...Option) *Client {
	hc := resty.New()
	hc.SetTimeout(30 * time.Second)
	hc.SetHeader("Accept", "application/json")

	c := &Client{
		http:       hc,
		itemsURL:   DefaultItemsURL,
		pricesURL:  DefaultPricesURL,
		volumesURL: DefaultVolumesURL,
		nowFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchItems returns the item catalog ordered by id.
func (c *Client) FetchItems(ctx context.Context) ([]domain.Item, error) {
	recs, err := c.fetch(ctx, "items", c.itemsURL)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(recs))
	for _, raw := range recs {
		var rec itemRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		id, ok := numericID(rec.ID)
		if !ok || rec.Name == "" {
			continue
		}

		item := domain.Item{
			ID:       id,
			Name:     string(rec.Name),
			Members:  bool(rec.Members),
			Value:    rec.Value.Value,
			HighAlch: rec.HighAlch.Ptr(),
			LowAlch:  rec.LowAlch.Ptr(),
		}
		if rec.Limit.Valid {
			limit := int(rec.Limit.Value)
			item.DailyLimit = &limit
		}
		if rec.Icon != "" {
			icon := string(rec.Icon)
			item.Icon = &icon
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// FetchPrices returns the latest price snapshot of every item ordered by id.
func (c *Client) FetchPrices(ctx context.Context) ([]domain.PriceSnapshot, error) {
	recs, err := c.fetch(ctx, "prices", c.pricesURL)
	if err != nil {
		return nil, err
	}

	now := c.nowFunc().UTC()
	prices := make([]domain.PriceSnapshot, 0, len(recs))
	for _, raw := range recs {
		var rec priceRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		id, ok := numericID(rec.ID)
		if !ok {
			continue
		}

		snap := domain.PriceSnapshot{
			ItemID:       id,
			CurrentTrend: domain.TrendNeutral,
			TodayTrend:   domain.TrendNeutral,
			FetchedAt:    now,
		}
		if rec.Current != nil {
			snap.CurrentPrice = rec.Current.Price.Ptr()
			snap.CurrentTrend = domain.ParseTrend(string(rec.Current.Trend))
		}
		if rec.Today != nil {
			snap.TodayPrice = rec.Today.Price.Ptr()
			snap.TodayTrend = domain.ParseTrend(string(rec.Today.Trend))
		}
		prices = append(prices, snap)
	}

	sort.SliceStable(prices, func(i, j int) bool { return prices[i].ItemID < prices[j].ItemID })
	return prices, nil
}

// FetchVolumes returns trading volumes ordered by id. Entries without a
// usable volume are dropped.
func (c *Client) FetchVolumes(ctx context.Context) ([]domain.ItemVolume, error) {
	recs, err := c.fetch(ctx, "volumes", c.volumesURL)
	if err != nil {
		return nil, err
	}

	vols := make([]domain.ItemVolume, 0, len(recs))
	for _, raw := range recs {
		var rec volumeRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		id, ok := numericID(rec.ID)
		if !ok || !rec.Volume.Valid {
			continue
		}
		vols = append(vols, domain.ItemVolume{ItemID: id, Volume: int64(rec.Volume.Value)})
	}

	sort.SliceStable(vols, func(i, j int) bool { return vols[i].ItemID < vols[j].ItemID })
	return vols, nil
}

func (c *Client) fetch(ctx context.Context, source, url string) ([]json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}
	metrics.SourceRequestsTotal.WithLabelValues(source).Inc()

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		metrics.AcquisitionErrorsTotal.WithLabelValues(source).Inc()
		return nil, fmt.Errorf("fetching %s: %w", source, err)
	}
	if resp.IsError() {
		metrics.AcquisitionErrorsTotal.WithLabelValues(source).Inc()
		return nil, fmt.Errorf(
			"pricing API error (status %d) for %s: %s",
			resp.StatusCode(),
			source,
			truncate(resp.String(), 200),
		)
	}

	recs, err := records(resp.Body())
	if err != nil {
		metrics.AcquisitionErrorsTotal.WithLabelValues(source).Inc()
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}
	return recs, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

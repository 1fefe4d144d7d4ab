// Package wiki acquires wiki pages and hands their tables to the table
// extractor. Pages are read either as served HTML or as a rendered DOM
// snapshot from a headless browser.
package wiki

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/osrs-price-tracker/internal/metrics"
	"github.com/donaldgifford/osrs-price-tracker/pkg/tablescrape"
)

const source = "wiki"

// ErrNoTables is returned when a page loads but holds no matching table.
var ErrNoTables = errors.New("no tables found")

// Fetcher loads a page and returns its tables.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (tablescrape.Document, error)
}

type common struct {
	selector string
	timeout  time.Duration
	ua       string
	limiter  *rate.Limiter
}

func defaults() common {
	return common{
		selector: tablescrape.DefaultTableSelector,
		timeout:  30 * time.Second,
		ua:       "osrs-price-tracker",
	}
}

func (c *common) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}

func (c *common) parse(url string, html []byte) (tablescrape.Document, error) {
	doc, err := tablescrape.FromHTML(bytes.NewReader(html), c.selector)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w at %s (selector %q)", ErrNoTables, url, c.selector)
	}
	return doc, nil
}

// Option configures either fetcher.
type Option func(*common)

// WithTableSelector overrides the CSS selector tables are read from.
func WithTableSelector(sel string) Option {
	return func(c *common) {
		if sel != "" {
			c.selector = sel
		}
	}
}

// WithPageTimeout bounds each page load.
func WithPageTimeout(d time.Duration) Option {
	return func(c *common) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent presented to the wiki.
func WithUserAgent(ua string) Option {
	return func(c *common) {
		if ua != "" {
			c.ua = ua
		}
	}
}

// WithRateLimiter makes every page load wait on the limiter first.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *common) {
		c.limiter = l
	}
}

// HTTPFetcher reads the served HTML of a page.
type HTTPFetcher struct {
	common
	http *resty.Client
}

// NewHTTPFetcher creates a fetcher that issues plain GET requests.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{common: defaults()}
	for _, opt := range opts {
		opt(&f.common)
	}
	f.http = resty.New().
		SetTimeout(f.timeout).
		SetHeader("User-Agent", f.ua).
		SetHeader("Accept", "text/html")
	return f
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (tablescrape.Document, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	metrics.SourceRequestsTotal.WithLabelValues(source).Inc()

	resp, err := f.http.R().SetContext(ctx).Get(url)
	if err != nil {
		metrics.AcquisitionErrorsTotal.WithLabelValues(source).Inc()
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.IsError() {
		metrics.AcquisitionErrorsTotal.WithLabelValues(source).Inc()
		return nil, fmt.Errorf("wiki returned status %d for %s", resp.StatusCode(), url)
	}

	doc, err := f.parse(url, resp.Body())
	if err != nil {
		metrics.AcquisitionErrorsTotal.WithLabelValues(source).Inc()
		return nil, err
	}
	return doc, nil
}

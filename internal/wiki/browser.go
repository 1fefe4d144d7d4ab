package wiki

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/donaldgifford/osrs-price-tracker/internal/metrics"
	"github.com/donaldgifford/osrs-price-tracker/pkg/tablescrape"
)

// BrowserFetcher reads the rendered DOM of a page from a headless Chromium.
// The browser is launched on first use and reused until Close.
type BrowserFetcher struct {
	common
	bin string

	mu      sync.Mutex
	browser *rod.Browser
}

// NewBrowserFetcher creates a rendered-DOM fetcher. An empty bin looks the
// browser up on PATH.
func NewBrowserFetcher(bin string, opts ...Option) *BrowserFetcher {
	f := &BrowserFetcher{common: defaults(), bin: bin}
	for _, opt := range opts {
		opt(&f.common)
	}
	return f
}

func (f *BrowserFetcher) launch() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		if _, err := (proto.BrowserGetVersion{}).Call(f.browser); err == nil {
			return f.browser, nil
		}
		_ = f.browser.Close()
		f.browser = nil
	}

	bin := f.bin
	if bin == "" {
		path, ok := launcher.LookPath()
		if !ok {
			return nil, fmt.Errorf("no chromium binary found on PATH")
		}
		bin = path
	}

	controlURL, err := launcher.New().
		Bin(bin).
		Headless(true).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("user-agent", f.ua).
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	f.browser = browser
	return browser, nil
}

// Fetch implements Fetcher.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (tablescrape.Document, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	metrics.SourceRequestsTotal.WithLabelValues(source).Inc()

	html, err := f.render(ctx, url)
	if err != nil {
		metrics.AcquisitionErrorsTotal.WithLabelValues(source).Inc()
		return nil, err
	}

	doc, err := f.parse(url, []byte(html))
	if err != nil {
		metrics.AcquisitionErrorsTotal.WithLabelValues(source).Inc()
		return nil, err
	}
	return doc, nil
}

func (f *BrowserFetcher) render(ctx context.Context, url string) (string, error) {
	browser, err := f.launch()
	if err != nil {
		return "", err
	}

	loadCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Context(loadCtx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", url, err)
	}
	defer func() { _ = page.Close() }()

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("loading %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading DOM of %s: %w", url, err)
	}
	return html, nil
}

// Close shuts the browser down if it was launched.
func (f *BrowserFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser == nil {
		return nil
	}
	err := f.browser.Close()
	f.browser = nil
	return err
}

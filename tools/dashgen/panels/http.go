package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// probePaths are excluded from latency so scrapes don't flatten percentiles.
const probePaths = `path!~"/healthz|/readyz|/metrics"`

// RequestRate graphs API requests per second.
func RequestRate() *timeseries.PanelBuilder {
	return seriesLegend(timeSeries("Request Rate", "HTTP requests per second", HalfWidth,
		q(`opt:http_requests:rate5m`, "req/s"),
	), "mean", "max").
		Unit("reqps")
}

// LatencyPercentiles graphs p50, p95 and p99 API latency.
func LatencyPercentiles() *timeseries.PanelBuilder {
	return seriesLegend(timeSeries("Latency Percentiles", "HTTP request duration percentiles, probes excluded", HalfWidth,
		q(latencyQuantile(0.50), "p50"),
		q(latencyQuantile(0.95), "p95"),
		q(latencyQuantile(0.99), "p99"),
	), "mean", "max").
		Unit("s")
}

func latencyQuantile(quantile float64) string {
	return fmt.Sprintf("histogram_quantile(%.2f, sum(rate(%s[5m])) by (le))",
		quantile, Sel("opt_http_request_duration_seconds_bucket", probePaths))
}

// ErrorRate graphs 5xx responses as a percentage of all requests.
func ErrorRate() *timeseries.PanelBuilder {
	return timeSeries("Error Rate %", "HTTP 5xx responses as a percentage of total requests", HalfWidth,
		q(`opt:http_errors:rate5m / opt:http_requests:rate5m * 100`, "error %"),
	).
		Unit("percent").
		Thresholds(Traffic(1, 5)).
		ColorScheme(byThreshold())
}

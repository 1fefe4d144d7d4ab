package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// NotificationLatency graphs p95 Discord webhook latency.
func NotificationLatency() *timeseries.PanelBuilder {
	return timeSeries("Notification Latency (p95)", "95th percentile Discord webhook latency", HalfWidth,
		q(`opt:notification_duration:p95_5m`, "p95"),
	).
		Unit("s").
		Thresholds(Traffic(1, 5)).
		ColorScheme(palette())
}

// NotificationFailures shows failed run summaries over the last day.
func NotificationFailures() *stat.PanelBuilder {
	return statPanel("Notification Failures (24h)", "Failed run summary deliveries in the last 24 hours", TSHeight, HalfWidth,
		q("increase("+Sel("opt_notification_failures_total")+"[24h])", ""),
	).
		Thresholds(Traffic(1, 5)).
		ColorScheme(byThreshold()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SyncRows graphs source rows per minute by sync job and outcome.
func SyncRows() *timeseries.PanelBuilder {
	return seriesLegend(timeSeries("Rows / min", "Source rows processed by sync jobs, by outcome", ThirdWidth,
		q(`opt:sync_rows:rate5m * 60`, "{{sync_job}} {{outcome}}"),
	), "max")
}

// UnmatchedRatio graphs the daily share of scraped rows that matched no
// catalog item. A jump usually means a wiki page renamed its items.
func UnmatchedRatio() *timeseries.PanelBuilder {
	return timeSeries("Unmatched %", "Scraped rows with no catalog item as a percentage of rows attempted", ThirdWidth,
		q(`opt:sync_unmatched:ratio1d * 100`, "{{sync_job}}"),
	).
		Unit("percent").
		Thresholds(Traffic(10, 25)).
		ColorScheme(byThreshold())
}

// SyncDuration graphs p95 run duration per job over a one day window.
func SyncDuration() *timeseries.PanelBuilder {
	return timeSeries("Run Duration (p95)", "95th percentile sync run duration by job", ThirdWidth,
		q(`histogram_quantile(0.95, sum by (le, sync_job) (rate(`+
			Sel("opt_sync_duration_seconds_bucket")+`[1d])))`, "{{sync_job}}"),
	).
		Unit("s").
		Thresholds(Green()).
		ColorScheme(palette())
}

// LastSuccess shows the time since each job last succeeded.
func LastSuccess() *stat.PanelBuilder {
	return statPanel("Last Success", "Time since the last successful run of each sync job", StatHeight, FullWidth,
		q("time() - "+Sel("opt_sync_last_success_timestamp"), "{{sync_job}}"),
	).
		Unit("s").
		Thresholds(Traffic(WeeklyStaleWarn, WeeklyStaleCrit)).
		ColorScheme(byThreshold()).
		ColorMode(common.BigValueColorModeBackground)
}

package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SourceRequests graphs outbound requests per minute to the pricing API and
// the wiki.
func SourceRequests() *timeseries.PanelBuilder {
	return seriesLegend(timeSeries("Source Requests / min", "Outbound requests to the pricing APIs and wiki, by source", ThirdWidth,
		q(`opt:source_requests:rate5m * 60`, "{{source}}"),
	), "max")
}

// AcquisitionErrors graphs failed fetches per minute. Any sustained value
// means a whole slot or job is being skipped.
func AcquisitionErrors() *timeseries.PanelBuilder {
	return timeSeries("Fetch Errors / min", "Failed fetches from the pricing APIs and wiki, by source", ThirdWidth,
		q(`opt:acquisition_errors:rate5m * 60`, "{{source}}"),
	).
		Thresholds(Traffic(0.1, 1)).
		ColorScheme(byThreshold())
}

// NextRun shows the time until each cron schedule fires.
func NextRun() *stat.PanelBuilder {
	return statPanel("Next Run", "Time until the next scheduled sync, by schedule", TSHeight, ThirdWidth,
		q(Sel("opt_scheduler_next_run_timestamp")+" - time()", "{{schedule}}"),
	).
		Unit("s").
		Thresholds(Green()).
		ColorScheme(byThreshold())
}

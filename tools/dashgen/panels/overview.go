package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// HealthzStat shows the liveness probe gauge.
func HealthzStat() *stat.PanelBuilder {
	return probeStat("Healthz", "Health check status (1 = ok, 0 = failing)", "healthz")
}

// ReadyzStat shows the readiness probe gauge.
func ReadyzStat() *stat.PanelBuilder {
	return probeStat("Readyz", "Readiness check status (1 = ready, 0 = database unreachable)", "readyz")
}

func probeStat(title, description, probe string) *stat.PanelBuilder {
	return statPanel(title, description, StatHeight, StatWidth,
		q(Sel("opt_probe_up", fmt.Sprintf("probe=%q", probe)), ""),
	).
		Thresholds(RedBelow(1)).
		ColorScheme(byThreshold()).
		ColorMode(common.BigValueColorModeBackground).
		TextMode(common.BigValueTextModeValue)
}

// PriceFreshness shows the age of the latest successful price sync.
func PriceFreshness() *stat.PanelBuilder {
	return statPanel("Price Age", "Time since the last successful price sync", StatHeight, StatWidth,
		q("time() - "+Sel("opt_sync_last_success_timestamp", `sync_job="prices"`), ""),
	).
		Unit("s").
		Thresholds(Traffic(PriceStaleWarn, PriceStaleCrit)).
		ColorScheme(byThreshold()).
		ColorMode(common.BigValueColorModeBackground)
}

// UptimeStat shows process uptime.
func UptimeStat() *stat.PanelBuilder {
	return statPanel("Uptime", "Time since process start", StatHeight, StatWidth,
		q("time() - "+Sel("process_start_time_seconds"), ""),
	).
		Unit("s").
		Thresholds(Green()).
		ColorScheme(byThreshold())
}

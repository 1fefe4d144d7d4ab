// Package panels provides Grafana panel builders for the osrs-price-tracker
// dashboard. Every query is scoped to the tracker's scrape job through Sel or
// reads a recording rule that already is.
package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// Job is the Prometheus scrape job of the tracker.
const Job = "osrs-price-tracker"

// Staleness thresholds in seconds for the last successful sync. Prices run
// every three hours; the wiki jobs run weekly.
const (
	PriceStaleWarn  = 4 * 3600
	PriceStaleCrit  = 7 * 3600
	WeeklyStaleWarn = 8 * 86400
	WeeklyStaleCrit = 10 * 86400
)

// Grid sizes on Grafana's 24 column layout.
const (
	StatWidth  = 6
	StatHeight = 4
	ThirdWidth = 8
	HalfWidth  = 12
	FullWidth  = 24
	TSHeight   = 8
)

// Sel returns a selector for metric scoped to the tracker job plus any extra
// label matchers.
func Sel(metric string, matchers ...string) string {
	m := `job="` + Job + `"`
	for _, x := range matchers {
		m += "," + x
	}
	return metric + "{" + m + "}"
}

// DSRef points panels at the ${datasource} template variable.
func DSRef() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

// PromQuery builds a Prometheus query target.
func PromQuery(expr, legendFormat, refID string) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		Expr(expr).
		LegendFormat(legendFormat).
		RefId(refID)
}

// query is an expression plus its legend.
type query struct {
	expr   string
	legend string
}

func q(expr, legend string) query { return query{expr: expr, legend: legend} }

var refIDs = []string{"A", "B", "C", "D", "E"}

// timeSeries returns a line graph with the dashboard's shared styling and
// one target per query.
func timeSeries(title, description string, span int, queries ...query) *timeseries.PanelBuilder {
	b := timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(span).
		FillOpacity(10).
		LineWidth(2).
		DrawStyle(common.GraphDrawStyleLine)
	for i, x := range queries {
		b = b.WithTarget(PromQuery(x.expr, x.legend, refIDs[i]))
	}
	return b
}

// seriesLegend adds the table legend and sorted multi tooltip used by graphs
// with one series per label value.
func seriesLegend(b *timeseries.PanelBuilder, calcs ...string) *timeseries.PanelBuilder {
	return b.
		Legend(common.NewVizLegendOptionsBuilder().
			DisplayMode(common.LegendDisplayModeTable).
			Placement(common.LegendPlacementBottom).
			Calcs(calcs)).
		Tooltip(common.NewVizTooltipOptionsBuilder().
			Mode(common.TooltipDisplayModeMulti).
			Sort(common.SortOrderDescending)).
		Thresholds(Green()).
		ColorScheme(palette())
}

// statPanel returns a single value panel without a sparkline.
func statPanel(title, description string, height, span int, x query) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(height).
		Span(span).
		WithTarget(PromQuery(x.expr, x.legend, "A")).
		GraphMode(common.BigValueGraphModeNone)
}

// thresholds builds absolute threshold steps above a base color.
func thresholds(base string, steps ...dashboard.Threshold) cog.Builder[dashboard.ThresholdsConfig] {
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(append([]dashboard.Threshold{{Color: base}}, steps...))
}

func at(v float64, color string) dashboard.Threshold {
	return dashboard.Threshold{Value: cog.ToPtr(v), Color: color}
}

// Green has a single green step.
func Green() cog.Builder[dashboard.ThresholdsConfig] {
	return thresholds("green")
}

// Traffic is green, then yellow from warn and red from crit.
func Traffic(warn, crit float64) cog.Builder[dashboard.ThresholdsConfig] {
	return thresholds("green", at(warn, "yellow"), at(crit, "red"))
}

// RedBelow is red below v and green from v.
func RedBelow(v float64) cog.Builder[dashboard.ThresholdsConfig] {
	return thresholds("red", at(v, "green"))
}

func colorMode(m dashboard.FieldColorModeId) cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(m)
}

func byThreshold() cog.Builder[dashboard.FieldColor] {
	return colorMode(dashboard.FieldColorModeIdThresholds)
}

func palette() cog.Builder[dashboard.FieldColor] {
	return colorMode(dashboard.FieldColorModeIdPaletteClassic)
}

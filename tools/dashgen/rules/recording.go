package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("opt-recording-rules",
		RuleGroup{
			Name: "opt-recording",
			Rules: []Rule{
				{
					Record: "opt:http_requests:rate5m",
					Expr:   `sum(rate(opt_http_requests_total[5m]))`,
				},
				{
					Record: "opt:http_errors:rate5m",
					Expr:   `sum(rate(opt_http_requests_total{status=~"5.."}[5m]))`,
				},
				{
					Record: "opt:sync_rows:rate5m",
					Expr:   `sum by (sync_job, outcome) (rate(opt_sync_rows_total[5m]))`,
				},
				{
					Record: "opt:sync_unmatched:ratio1d",
					Expr: `sum by (sync_job) (increase(opt_sync_rows_total{outcome="unmatched"}[1d]))` +
						` / sum by (sync_job) (increase(opt_sync_rows_total{outcome=~"matched|unmatched"}[1d]))`,
				},
				{
					Record: "opt:source_requests:rate5m",
					Expr:   `sum by (source) (rate(opt_source_requests_total[5m]))`,
				},
				{
					Record: "opt:acquisition_errors:rate5m",
					Expr:   `sum by (source) (rate(opt_acquisition_errors_total[5m]))`,
				},
				{
					Record: "opt:notification_duration:p95_5m",
					Expr:   `histogram_quantile(0.95, sum(rate(opt_notification_duration_seconds_bucket[5m])) by (le))`,
				},
			},
		},
	)
}

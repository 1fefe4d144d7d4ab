package rules

import "fmt"

// Staleness windows for the last successful sync, in seconds.
const (
	priceStaleAfter  = 7 * 3600
	weeklyStaleAfter = 10 * 86400
)

// AlertRules returns a PrometheusRule CR containing alert rules for
// osrs-price-tracker operational monitoring.
func AlertRules() PrometheusRule {
	return newPrometheusRule("opt-alerts",
		RuleGroup{
			Name: "opt-alerts",
			Rules: []Rule{
				{
					Alert: "OptDown",
					Expr:  `absent(up{job="osrs-price-tracker"})`,
					For:   "2m",
					Labels: map[string]string{
						"severity": "critical",
					},
					Annotations: map[string]string{
						"summary":     "OSRS Price Tracker is down",
						"description": "The osrs-price-tracker job has been absent for more than 2 minutes.",
					},
				},
				{
					Alert: "OptReadinessDown",
					Expr:  `opt_probe_up{probe="readyz"} == 0`,
					For:   "2m",
					Labels: map[string]string{
						"severity": "critical",
					},
					Annotations: map[string]string{
						"summary":     "OSRS Price Tracker readiness check is failing",
						"description": "The readiness probe has reported the database unreachable for more than 2 minutes.",
					},
				},
				{
					Alert: "OptHighErrorRate",
					Expr:  `opt:http_errors:rate5m / opt:http_requests:rate5m > 0.05`,
					For:   "5m",
					Labels: map[string]string{
						"severity": "warning",
					},
					Annotations: map[string]string{
						"summary":     "High HTTP error rate on OSRS Price Tracker",
						"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
					},
				},
				{
					Alert: "OptPricesStale",
					Expr:  fmt.Sprintf(`time() - opt_sync_last_success_timestamp{sync_job="prices"} > %d`, priceStaleAfter),
					For:   "10m",
					Labels: map[string]string{
						"severity": "warning",
					},
					Annotations: map[string]string{
						"summary":     "Grand Exchange prices are stale",
						"description": "The prices job has not succeeded for more than 7 hours.",
					},
				},
				{
					Alert: "OptWikiSyncStale",
					Expr: fmt.Sprintf(
						`time() - opt_sync_last_success_timestamp{sync_job=~"equipment|consumables"} > %d`,
						weeklyStaleAfter,
					),
					For: "1h",
					Labels: map[string]string{
						"severity": "warning",
					},
					Annotations: map[string]string{
						"summary":     "Wiki equipment or consumable data is stale",
						"description": "A weekly wiki sync has not succeeded for more than 10 days.",
					},
				},
				{
					Alert: "OptAcquisitionErrors",
					Expr:  `opt:acquisition_errors:rate5m > 0`,
					For:   "15m",
					Labels: map[string]string{
						"severity": "warning",
					},
					Annotations: map[string]string{
						"summary":     "Source fetches are failing",
						"description": "Fetches from a pricing API or the wiki have been failing for more than 15 minutes.",
					},
				},
				{
					Alert: "OptUnmatchedRowsHigh",
					Expr:  `opt:sync_unmatched:ratio1d > 0.25`,
					For:   "1h",
					Labels: map[string]string{
						"severity": "info",
					},
					Annotations: map[string]string{
						"summary":     "Many scraped rows match no catalog item",
						"description": "More than 25% of scraped wiki rows matched no item over the last day; the table layout may have changed.",
					},
				},
				{
					Alert: "OptNotificationFailures",
					Expr:  `increase(opt_notification_failures_total[5m]) > 0`,
					For:   "1m",
					Labels: map[string]string{
						"severity": "warning",
					},
					Annotations: map[string]string{
						"summary":     "Notification delivery failures detected",
						"description": "One or more run summaries (Discord webhooks) have failed to send.",
					},
				},
			},
		},
	)
}

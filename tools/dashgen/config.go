package main

import "errors"

// KnownMetrics is the set of metric names exported by osrs-price-tracker
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"opt_http_request_duration_seconds":        true,
	"opt_http_request_duration_seconds_bucket": true,
	"opt_http_requests_total":                  true,

	// Probe metrics.
	"opt_probe_up": true,

	// Sync metrics.
	"opt_sync_rows_total":              true,
	"opt_sync_duration_seconds_bucket": true,
	"opt_sync_last_success_timestamp":  true,
	"opt_acquisition_errors_total":     true,
	"opt_source_requests_total":        true,
	"opt_scheduler_next_run_timestamp": true,

	// Notification metrics.
	"opt_notification_failures_total":          true,
	"opt_notification_duration_seconds_bucket": true,

	// Recording rules.
	"opt:http_requests:rate5m":         true,
	"opt:http_errors:rate5m":           true,
	"opt:sync_rows:rate5m":             true,
	"opt:sync_unmatched:ratio1d":       true,
	"opt:source_requests:rate5m":       true,
	"opt:acquisition_errors:rate5m":    true,
	"opt:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}

// Package notify defines the notification interface and implementations
// for sync run summaries.
package notify

import (
	"context"
	"time"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// RunSummary describes one finished sync run.
type RunSummary struct {
	JobName  string
	Status   string // domain.JobStatus*
	Counters domain.RunCounters
	Duration time.Duration
	Error    string
}

// Notifier defines the interface for announcing finished sync runs.
type Notifier interface {
	SendRunSummary(ctx context.Context, summary *RunSummary) error
}

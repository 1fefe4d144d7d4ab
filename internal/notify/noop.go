package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded summaries. It is used
// when Discord is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards summaries with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendRunSummary logs and discards a run summary.
func (n *NoOpNotifier) SendRunSummary(_ context.Context, summary *RunSummary) error {
	n.log.Debug("notification discarded (no backend configured)",
		"job", summary.JobName,
		"status", summary.Status,
		"persisted", summary.Counters.Persisted,
		"failed", summary.Counters.Failed,
	)
	return nil
}

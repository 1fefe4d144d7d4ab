package notify

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

var _ Notifier = (*NoOpNotifier)(nil)

func TestNoOpNotifier_SendRunSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	err := n.SendRunSummary(t.Context(), &RunSummary{
		JobName:  "equipment",
		Status:   domain.JobStatusSucceeded,
		Counters: domain.RunCounters{Attempted: 10, Matched: 9, Persisted: 9, Failed: 1},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "job=equipment")
	assert.Contains(t, out, "persisted=9")
	assert.Contains(t, out, "failed=1")
}

package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/osrs-price-tracker/internal/metrics"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

func testSummary(status string, failed int) RunSummary {
	return RunSummary{
		JobName: "equipment",
		Status:  status,
		Counters: domain.RunCounters{
			Attempted: 120,
			Matched:   110,
			Persisted: 110 - failed,
			Failed:    failed,
		},
		Duration: 95 * time.Second,
	}
}

func TestDiscordNotifier_SendRunSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		summary    RunSummary
		statusCode int
		wantErr    bool
		errMsg     string
		wantColor  int
	}{
		{
			name:       "clean run is green",
			summary:    testSummary(domain.JobStatusSucceeded, 0),
			statusCode: http.StatusNoContent,
			wantColor:  colorGreen,
		},
		{
			name:       "run with failed rows is orange",
			summary:    testSummary(domain.JobStatusSucceeded, 3),
			statusCode: http.StatusNoContent,
			wantColor:  colorOrange,
		},
		{
			name:       "failed run is red",
			summary:    testSummary(domain.JobStatusFailed, 0),
			statusCode: http.StatusNoContent,
			wantColor:  colorRed,
		},
		{
			name:       "discord returns 429 rate limited",
			summary:    testSummary(domain.JobStatusSucceeded, 0),
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400 error",
			summary:    testSummary(domain.JobStatusSucceeded, 0),
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)

					err := json.NewDecoder(r.Body).Decode(&received)
					assert.NoError(t, err)

					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL)
			err := d.SendRunSummary(context.Background(), &tt.summary)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Equal(t, "Sync equipment: "+tt.summary.Status, embed.Title)

			fieldMap := make(map[string]string)
			for _, f := range embed.Fields {
				fieldMap[f.Name] = f.Value
			}
			assert.Equal(t, "120", fieldMap["Attempted"])
			assert.Equal(t, "10", fieldMap["Unmatched"])
			assert.Equal(t, "1m35s", fieldMap["Duration"])
			assert.NotContains(t, fieldMap, "Inserted")
		})
	}
}

func TestDiscordNotifier_SendRunSummary_ConsumableCounts(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := testSummary(domain.JobStatusFailed, 0)
	s.JobName = "consumables"
	s.Counters.Inserted = 4
	s.Counters.Updated = 106
	s.Error = "fetching food table: timeout"

	d := NewDiscordNotifier(srv.URL)
	require.NoError(t, d.SendRunSummary(context.Background(), &s))

	require.Len(t, received.Embeds, 1)
	embed := received.Embeds[0]
	assert.Equal(t, s.Error, embed.Description)

	fieldMap := make(map[string]string)
	for _, f := range embed.Fields {
		fieldMap[f.Name] = f.Value
	}
	assert.Equal(t, "4", fieldMap["Inserted"])
	assert.Equal(t, "106", fieldMap["Updated"])
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	s := testSummary(domain.JobStatusSucceeded, 0)
	err := d.SendRunSummary(context.Background(), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	s := testSummary(domain.JobStatusSucceeded, 0)
	err := d.SendRunSummary(context.Background(), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}

func getNotificationHistogramSampleCount() uint64 {
	ch := make(chan prometheus.Metric, 1)
	metrics.NotificationDuration.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestSendRunSummary_ObservesNotificationDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := getNotificationHistogramSampleCount()

	d := NewDiscordNotifier(srv.URL)
	err := d.SendRunSummary(context.Background(), &RunSummary{JobName: "prices", Status: domain.JobStatusSucceeded})
	require.NoError(t, err)

	after := getNotificationHistogramSampleCount()
	assert.Greater(t, after, before, "NotificationDuration histogram sample count should increase")
}

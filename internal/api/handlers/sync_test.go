package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/osrs-price-tracker/internal/api/handlers"
	"github.com/donaldgifford/osrs-price-tracker/internal/engine"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// mockRunner implements JobRunner for testing.
type mockRunner struct {
	counters domain.RunCounters
	err      error
	gotJob   string
}

func (m *mockRunner) RunNow(_ context.Context, job string) (domain.RunCounters, error) {
	m.gotJob = job
	return m.counters, m.err
}

func TestSync(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		job        string
		runner     *mockRunner
		wantStatus int
		wantBody   []string
	}{
		{
			name: "success returns counters",
			job:  engine.JobEquipment,
			runner: &mockRunner{counters: domain.RunCounters{
				Attempted: 120, Matched: 110, Persisted: 108, Failed: 2,
			}},
			wantStatus: http.StatusOK,
			wantBody: []string{
				`"job":"equipment"`,
				`"status":"succeeded"`,
				`"persisted":108`,
				`"unmatched":10`,
			},
		},
		{
			name:       "unknown job",
			job:        "ingestion",
			runner:     &mockRunner{err: fmt.Errorf("%w: %q", engine.ErrUnknownJob, "ingestion")},
			wantStatus: http.StatusNotFound,
			wantBody:   []string{"unknown job"},
		},
		{
			name:       "scraping disabled",
			job:        engine.JobConsumables,
			runner:     &mockRunner{err: engine.ErrScrapingDisabled},
			wantStatus: http.StatusConflict,
			wantBody:   []string{"consumables sync unavailable"},
		},
		{
			name:       "run failure",
			job:        engine.JobPrices,
			runner:     &mockRunner{err: errors.New("pricing API error (status 502)")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{"sync prices failed", "status 502"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterSyncRoutes(api, handlers.NewSyncHandler(tt.runner))

			resp := api.Post("/api/v1/sync/" + tt.job)
			require.Equal(t, tt.wantStatus, resp.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
			assert.Equal(t, tt.job, tt.runner.gotJob)
		})
	}
}

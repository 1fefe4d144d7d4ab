package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/osrs-price-tracker/internal/api/handlers"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// mockJobsProvider is a test double for JobsProvider.
type mockJobsProvider struct {
	latestRuns []domain.JobRun
	history    []domain.JobRun
	err        error

	gotName  string
	gotLimit int
}

func (m *mockJobsProvider) ListLatestJobRuns(_ context.Context) ([]domain.JobRun, error) {
	return m.latestRuns, m.err
}

func (m *mockJobsProvider) ListJobRuns(_ context.Context, name string, limit int) ([]domain.JobRun, error) {
	m.gotName, m.gotLimit = name, limit
	return m.history, m.err
}

func sampleJobRun(jobName, status string) domain.JobRun {
	now := time.Now().Truncate(time.Second)
	rows := 412
	return domain.JobRun{
		ID:           "job-run-id-1",
		JobName:      jobName,
		StartedAt:    now,
		Status:       status,
		RowsAffected: &rows,
	}
}

func TestListJobs_Success(t *testing.T) {
	t.Parallel()

	runs := []domain.JobRun{
		sampleJobRun("equipment", domain.JobStatusSucceeded),
		sampleJobRun("prices", domain.JobStatusFailed),
	}
	h := handlers.NewJobsHandler(&mockJobsProvider{latestRuns: runs})

	_, api := humatest.New(t)
	handlers.RegisterJobRoutes(api, h)

	resp := api.Get("/api/v1/jobs")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"job_name":"equipment"`)
	assert.Contains(t, resp.Body.String(), `"rows_affected":412`)
	assert.Contains(t, resp.Body.String(), `"status":"failed"`)
}

func TestListJobs_Empty(t *testing.T) {
	t.Parallel()

	h := handlers.NewJobsHandler(&mockJobsProvider{latestRuns: nil})

	_, api := humatest.New(t)
	handlers.RegisterJobRoutes(api, h)

	resp := api.Get("/api/v1/jobs")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "[]")
}

func TestListJobs_Error(t *testing.T) {
	t.Parallel()

	h := handlers.NewJobsHandler(&mockJobsProvider{err: errors.New("db error")})

	_, api := humatest.New(t)
	handlers.RegisterJobRoutes(api, h)

	resp := api.Get("/api/v1/jobs")
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "listing jobs failed")
}

func TestGetJobHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		provider   *mockJobsProvider
		wantStatus int
		wantLimit  int
		wantBody   string
	}{
		{
			name: "default limit",
			path: "/api/v1/jobs/consumables",
			provider: &mockJobsProvider{history: []domain.JobRun{
				sampleJobRun("consumables", domain.JobStatusSucceeded),
				sampleJobRun("consumables", domain.JobStatusCrashed),
			}},
			wantStatus: http.StatusOK,
			wantLimit:  20,
			wantBody:   `"status":"crashed"`,
		},
		{
			name:       "explicit limit",
			path:       "/api/v1/jobs/catalog?limit=3",
			provider:   &mockJobsProvider{},
			wantStatus: http.StatusOK,
			wantLimit:  3,
			wantBody:   "[]",
		},
		{
			name:       "unknown job",
			path:       "/api/v1/jobs/ingestion",
			provider:   &mockJobsProvider{},
			wantStatus: http.StatusNotFound,
			wantBody:   "unknown job",
		},
		{
			name:       "store error",
			path:       "/api/v1/jobs/prices",
			provider:   &mockJobsProvider{err: errors.New("db error")},
			wantStatus: http.StatusInternalServerError,
			wantLimit:  20,
			wantBody:   "fetching job history failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(tt.provider))

			resp := api.Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
			assert.Equal(t, tt.wantLimit, tt.provider.gotLimit)
		})
	}
}

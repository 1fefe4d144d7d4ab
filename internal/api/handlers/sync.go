package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/osrs-price-tracker/internal/engine"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// JobRunner runs one sync job on demand and reports its counters.
type JobRunner interface {
	RunNow(ctx context.Context, job string) (domain.RunCounters, error)
}

// SyncHandler handles manual sync trigger requests.
type SyncHandler struct {
	runner JobRunner
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(r JobRunner) *SyncHandler {
	return &SyncHandler{runner: r}
}

// SyncInput selects the job to run.
type SyncInput struct {
	Job string `path:"job" doc:"Sync job (catalog, prices, equipment, consumables)"`
}

// SyncOutput is the response body for a completed sync run.
type SyncOutput struct {
	Body struct {
		Job       string             `json:"job"       example:"equipment"`
		Status    string             `json:"status"    example:"succeeded"`
		Counters  domain.RunCounters `json:"counters"`
		Unmatched int                `json:"unmatched" doc:"Attempted rows with no catalog item"`
	}
}

// Sync runs one job to completion and returns its counters.
func (h *SyncHandler) Sync(ctx context.Context, input *SyncInput) (*SyncOutput, error) {
	counters, err := h.runner.RunNow(ctx, input.Job)
	switch {
	case errors.Is(err, engine.ErrUnknownJob):
		return nil, huma.Error404NotFound(err.Error())
	case errors.Is(err, engine.ErrScrapingDisabled):
		return nil, huma.Error409Conflict(input.Job + " sync unavailable: " + err.Error())
	case err != nil:
		return nil, huma.Error500InternalServerError("sync " + input.Job + " failed: " + err.Error())
	}

	resp := &SyncOutput{}
	resp.Body.Job = input.Job
	resp.Body.Status = domain.JobStatusSucceeded
	resp.Body.Counters = counters
	resp.Body.Unmatched = counters.Unmatched()
	return resp, nil
}

// RegisterSyncRoutes registers the manual sync endpoint with the Huma API.
func RegisterSyncRoutes(api huma.API, h *SyncHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-sync",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync/{job}",
		Summary:     "Run a sync job",
		Description: "Runs one sync job to completion: catalog and prices from the pricing API, " +
			"equipment and consumables from the wiki. The run is recorded in the job history.",
		Tags: []string{"sync"},
		Errors: []int{
			http.StatusNotFound,
			http.StatusConflict,
			http.StatusInternalServerError,
		},
	}, h.Sync)
}

package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// SyncResult is the outcome of a manually triggered sync run.
type SyncResult struct {
	Job       string             `json:"job"`
	Status    string             `json:"status"`
	Counters  domain.RunCounters `json:"counters"`
	Unmatched int                `json:"unmatched"`
}

// Sync runs one sync job on the server and waits for it to finish.
func (c *Client) Sync(ctx context.Context, job string) (*SyncResult, error) {
	var res SyncResult
	if err := c.post(ctx, "/api/v1/sync/"+url.PathEscape(job), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListJobs returns the most recent run of each sync job.
func (c *Client) ListJobs(ctx context.Context) ([]domain.JobRun, error) {
	var runs []domain.JobRun
	if err := c.get(ctx, "/api/v1/jobs", nil, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetJobHistory returns the run history of one sync job. A limit of zero
// uses the server default.
func (c *Client) GetJobHistory(ctx context.Context, jobName string, limit int) ([]domain.JobRun, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var runs []domain.JobRun
	if err := c.get(ctx, "/api/v1/jobs/"+url.PathEscape(jobName), q, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

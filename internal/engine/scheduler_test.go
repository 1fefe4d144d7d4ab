package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/osrs-price-tracker/internal/metrics"
	"github.com/donaldgifford/osrs-price-tracker/internal/notify"
	notifyMocks "github.com/donaldgifford/osrs-price-tracker/internal/notify/mocks"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

const (
	testWeekly = "59 23 * * 3"
	testPrices = "0 */3 * * *"
)

func newTestScheduler(t *testing.T, d *testDeps, opts ...EngineOption) (*Scheduler, *notifyMocks.MockNotifier) {
	t.Helper()
	n := notifyMocks.NewMockNotifier(t)
	sched, err := NewScheduler(d.engine(opts...), d.store, n, testWeekly, testPrices, quietLogger())
	require.NoError(t, err)
	return sched, n
}

func TestNewScheduler_RegistersCronEntries(t *testing.T) {
	t.Parallel()

	sched, _ := newTestScheduler(t, newTestDeps(t))

	assert.Len(t, sched.Entries(), 2)
	assert.NotZero(t, sched.weeklyEntryID)
	assert.NotZero(t, sched.pricesEntryID)
	assert.NotEqual(t, sched.weeklyEntryID, sched.pricesEntryID)
	assert.Equal(t, 2*time.Hour, sched.staleAfter)
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	_, err := NewScheduler(d.engine(), d.store, nil, "every wednesday", testPrices, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weekly schedule")

	_, err = NewScheduler(d.engine(), d.store, nil, testWeekly, "* * *", quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price schedule")
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	sched, _ := newTestScheduler(t, newTestDeps(t))

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_SyncNextRunTimestamps(t *testing.T) {
	t.Parallel()

	sched, _ := newTestScheduler(t, newTestDeps(t))

	// Start so that cron populates Next times.
	sched.Start()
	defer sched.Stop()

	sched.SyncNextRunTimestamps()

	weeklyNext := ptestutil.ToFloat64(metrics.SchedulerNextRunTimestamp.WithLabelValues(scheduleWeekly))
	pricesNext := ptestutil.ToFloat64(metrics.SchedulerNextRunTimestamp.WithLabelValues(schedulePrices))
	assert.Greater(t, weeklyNext, float64(0), "weekly next timestamp should be set")
	assert.Greater(t, pricesNext, float64(0), "prices next timestamp should be set")

	next := time.Unix(int64(weeklyNext), 0)
	assert.Equal(t, time.Wednesday, next.Weekday())
}

func TestScheduler_RunNow_Success(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sched, n := newTestScheduler(t, d)

	d.expectSession()
	items := []domain.Item{{ID: 1, Name: "Bronze dagger"}, {ID: 2, Name: "Cannonball"}}
	d.source.EXPECT().FetchItems(mock.Anything).Return(items, nil).Once()
	d.session.EXPECT().UpsertItem(mock.Anything, mock.Anything).Return(nil).Twice()

	d.store.EXPECT().InsertJobRun(mock.Anything, JobCatalog).Return("run-id-1", nil).Once()
	d.store.EXPECT().
		CompleteJobRun(mock.Anything, "run-id-1", domain.JobStatusSucceeded, "", 2).
		Return(nil).Once()
	n.EXPECT().SendRunSummary(mock.Anything, mock.MatchedBy(func(s *notify.RunSummary) bool {
		return s.JobName == JobCatalog && s.Status == domain.JobStatusSucceeded && s.Counters.Persisted == 2
	})).Return(nil).Once()

	c, err := sched.RunNow(context.Background(), JobCatalog)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Persisted)
}

func TestScheduler_RunNow_Failure(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sched, n := newTestScheduler(t, d)

	d.source.EXPECT().FetchPrices(mock.Anything).Return(nil, errors.New("status 503")).Once()
	d.store.EXPECT().InsertJobRun(mock.Anything, JobPrices).Return("run-id-2", nil).Once()
	d.store.EXPECT().
		CompleteJobRun(mock.Anything, "run-id-2", domain.JobStatusFailed, "fetching prices: status 503", 0).
		Return(nil).Once()
	n.EXPECT().SendRunSummary(mock.Anything, mock.Anything).Return(errors.New("discord down")).Once()

	before := ptestutil.ToFloat64(metrics.NotificationFailuresTotal)
	_, err := sched.RunNow(context.Background(), JobPrices)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Greater(t, ptestutil.ToFloat64(metrics.NotificationFailuresTotal), before)
}

func TestScheduler_RunNow_JobRunInsertFails(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sched, n := newTestScheduler(t, d)

	d.store.EXPECT().InsertJobRun(mock.Anything, JobCatalog).Return("", errors.New("db down")).Once()
	d.expectSession()
	d.source.EXPECT().FetchItems(mock.Anything).Return([]domain.Item{}, nil).Once()
	n.EXPECT().SendRunSummary(mock.Anything, mock.Anything).Return(nil).Once()

	_, err := sched.RunNow(context.Background(), JobCatalog)
	require.NoError(t, err, "bookkeeping failures do not fail the job")
}

func TestScheduler_RunNow_UnknownJob(t *testing.T) {
	t.Parallel()

	sched, _ := newTestScheduler(t, newTestDeps(t))

	_, err := sched.RunNow(context.Background(), "rescore")
	require.ErrorIs(t, err, ErrUnknownJob)
}

func TestScheduler_RunStartup_ScrapingDisabled(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sched, n := newTestScheduler(t, d, WithScrapingDisabled(true))

	d.store.EXPECT().Acquire(mock.Anything).Return(d.session, nil).Twice()
	d.session.EXPECT().Release().Return().Twice()
	d.source.EXPECT().FetchItems(mock.Anything).Return([]domain.Item{}, nil).Once()
	d.source.EXPECT().FetchPrices(mock.Anything).Return([]domain.PriceSnapshot{}, nil).Once()
	d.source.EXPECT().FetchVolumes(mock.Anything).Return([]domain.ItemVolume{}, nil).Once()

	d.store.EXPECT().InsertJobRun(mock.Anything, JobCatalog).Return("r1", nil).Once()
	d.store.EXPECT().InsertJobRun(mock.Anything, JobPrices).Return("r2", nil).Once()
	d.store.EXPECT().CompleteJobRun(mock.Anything, mock.Anything, domain.JobStatusSucceeded, "", 0).
		Return(nil).Twice()
	n.EXPECT().SendRunSummary(mock.Anything, mock.Anything).Return(nil).Twice()

	sched.RunStartup(context.Background())
}

func TestScheduler_RunStartup_FailureDoesNotStopSiblings(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	sched, n := newTestScheduler(t, d)

	d.store.EXPECT().InsertJobRun(mock.Anything, mock.Anything).Return("r", nil).Times(4)
	d.store.EXPECT().CompleteJobRun(mock.Anything, "r", domain.JobStatusFailed, mock.Anything, 0).
		Return(nil).Times(4)
	n.EXPECT().SendRunSummary(mock.Anything, mock.Anything).Return(nil).Times(4)

	d.source.EXPECT().FetchItems(mock.Anything).Return(nil, errors.New("down")).Once()
	d.source.EXPECT().FetchPrices(mock.Anything).Return(nil, errors.New("down")).Once()
	d.store.EXPECT().Acquire(mock.Anything).Return(nil, errors.New("pool closed")).Once()
	d.fetcher.EXPECT().Fetch(mock.Anything, "https://wiki.test/w/Food/All_food").
		Return(nil, errors.New("timeout")).Once()

	sched.RunStartup(context.Background())
}

func TestScheduler_RecoverStaleJobRuns(t *testing.T) {
	t.Parallel()

	d := newTestDeps(t)
	n := notifyMocks.NewMockNotifier(t)
	sched, err := NewScheduler(d.engine(), d.store, n, testWeekly, testPrices, quietLogger(),
		WithStaleAfter(90*time.Minute),
	)
	require.NoError(t, err)

	d.store.EXPECT().RecoverStaleJobRuns(mock.Anything, 90*time.Minute).Return(3, nil).Once()
	sched.RecoverStaleJobRuns(context.Background())

	d.store.EXPECT().RecoverStaleJobRuns(mock.Anything, 90*time.Minute).Return(0, errors.New("db down")).Once()
	sched.RecoverStaleJobRuns(context.Background())
}

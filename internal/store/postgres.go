package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

const (
	defaultPoolSize     = 10
	defaultQueryTimeout = 5 * time.Second
)

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

var _ Store = (*PostgresStore)(nil)

// Option configures a PostgresStore.
type Option func(*options)

type options struct {
	poolSize     int32
	queryTimeout time.Duration
}

// WithPoolSize bounds the number of pooled connections.
func WithPoolSize(n int32) Option {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// WithQueryTimeout bounds each statement a Session runs.
func WithQueryTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.queryTimeout = d
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string, opts ...Option) (*PostgresStore, error) {
	o := options{poolSize: defaultPoolSize, queryTimeout: defaultQueryTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = o.poolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool, queryTimeout: o.queryTimeout}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// Acquire checks out a pooled connection wrapped in a Session.
func (s *PostgresStore) Acquire(ctx context.Context) (Session, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}
	return &pgSession{conn: conn, timeout: s.queryTimeout}, nil
}

// GetItem returns one item joined with its latest price.
func (s *PostgresStore) GetItem(ctx context.Context, id int) (*domain.ItemWithPrice, error) {
	it := &domain.ItemWithPrice{}
	err := scanItem(s.pool.QueryRow(ctx, queryGetItem, id), it)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}
	return it, nil
}

// ListItems queries items with optional filters, returning results and total count.
func (s *PostgresStore) ListItems(
	ctx context.Context,
	q *ItemQuery,
) ([]domain.ItemWithPrice, int, error) {
	if q == nil {
		q = &ItemQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting items: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []domain.ItemWithPrice
	for rows.Next() {
		var it domain.ItemWithPrice
		if err := scanItem(rows, &it); err != nil {
			return nil, 0, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating items: %w", err)
	}

	return items, total, nil
}

// ListPrices returns every stored price snapshot.
func (s *PostgresStore) ListPrices(ctx context.Context) ([]domain.PriceSnapshot, error) {
	rows, err := s.pool.Query(ctx, queryListPrices)
	if err != nil {
		return nil, fmt.Errorf("querying prices: %w", err)
	}
	defer rows.Close()

	var prices []domain.PriceSnapshot
	for rows.Next() {
		var p domain.PriceSnapshot
		if err := rows.Scan(
			&p.ItemID, &p.CurrentPrice, &p.CurrentTrend,
			&p.TodayPrice, &p.TodayTrend, &p.Volume, &p.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning price: %w", err)
		}
		prices = append(prices, p)
	}

	return prices, rows.Err()
}

// ListEquipment returns every stat row whose item has a positive price.
func (s *PostgresStore) ListEquipment(ctx context.Context) ([]domain.EquipmentWithPrice, error) {
	rows, err := s.pool.Query(ctx, queryListEquipment)
	if err != nil {
		return nil, fmt.Errorf("querying equipment: %w", err)
	}
	defer rows.Close()

	var out []domain.EquipmentWithPrice
	for rows.Next() {
		var e domain.EquipmentWithPrice
		dest := []any{&e.ItemID, &e.ItemName, &e.CurrentPrice, &e.Slot}
		dest = append(dest, statDests(&e.EquipmentStats)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning equipment: %w", err)
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

// ListConsumables returns stored effect rows matching q.
func (s *PostgresStore) ListConsumables(
	ctx context.Context,
	q ConsumableQuery,
) ([]domain.ConsumableWithPrice, error) {
	query, args := q.ToSQL()

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying consumables: %w", err)
	}
	defer rows.Close()

	var out []domain.ConsumableWithPrice
	for rows.Next() {
		var c domain.ConsumableWithPrice
		if err := rows.Scan(
			&c.ItemID, &c.ItemName, &c.CurrentPrice, &c.CurrentTrend,
			&c.TodayPrice, &c.TodayTrend, &c.Volume, &c.FetchedAt,
			&c.EffectType, &c.Skill, &c.Amount, &c.Bites,
		); err != nil {
			return nil, fmt.Errorf("scanning consumable: %w", err)
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

// InsertJobRun records the start of a scheduled job and returns its UUID.
func (s *PostgresStore) InsertJobRun(ctx context.Context, jobName string) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, queryInsertJobRun, jobName).Scan(&id); err != nil {
		return "", fmt.Errorf("inserting job run: %w", err)
	}
	return id, nil
}

// CompleteJobRun marks a job run as finished with the given status and metadata.
func (s *PostgresStore) CompleteJobRun(
	ctx context.Context,
	id string,
	status string,
	errText string,
	rowsAffected int,
) error {
	_, err := s.pool.Exec(ctx, queryCompleteJobRun, id, status, errText, rowsAffected)
	if err != nil {
		return fmt.Errorf("completing job run: %w", err)
	}
	return nil
}

// ListJobRuns returns the most recent runs for a specific job, newest first.
func (s *PostgresStore) ListJobRuns(
	ctx context.Context,
	jobName string,
	limit int,
) ([]domain.JobRun, error) {
	rows, err := s.pool.Query(ctx, queryListJobRuns, jobName, limit)
	if err != nil {
		return nil, fmt.Errorf("querying job runs: %w", err)
	}
	defer rows.Close()

	return scanJobRuns(rows)
}

// ListLatestJobRuns returns the single most recent run for each distinct job name.
func (s *PostgresStore) ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error) {
	rows, err := s.pool.Query(ctx, queryListLatestJobRuns)
	if err != nil {
		return nil, fmt.Errorf("querying latest job runs: %w", err)
	}
	defer rows.Close()

	return scanJobRuns(rows)
}

// RecoverStaleJobRuns marks any 'running' job rows older than olderThan as 'crashed',
// then deletes all rows older than 30 days. Returns the number of rows marked as crashed.
func (s *PostgresStore) RecoverStaleJobRuns(
	ctx context.Context,
	olderThan time.Duration,
) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	tag, err := s.pool.Exec(ctx, queryMarkStaleJobRunsCrashed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("marking stale job runs crashed: %w", err)
	}
	affected := int(tag.RowsAffected())

	if _, err := s.pool.Exec(ctx, queryDeleteOldJobRuns); err != nil {
		return affected, fmt.Errorf("deleting old job runs: %w", err)
	}

	return affected, nil
}

// scanJobRuns scans rows from a job_runs query into a slice.
func scanJobRuns(rows pgx.Rows) ([]domain.JobRun, error) {
	var runs []domain.JobRun
	for rows.Next() {
		var r domain.JobRun
		if err := rows.Scan(
			&r.ID, &r.JobName, &r.StartedAt, &r.CompletedAt,
			&r.Status, &r.ErrorText, &r.RowsAffected,
		); err != nil {
			return nil, fmt.Errorf("scanning job run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

// scanItem scans an item joined with its price columns.
func scanItem(row scannable, it *domain.ItemWithPrice) error {
	return row.Scan(
		&it.ID, &it.Name, &it.Members, &it.DailyLimit, &it.Value,
		&it.HighAlch, &it.LowAlch, &it.Icon,
		&it.CurrentPrice, &it.CurrentTrend, &it.Volume,
		&it.TodayPrice, &it.TodayTrend, &it.FetchedAt,
	)
}

// statDests returns scan destinations for every stat column in order.
func statDests(s *domain.EquipmentStats) []any {
	dest := make([]any, 0, len(domain.StatColumns))
	for _, stat := range domain.StatColumns {
		dest = append(dest, s.Ref(stat))
	}
	return dest
}

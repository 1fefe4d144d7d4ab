// Package store defines the datastore abstraction for osrs-price-tracker.
// All business logic depends on the Store and Session interfaces, never on
// concrete implementations. This enables mock-based testing without a
// running database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ItemQuery defines optional filters for item listing queries.
type ItemQuery struct {
	Search   *string
	MinPrice *float64
	MaxPrice *float64
	Priced   bool   // only items with a positive current price
	Limit    int    // default 50
	Offset   int
	OrderBy  string // "name", "price", "volume"
}

// ConsumableQuery defines optional filters for consumable effect queries.
type ConsumableQuery struct {
	EffectType *domain.EffectType
	Name       *string // case-insensitive substring of the item name
	Priced     bool    // only effects with a positive price and amount
}

// Store defines the pool-level data access operations. Sync runs never write
// through the Store directly; they Acquire a Session.
type Store interface {
	// Acquire checks out one pooled connection for the duration of a sync
	// run. The caller must Release it.
	Acquire(ctx context.Context) (Session, error)

	// Items
	GetItem(ctx context.Context, id int) (*domain.ItemWithPrice, error)
	ListItems(ctx context.Context, q *ItemQuery) ([]domain.ItemWithPrice, int, error)
	ListPrices(ctx context.Context) ([]domain.PriceSnapshot, error)

	// Equipment and consumables, joined with the latest price.
	ListEquipment(ctx context.Context) ([]domain.EquipmentWithPrice, error)
	ListConsumables(ctx context.Context, q ConsumableQuery) ([]domain.ConsumableWithPrice, error)

	// Scheduler
	InsertJobRun(ctx context.Context, jobName string) (id string, err error)
	CompleteJobRun(ctx context.Context, id string, status string, errText string, rowsAffected int) error
	ListJobRuns(ctx context.Context, jobName string, limit int) ([]domain.JobRun, error)
	ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error)
	RecoverStaleJobRuns(ctx context.Context, olderThan time.Duration) (int, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}

// Session is a persistence handle scoped to one sync run. It satisfies
// matcher.Catalog so the same connection serves lookups and writes.
type Session interface {
	// Catalog lookups, case-insensitive.
	FindItemByName(ctx context.Context, name string) (domain.ItemRef, bool, error)
	FindItemByPartialName(ctx context.Context, name string) (domain.ItemRef, bool, error)

	// Keyed upserts, last writer wins.
	UpsertItem(ctx context.Context, item *domain.Item) error
	UpsertPrice(ctx context.Context, p *domain.PriceSnapshot) error
	UpdateVolume(ctx context.Context, itemID int, volume int64) (bool, error)
	UpsertEquipment(ctx context.Context, attrs *domain.EquipmentAttributes) error
	UpsertConsumableEffect(ctx context.Context, effect *domain.ConsumableEffect) (inserted bool, err error)

	// Release returns the connection to the pool. It is safe to call more
	// than once.
	Release()
}

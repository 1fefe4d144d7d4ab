package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// pgSession is a Session over one checked-out pool connection.
type pgSession struct {
	conn    *pgxpool.Conn
	timeout time.Duration
	once    sync.Once
}

// Release returns the connection to the pool.
func (s *pgSession) Release() {
	s.once.Do(s.conn.Release)
}

func (s *pgSession) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *pgSession) findItem(ctx context.Context, query, name string) (domain.ItemRef, bool, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var ref domain.ItemRef
	err := s.conn.QueryRow(ctx, query, name).Scan(&ref.ID, &ref.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ItemRef{}, false, nil
	}
	if err != nil {
		return domain.ItemRef{}, false, err
	}
	return ref, true, nil
}

// FindItemByName returns the lowest-id item whose name equals name, ignoring case.
func (s *pgSession) FindItemByName(ctx context.Context, name string) (domain.ItemRef, bool, error) {
	ref, ok, err := s.findItem(ctx, queryFindItemByName, name)
	if err != nil {
		return ref, false, fmt.Errorf("finding item by name: %w", err)
	}
	return ref, ok, nil
}

// FindItemByPartialName returns the lowest-id item whose name contains name,
// ignoring case.
func (s *pgSession) FindItemByPartialName(ctx context.Context, name string) (domain.ItemRef, bool, error) {
	ref, ok, err := s.findItem(ctx, queryFindItemByPartialName, likePattern(name))
	if err != nil {
		return ref, false, fmt.Errorf("finding item by partial name: %w", err)
	}
	return ref, ok, nil
}

// UpsertItem inserts or updates a catalog item by id.
func (s *pgSession) UpsertItem(ctx context.Context, item *domain.Item) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	args := pgx.NamedArgs{
		"id":        item.ID,
		"name":      item.Name,
		"members":   item.Members,
		"max_limit": item.DailyLimit,
		"value":     item.Value,
		"highalch":  item.HighAlch,
		"lowalch":   item.LowAlch,
		"icon":      item.Icon,
	}
	if _, err := s.conn.Exec(ctx, queryUpsertItem, args); err != nil {
		return fmt.Errorf("upserting item %d: %w", item.ID, err)
	}
	return nil
}

// UpsertPrice replaces the price snapshot for an item and stamps FetchedAt.
func (s *pgSession) UpsertPrice(ctx context.Context, p *domain.PriceSnapshot) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	args := pgx.NamedArgs{
		"item_id":       p.ItemID,
		"current_price": p.CurrentPrice,
		"current_trend": string(p.CurrentTrend),
		"today_price":   p.TodayPrice,
		"today_trend":   string(p.TodayTrend),
	}
	if err := s.conn.QueryRow(ctx, queryUpsertPrice, args).Scan(&p.FetchedAt); err != nil {
		return fmt.Errorf("upserting price for item %d: %w", p.ItemID, err)
	}
	return nil
}

// UpdateVolume sets the trading volume on an existing price row. It reports
// false when the item has no price row yet.
func (s *pgSession) UpdateVolume(ctx context.Context, itemID int, volume int64) (bool, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	tag, err := s.conn.Exec(ctx, queryUpdateVolume, itemID, volume)
	if err != nil {
		return false, fmt.Errorf("updating volume for item %d: %w", itemID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpsertEquipment inserts or replaces the stat row for an item.
func (s *pgSession) UpsertEquipment(ctx context.Context, attrs *domain.EquipmentAttributes) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	args := pgx.NamedArgs{
		"item_id": attrs.ItemID,
		"slot":    string(attrs.Slot),
	}
	for _, stat := range domain.StatColumns {
		args[stat] = attrs.Get(stat)
	}

	if _, err := s.conn.Exec(ctx, queryUpsertEquipment, args); err != nil {
		return fmt.Errorf("upserting equipment for item %d: %w", attrs.ItemID, err)
	}
	return nil
}

// UpsertConsumableEffect inserts or updates one effect row by its
// (item, effect type, skill) key and reports whether a new row was created.
func (s *pgSession) UpsertConsumableEffect(
	ctx context.Context,
	effect *domain.ConsumableEffect,
) (bool, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	args := pgx.NamedArgs{
		"item_id":     effect.ItemID,
		"effect_type": string(effect.EffectType),
		"skill":       effect.Skill,
		"amount":      effect.Amount,
		"bites":       effect.Bites,
	}

	var inserted bool
	if err := s.conn.QueryRow(ctx, queryUpsertConsumableEffect, args).Scan(&inserted); err != nil {
		return false, fmt.Errorf(
			"upserting %s effect for item %d: %w", effect.EffectType, effect.ItemID, err,
		)
	}
	return inserted, nil
}

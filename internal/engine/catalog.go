package engine

import (
	"context"
	"fmt"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// RunCatalogSync upserts every item from the pricing API catalog. Catalog
// rows carry their own id, so every attempted row counts as matched.
func (eng *Engine) RunCatalogSync(ctx context.Context) (c domain.RunCounters, err error) {
	ctx, done := eng.begin(ctx, JobCatalog)
	defer func() { done(&c, &err) }()

	items, err := eng.source.FetchItems(ctx)
	if err != nil {
		return c, fmt.Errorf("fetching catalog: %w", err)
	}

	sess, err := eng.acquire(ctx)
	if err != nil {
		return c, err
	}
	defer sess.Release()

	for i := range items {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return c, ctxErr
		}
		it := &items[i]
		c.Attempted++
		c.Matched++
		if upErr := sess.UpsertItem(ctx, it); upErr != nil {
			c.Failed++
			eng.log.ErrorContext(ctx, "upserting item", "item_id", it.ID, "name", it.Name, "error", upErr)
			continue
		}
		c.Persisted++
	}
	return c, nil
}

// RunPriceSync upserts the latest price of every item, then applies trading
// volumes to the price rows. Prices for items missing from the catalog fail
// on the foreign key and are counted as failed. Volumes for items without a
// price row are skipped.
func (eng *Engine) RunPriceSync(ctx context.Context) (c domain.RunCounters, err error) {
	ctx, done := eng.begin(ctx, JobPrices)
	defer func() { done(&c, &err) }()

	prices, err := eng.source.FetchPrices(ctx)
	if err != nil {
		return c, fmt.Errorf("fetching prices: %w", err)
	}

	sess, err := eng.acquire(ctx)
	if err != nil {
		return c, err
	}
	defer sess.Release()

	for i := range prices {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return c, ctxErr
		}
		p := &prices[i]
		c.Attempted++
		c.Matched++
		if upErr := sess.UpsertPrice(ctx, p); upErr != nil {
			c.Failed++
			eng.log.ErrorContext(ctx, "upserting price", "item_id", p.ItemID, "error", upErr)
			continue
		}
		c.Persisted++
	}

	volumes, err := eng.source.FetchVolumes(ctx)
	if err != nil {
		return c, fmt.Errorf("fetching volumes: %w", err)
	}

	var skipped int
	for _, v := range volumes {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return c, ctxErr
		}
		ok, upErr := sess.UpdateVolume(ctx, v.ItemID, v.Volume)
		switch {
		case upErr != nil:
			c.Failed++
			eng.log.ErrorContext(ctx, "updating volume", "item_id", v.ItemID, "error", upErr)
		case ok:
			c.Updated++
		default:
			skipped++
		}
	}
	if skipped > 0 {
		eng.log.DebugContext(ctx, "volumes without a price row", "count", skipped)
	}
	return c, nil
}

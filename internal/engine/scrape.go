package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/donaldgifford/osrs-price-tracker/internal/store"
	"github.com/donaldgifford/osrs-price-tracker/pkg/matcher"
	"github.com/donaldgifford/osrs-price-tracker/pkg/tablescrape"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// RunEquipmentSync scrapes every configured slot page in order, pausing
// between fetches. A slot whose page cannot be acquired is skipped and the
// remaining slots still run; the returned error joins the failed slots.
func (eng *Engine) RunEquipmentSync(ctx context.Context) (c domain.RunCounters, err error) {
	ctx, done := eng.begin(ctx, JobEquipment)
	defer func() { done(&c, &err) }()

	if eng.scrapingDisabled {
		return c, ErrScrapingDisabled
	}

	sess, err := eng.acquire(ctx)
	if err != nil {
		return c, err
	}
	defer sess.Release()

	m := matcher.New(sess)
	var slotErrs []error

	for i, page := range eng.slots {
		if i > 0 {
			if err := sleep(ctx, eng.slotDelay); err != nil {
				return c, err
			}
		}

		sc, slotErr := eng.syncSlot(ctx, sess, m, page)
		c.Add(sc)
		if slotErr != nil {
			eng.log.ErrorContext(ctx, "slot sync failed", "slot", page.Slot, "url", page.URL, "error", slotErr)
			slotErrs = append(slotErrs, fmt.Errorf("slot %s: %w", page.Slot, slotErr))
			continue
		}
		eng.log.InfoContext(ctx, "slot synced",
			"slot", page.Slot,
			"attempted", sc.Attempted,
			"matched", sc.Matched,
			"persisted", sc.Persisted,
		)
	}

	return c, errors.Join(slotErrs...)
}

func (eng *Engine) syncSlot(
	ctx context.Context,
	sess store.Session,
	m *matcher.Matcher,
	page SlotPage,
) (c domain.RunCounters, err error) {
	doc, err := eng.fetcher.Fetch(ctx, page.URL)
	if err != nil {
		return c, fmt.Errorf("fetching slot table: %w", err)
	}

	for _, row := range tablescrape.ExtractEquipment(doc, page.Slot) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return c, ctxErr
		}
		c.Attempted++

		res, matchErr := m.Match(ctx, row.DisplayName)
		if matchErr != nil {
			c.Failed++
			c.LookupFailed++
			eng.log.ErrorContext(ctx, "matching equipment", "name", row.DisplayName, "error", matchErr)
			continue
		}
		if !res.Matched() {
			eng.log.DebugContext(ctx, "equipment unmatched", "name", row.DisplayName, "slot", page.Slot)
			continue
		}
		c.Matched++

		attrs := &domain.EquipmentAttributes{
			ItemID:         res.Item.ID,
			Slot:           page.Slot,
			EquipmentStats: row.Stats,
		}
		if upErr := sess.UpsertEquipment(ctx, attrs); upErr != nil {
			c.Failed++
			eng.log.ErrorContext(ctx, "upserting equipment",
				"name", row.DisplayName,
				"item_id", res.Item.ID,
				"error", upErr,
			)
			continue
		}
		c.Persisted++
	}
	return c, nil
}

// RunConsumableSync scrapes the food table and upserts a heal effect per
// matched item, plus a delayed heal effect when the notation carried one.
// A dose suffix found by the matcher overrides the parsed bites.
func (eng *Engine) RunConsumableSync(ctx context.Context) (c domain.RunCounters, err error) {
	ctx, done := eng.begin(ctx, JobConsumables)
	defer func() { done(&c, &err) }()

	if eng.scrapingDisabled {
		return c, ErrScrapingDisabled
	}

	doc, err := eng.fetcher.Fetch(ctx, eng.foodURL)
	if err != nil {
		return c, fmt.Errorf("fetching food table: %w", err)
	}
	rows := tablescrape.ExtractConsumables(doc)

	sess, err := eng.acquire(ctx)
	if err != nil {
		return c, err
	}
	defer sess.Release()

	m := matcher.New(sess)
	for i := range rows {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return c, ctxErr
		}
		eng.syncConsumable(ctx, sess, m, &rows[i], &c)
	}
	return c, nil
}

func (eng *Engine) syncConsumable(
	ctx context.Context,
	sess store.Session,
	m *matcher.Matcher,
	row *domain.ConsumableRow,
	c *domain.RunCounters,
) {
	c.Attempted++

	res, err := m.MatchConsumable(ctx, row.DisplayName)
	if err != nil {
		c.Failed++
		c.LookupFailed++
		eng.log.ErrorContext(ctx, "matching consumable", "name", row.DisplayName, "error", err)
		return
	}
	if !res.Matched() {
		eng.log.DebugContext(ctx, "consumable unmatched", "name", row.DisplayName)
		return
	}
	c.Matched++

	bites := max(res.Bites(row.Healing.Bites), 1)

	heal := &domain.ConsumableEffect{
		ItemID:     res.Item.ID,
		EffectType: domain.EffectHeal,
		Skill:      domain.SkillHitpoints,
		Amount:     float64(row.Healing.Amount),
		Bites:      bites,
	}
	if !eng.upsertEffect(ctx, sess, heal, row.DisplayName, c) {
		c.Failed++
		return
	}
	c.Persisted++

	if row.Healing.Delayed <= 0 {
		return
	}
	delayed := &domain.ConsumableEffect{
		ItemID:     res.Item.ID,
		EffectType: domain.EffectDelayedHeal,
		Skill:      domain.SkillHitpoints,
		Amount:     float64(row.Healing.Delayed),
		Bites:      bites,
	}
	if !eng.upsertEffect(ctx, sess, delayed, row.DisplayName, c) {
		c.Failed++
	}
}

func (eng *Engine) upsertEffect(
	ctx context.Context,
	sess store.Session,
	effect *domain.ConsumableEffect,
	name string,
	c *domain.RunCounters,
) bool {
	inserted, err := sess.UpsertConsumableEffect(ctx, effect)
	if err != nil {
		eng.log.ErrorContext(ctx, "upserting consumable effect",
			"name", name,
			"item_id", effect.ItemID,
			"effect_type", effect.EffectType,
			"error", err,
		)
		return false
	}
	if inserted {
		c.Inserted++
	} else {
		c.Updated++
	}
	return true
}

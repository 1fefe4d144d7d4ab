package views

import (
	"time"

	"github.com/donaldgifford/osrs-price-tracker/pkg/efficiency"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// Healing food limits.
const (
	DefaultHealingFoods = 10
	MaxHealingFoods     = 50
)

// EffectEfficiency is one effect of a consumable with its value per coin.
type EffectEfficiency struct {
	Skill         string   `json:"skill"`
	Amount        float64  `json:"amount"`
	Efficiency    *float64 `json:"efficiency"`
	AmountPerBite float64  `json:"amount_per_bite"`
}

// ConsumableSummary groups every effect of one consumable.
type ConsumableSummary struct {
	ItemID       int                                     `json:"item_id"`
	ItemName     string                                  `json:"item_name"`
	CurrentPrice *float64                                `json:"current_price"`
	Bites        int                                     `json:"bites"`
	Effects      map[domain.EffectType]EffectEfficiency `json:"effects"`
}

// EffectRanking is one consumable effect ranked by amount per coin.
type EffectRanking struct {
	ItemID       int               `json:"item_id"`
	ItemName     string            `json:"item_name"`
	CurrentPrice float64           `json:"current_price"`
	EffectType   domain.EffectType `json:"effect_type"`
	Skill        string            `json:"skill"`
	Amount       float64           `json:"amount"`
	Bites        int               `json:"bites"`
	Efficiency   float64           `json:"efficiency"`
}

// HealingFood is a heal effect ranked by hitpoints per coin.
type HealingFood struct {
	ItemID         int     `json:"item_id"`
	ItemName       string  `json:"item_name"`
	CurrentPrice   float64 `json:"current_price"`
	Healing        float64 `json:"healing"`
	Bites          int     `json:"bites"`
	HealingPerGP   float64 `json:"healing_per_gp"`
	HealingPerBite float64 `json:"healing_per_bite"`
}

// EffectDetail is a stored effect without price data.
type EffectDetail struct {
	EffectType domain.EffectType `json:"effect_type"`
	Skill      string            `json:"skill"`
	Amount     float64           `json:"amount"`
	Bites      int               `json:"bites"`
}

// ConsumableMatch is a consumable found by name, with its price snapshot and
// every stored effect.
type ConsumableMatch struct {
	ItemID       int            `json:"item_id"`
	ItemName     string         `json:"item_name"`
	CurrentPrice *float64       `json:"current_price"`
	CurrentTrend *string        `json:"current_trend"`
	Volume       *int64         `json:"volume"`
	TodayPrice   *float64       `json:"today_price"`
	TodayTrend   *string        `json:"today_trend"`
	FetchedAt    *time.Time     `json:"fetched_at"`
	Effects      []EffectDetail `json:"effects"`
}

// GroupConsumables folds effect rows into one summary per item, in order of
// first appearance. The item's bite count is taken from its first row.
func GroupConsumables(rows []domain.ConsumableWithPrice) []ConsumableSummary {
	var out []ConsumableSummary
	index := make(map[int]int)

	for i := range rows {
		r := &rows[i]
		pos, ok := index[r.ItemID]
		if !ok {
			pos = len(out)
			index[r.ItemID] = pos
			out = append(out, ConsumableSummary{
				ItemID:       r.ItemID,
				ItemName:     r.ItemName,
				CurrentPrice: r.CurrentPrice,
				Bites:        r.Bites,
				Effects:      make(map[domain.EffectType]EffectEfficiency),
			})
		}

		amount := r.Amount
		out[pos].Effects[r.EffectType] = EffectEfficiency{
			Skill:         r.Skill,
			Amount:        amount,
			Efficiency:    positive(efficiency.PerPrice(&amount, r.CurrentPrice, efficiency.ConsumablePlaces)),
			AmountPerBite: efficiency.PerBite(amount, r.Bites),
		}
	}
	return out
}

// RankEffects orders priced effect rows by amount per coin, best first. Rows
// without a positive amount or price are dropped.
func RankEffects(rows []domain.ConsumableWithPrice) []EffectRanking {
	ranked := make([]EffectRanking, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		eff := positive(efficiency.PerPrice(&r.Amount, r.CurrentPrice, efficiency.ConsumablePlaces))
		if eff == nil {
			continue
		}
		ranked = append(ranked, EffectRanking{
			ItemID:       r.ItemID,
			ItemName:     r.ItemName,
			CurrentPrice: *r.CurrentPrice,
			EffectType:   r.EffectType,
			Skill:        r.Skill,
			Amount:       r.Amount,
			Bites:        r.Bites,
			Efficiency:   *eff,
		})
	}
	return efficiency.Rank(ranked, func(e EffectRanking) *float64 { return &e.Efficiency }, 0)
}

// TopHealing returns the limit heal effects with the most hitpoints per coin.
// A non-positive limit means DefaultHealingFoods and limits above
// MaxHealingFoods are capped.
func TopHealing(rows []domain.ConsumableWithPrice, limit int) []HealingFood {
	if limit <= 0 {
		limit = DefaultHealingFoods
	}
	limit = min(limit, MaxHealingFoods)

	var foods []HealingFood
	for _, e := range RankEffects(rows) {
		if e.EffectType != domain.EffectHeal {
			continue
		}
		foods = append(foods, HealingFood{
			ItemID:         e.ItemID,
			ItemName:       e.ItemName,
			CurrentPrice:   e.CurrentPrice,
			Healing:        e.Amount,
			Bites:          e.Bites,
			HealingPerGP:   e.Efficiency,
			HealingPerBite: efficiency.PerBite(e.Amount, e.Bites),
		})
		if len(foods) == limit {
			break
		}
	}
	return foods
}

// SearchConsumables groups effect rows per item with the item's price
// snapshot, in order of first appearance.
func SearchConsumables(rows []domain.ConsumableWithPrice) []ConsumableMatch {
	var out []ConsumableMatch
	index := make(map[int]int)

	for i := range rows {
		r := &rows[i]
		pos, ok := index[r.ItemID]
		if !ok {
			pos = len(out)
			index[r.ItemID] = pos
			out = append(out, ConsumableMatch{
				ItemID:       r.ItemID,
				ItemName:     r.ItemName,
				CurrentPrice: r.CurrentPrice,
				CurrentTrend: r.CurrentTrend,
				Volume:       r.Volume,
				TodayPrice:   r.TodayPrice,
				TodayTrend:   r.TodayTrend,
				FetchedAt:    r.FetchedAt,
			})
		}
		out[pos].Effects = append(out[pos].Effects, EffectDetail{
			EffectType: r.EffectType,
			Skill:      r.Skill,
			Amount:     r.Amount,
			Bites:      r.Bites,
		})
	}
	return out
}

// positive drops non-positive efficiencies, which only arise from negative
// amounts.
func positive(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

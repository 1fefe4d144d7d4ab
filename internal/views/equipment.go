// Package views shapes stored rows into the read models served by the API.
// Efficiencies are derived here on every read and never persisted.
package views

import (
	"errors"
	"fmt"
	"slices"

	"github.com/donaldgifford/osrs-price-tracker/pkg/efficiency"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// DefaultPerSlot is how many items OptimalBySlot keeps per slot when no limit
// is given.
const DefaultPerSlot = 5

// ErrUnknownAttribute is returned when ranking by a stat that is not a
// higher-is-better equipment stat.
var ErrUnknownAttribute = errors.New("unknown attribute")

// StatValue is one raw stat and its efficiency at the current price.
type StatValue struct {
	Value      *float64 `json:"value"`
	Efficiency *float64 `json:"efficiency"`
}

// EquipmentEfficiency is a priced equipment row with every stat paired with
// its efficiency. Weight and speed carry coins per unit instead.
type EquipmentEfficiency struct {
	ItemID       int                  `json:"item_id"`
	ItemName     string               `json:"item_name"`
	CurrentPrice *float64             `json:"current_price"`
	Slot         domain.Slot          `json:"slot"`
	Stats        map[string]StatValue `json:"stats"`
}

// OptimalEquipment is one entry of a per-slot ranking by a single stat.
type OptimalEquipment struct {
	ItemID         int         `json:"item_id"`
	ItemName       string      `json:"item_name"`
	CurrentPrice   float64     `json:"current_price"`
	Slot           domain.Slot `json:"slot"`
	AttributeValue float64     `json:"attribute_value"`
	Efficiency     float64     `json:"efficiency"`
}

// AllEquipment pairs every stat of rows with its efficiency, keeping the
// input order.
func AllEquipment(rows []domain.EquipmentWithPrice) []EquipmentEfficiency {
	out := make([]EquipmentEfficiency, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		eff := efficiency.Equipment(&r.EquipmentStats, r.CurrentPrice)

		stats := make(map[string]StatValue, len(domain.StatColumns))
		for _, stat := range domain.StatColumns {
			stats[stat] = StatValue{Value: r.Get(stat), Efficiency: eff[stat]}
		}

		out = append(out, EquipmentEfficiency{
			ItemID:       r.ItemID,
			ItemName:     r.ItemName,
			CurrentPrice: r.CurrentPrice,
			Slot:         r.Slot,
			Stats:        stats,
		})
	}
	return out
}

// OptimalBySlot ranks rows by attribute per coin and keeps the best limit
// entries of each slot. Only rows with a positive attribute and a positive
// price take part. Slots are returned in name order.
func OptimalBySlot(
	rows []domain.EquipmentWithPrice,
	attribute string,
	limit int,
) ([]OptimalEquipment, error) {
	if !domain.IsRankableStat(attribute) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, attribute)
	}
	if limit <= 0 {
		limit = DefaultPerSlot
	}

	bySlot := make(map[domain.Slot][]OptimalEquipment)
	for i := range rows {
		r := &rows[i]
		value := r.Get(attribute)
		if value == nil || *value <= 0 {
			continue
		}
		eff := efficiency.PerPrice(value, r.CurrentPrice, efficiency.EquipmentPlaces)
		if eff == nil {
			continue
		}
		bySlot[r.Slot] = append(bySlot[r.Slot], OptimalEquipment{
			ItemID:         r.ItemID,
			ItemName:       r.ItemName,
			CurrentPrice:   *r.CurrentPrice,
			Slot:           r.Slot,
			AttributeValue: *value,
			Efficiency:     *eff,
		})
	}

	slots := make([]domain.Slot, 0, len(bySlot))
	for s := range bySlot {
		slots = append(slots, s)
	}
	slices.Sort(slots)

	var out []OptimalEquipment
	for _, s := range slots {
		out = append(out, efficiency.Rank(bySlot[s], func(o OptimalEquipment) *float64 {
			return &o.Efficiency
		}, limit)...)
	}
	return out, nil
}

// Package efficiency derives value-per-coin and coin-per-value metrics from a
// raw attribute and a current price. Results are never stored; a nil result
// means the metric is undefined for the inputs.
package efficiency

import (
	"cmp"
	"math"
	"slices"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// Rounding precision per metric.
const (
	EquipmentPlaces  = 9
	ConsumablePlaces = 6
	CostPlaces       = 6
	PerBitePlaces    = 2
)

// Round rounds v to places decimal places, halves away from zero.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

func usable(value, price *float64) bool {
	return value != nil && *value != 0 && price != nil && *price > 0
}

// PerPrice returns value/price rounded to places. It is undefined when value
// is absent or zero or when price is absent or not positive.
func PerPrice(value, price *float64, places int) *float64 {
	if !usable(value, price) {
		return nil
	}
	v := Round(*value / *price, places)
	return &v
}

// CostPer returns price/|value| rounded to CostPlaces, for stats where a lower
// raw value is better. A smaller value gives a larger result.
func CostPer(value, price *float64) *float64 {
	if !usable(value, price) {
		return nil
	}
	v := Round(*price/math.Abs(*value), CostPlaces)
	return &v
}

// PerBite returns amount per bite rounded to PerBitePlaces. A non-positive
// bite count returns amount unchanged.
func PerBite(amount float64, bites int) float64 {
	if bites <= 0 {
		return amount
	}
	return Round(amount/float64(bites), PerBitePlaces)
}

// LowerIsBetter reports whether stat is ranked by cost per unit.
func LowerIsBetter(stat string) bool {
	return stat == domain.StatWeight || stat == domain.StatSpeed
}

// ForStat returns the efficiency of one equipment stat at price.
func ForStat(stat string, value, price *float64) *float64 {
	if LowerIsBetter(stat) {
		return CostPer(value, price)
	}
	return PerPrice(value, price, EquipmentPlaces)
}

// Equipment returns the efficiency of every stat column keyed by stat name.
// Undefined metrics are present with a nil value.
func Equipment(stats *domain.EquipmentStats, price *float64) map[string]*float64 {
	out := make(map[string]*float64, len(domain.StatColumns))
	for _, stat := range domain.StatColumns {
		out[stat] = ForStat(stat, stats.Get(stat), price)
	}
	return out
}

// Rank returns the top n items by descending key. Items whose key is nil are
// dropped rather than sorted last, ties keep their input order, and n <= 0
// returns every ranked item.
func Rank[T any](items []T, key func(T) *float64, n int) []T {
	type scored struct {
		item  T
		score float64
	}

	ranked := make([]scored, 0, len(items))
	for _, it := range items {
		if k := key(it); k != nil {
			ranked = append(ranked, scored{item: it, score: *k})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]T, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}

// Package matcher resolves scraped display names to catalog item ids.
package matcher

import (
	"context"
	"fmt"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// Catalog looks up items by name. Both lookups are case-insensitive and
// return false when nothing matches.
type Catalog interface {
	FindItemByName(ctx context.Context, name string) (domain.ItemRef, bool, error)
	FindItemByPartialName(ctx context.Context, name string) (domain.ItemRef, bool, error)
}

// Strategy names the lookup that produced a match.
type Strategy string

// Strategy constants.
const (
	StrategyNone    Strategy = "none"
	StrategyExact   Strategy = "exact"
	StrategyDose    Strategy = "dose"
	StrategyPartial Strategy = "partial"
)

// Doses are probed in this order. The first hit wins.
var Doses = []int{4, 3, 2, 1}

// Result is the outcome of matching one display name.
type Result struct {
	Item     domain.ItemRef
	Strategy Strategy
	// Dose is the suffix that matched when Strategy is StrategyDose.
	Dose int
}

// Matched reports whether a catalog item was found.
func (r Result) Matched() bool {
	return r.Strategy != StrategyNone
}

// Bites returns the bites per use to store for a consumable. A matched dose
// suffix overrides whatever the table notation said.
func (r Result) Bites(parsed int) int {
	if r.Strategy == StrategyDose && r.Dose > 0 {
		return r.Dose
	}
	return parsed
}

// Matcher resolves names against a Catalog. It has no side effects.
type Matcher struct {
	catalog Catalog
}

// New creates a Matcher over catalog.
func New(catalog Catalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// DoseName returns name with a dose suffix, e.g. "Prayer potion(4)".
func DoseName(name string, dose int) string {
	return fmt.Sprintf("%s(%d)", name, dose)
}

// Match resolves an equipment name: exact, then partial.
func (m *Matcher) Match(ctx context.Context, name string) (Result, error) {
	return m.match(ctx, name, false)
}

// MatchConsumable resolves a consumable name: exact, then each dose suffix,
// then partial.
func (m *Matcher) MatchConsumable(ctx context.Context, name string) (Result, error) {
	return m.match(ctx, name, true)
}

func (m *Matcher) match(ctx context.Context, name string, probeDoses bool) (Result, error) {
	ref, ok, err := m.catalog.FindItemByName(ctx, name)
	if err != nil {
		return Result{Strategy: StrategyNone}, fmt.Errorf("exact lookup %q: %w", name, err)
	}
	if ok {
		return Result{Item: ref, Strategy: StrategyExact}, nil
	}

	if probeDoses {
		for _, dose := range Doses {
			candidate := DoseName(name, dose)
			ref, ok, err = m.catalog.FindItemByName(ctx, candidate)
			if err != nil {
				return Result{Strategy: StrategyNone}, fmt.Errorf("dose lookup %q: %w", candidate, err)
			}
			if ok {
				return Result{Item: ref, Strategy: StrategyDose, Dose: dose}, nil
			}
		}
	}

	ref, ok, err = m.catalog.FindItemByPartialName(ctx, name)
	if err != nil {
		return Result{Strategy: StrategyNone}, fmt.Errorf("partial lookup %q: %w", name, err)
	}
	if ok {
		return Result{Item: ref, Strategy: StrategyPartial}, nil
	}

	return Result{Strategy: StrategyNone}, nil
}

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

func TestParseHealing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		want     domain.Healing
		wantRule string
		wantOK   bool
	}{
		{
			name:     "delayed heal is not a range or subtraction",
			text:     "12 + 9",
			want:     domain.Healing{Amount: 12, Delayed: 9, Bites: 1},
			wantRule: "delayed",
			wantOK:   true,
		},
		{
			name:     "delayed heal without spaces",
			text:     "8+8",
			want:     domain.Healing{Amount: 8, Delayed: 8, Bites: 1},
			wantRule: "delayed",
			wantOK:   true,
		},
		{
			name:     "amount times bites",
			text:     "4 × 3",
			want:     domain.Healing{Amount: 4, Bites: 3},
			wantRule: "multiple",
			wantOK:   true,
		},
		{
			name:     "amount x bites compact",
			text:     "5x2",
			want:     domain.Healing{Amount: 5, Bites: 2},
			wantRule: "multiple",
			wantOK:   true,
		},
		{
			name:     "variable range with bites",
			text:     "(3 - 13) × 4",
			want:     domain.Healing{Amount: 0, Bites: 4},
			wantRule: "variable",
			wantOK:   true,
		},
		{
			name:     "variable range with en dash",
			text:     "(3 – 13) × 2",
			want:     domain.Healing{Amount: 0, Bites: 2},
			wantRule: "variable",
			wantOK:   true,
		},
		{
			name:     "percentage range",
			text:     "3 - 7%",
			want:     domain.Healing{Amount: 0, Bites: 1},
			wantRule: "variable",
			wantOK:   true,
		},
		{
			name:     "random",
			text:     "Random",
			want:     domain.Healing{Amount: 0, Bites: 1},
			wantRule: "variable",
			wantOK:   true,
		},
		{
			name:     "up to",
			text:     "Up to 23",
			want:     domain.Healing{Amount: 0, Bites: 1},
			wantRule: "variable",
			wantOK:   true,
		},
		{
			name:     "bare integer",
			text:     "20",
			want:     domain.Healing{Amount: 20, Bites: 1},
			wantRule: "simple",
			wantOK:   true,
		},
		{
			name:     "integer with trailing note",
			text:     "22 (members)",
			want:     domain.Healing{Amount: 22, Bites: 1},
			wantRule: "simple",
			wantOK:   true,
		},
		{
			name:     "zero bites clamps to one",
			text:     "4 × 0",
			want:     domain.Healing{Amount: 4, Bites: 1},
			wantRule: "multiple",
			wantOK:   true,
		},
		{
			name:     "delayed heal with no-break spaces",
			text:     "12\u00a0+\u00a09",
			want:     domain.Healing{Amount: 12, Delayed: 9, Bites: 1},
			wantRule: "delayed",
			wantOK:   true,
		},
		{
			name:     "amount times bites with no-break spaces",
			text:     "4\u00a0×\u00a03",
			want:     domain.Healing{Amount: 4, Bites: 3},
			wantRule: "multiple",
			wantOK:   true,
		},
		{
			name:     "variable range with no-break spaces",
			text:     "(3\u00a0-\u00a013)\u00a0×\u00a04",
			want:     domain.Healing{Amount: 0, Bites: 4},
			wantRule: "variable",
			wantOK:   true,
		},
		{
			name:     "variable range with thin spaces",
			text:     "(3\u2009–\u200913)\u202f×\u202f2",
			want:     domain.Healing{Amount: 0, Bites: 2},
			wantRule: "variable",
			wantOK:   true,
		},
		{
			name:     "up to with no-break space",
			text:     "Up\u00a0to\u00a023",
			want:     domain.Healing{Amount: 0, Bites: 1},
			wantRule: "variable",
			wantOK:   true,
		},
		{name: "no digits", text: "Heals fully", wantOK: false},
		{name: "empty", text: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, rule, ok := MatchHealing(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRule, rule)
		})
	}
}

func TestHealingRules_Order(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, len(HealingRules()))
	for _, r := range HealingRules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"delayed", "variable", "multiple", "simple"}, names)
}

func TestHealingRules_IndependentlyMatchable(t *testing.T) {
	t.Parallel()

	rules := HealingRules()
	assert.True(t, rules[0].Pattern.MatchString("12 + 9"))
	assert.True(t, rules[1].Pattern.MatchString("(3 - 13)"))
	assert.True(t, rules[2].Pattern.MatchString("4 × 3"))
	assert.True(t, rules[3].Pattern.MatchString("20"))
	assert.False(t, rules[1].Pattern.MatchString("4 × 3"))
}

func TestParseHealing_NonNegativeAmounts(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"12 + 9", "4 × 3", "(3 - 13) × 4", "20", "-5"} {
		h, ok := ParseHealing(text)
		if !ok {
			continue
		}
		assert.GreaterOrEqual(t, h.Amount, 0, text)
		assert.GreaterOrEqual(t, h.Bites, 1, text)
	}
}

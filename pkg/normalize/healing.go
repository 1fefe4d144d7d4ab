package normalize

import (
	"regexp"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// HealingRule is one notation recognised by ParseHealing. Rules are tried in
// order and the first whose pattern matches builds the result.
type HealingRule struct {
	Name    string
	Pattern *regexp.Regexp
	Build   func(m []string, text string) domain.Healing
}

var (
	delayedPattern  = regexp.MustCompile(`(\d+)\s*\+\s*(\d+)`)
	variablePattern = regexp.MustCompile(`(?i)\(\d+\s*-\s*\d+\)|\d+\s*-\s*\d+|%|random|up to \d+`)
	multiPattern    = regexp.MustCompile(`(\d+)\s*[×x]\s*(\d+)`)
	simplePattern   = regexp.MustCompile(`(\d+)`)
	bitesPattern    = regexp.MustCompile(`[×x]\s*(\d+)`)
)

// fold maps the dash variants the wiki uses in ranges to '-' and its
// no-break and thin spaces to ' ', since RE2's \s is ASCII only.
var fold = strings.NewReplacer(
	"−", "-", "–", "-", "—", "-",
	"\u00a0", " ", "\u2009", " ", "\u202f", " ",
)

var healingRules = []HealingRule{
	{
		// "12 + 9": immediate plus delayed heal.
		Name:    "delayed",
		Pattern: delayedPattern,
		Build: func(m []string, _ string) domain.Healing {
			return domain.Healing{Amount: atoi(m[1]), Delayed: atoi(m[2]), Bites: 1}
		},
	},
	{
		// "(3 - 13) × 4", "3 - 7%", "Random": the amount is unknown.
		Name:    "variable",
		Pattern: variablePattern,
		Build: func(_ []string, text string) domain.Healing {
			bites := 1
			if b := bitesPattern.FindStringSubmatch(text); b != nil {
				bites = atoi(b[1])
			}
			return domain.Healing{Bites: bites}
		},
	},
	{
		// "4 × 3" or "5x2": amount per bite times bites.
		Name:    "multiple",
		Pattern: multiPattern,
		Build: func(m []string, _ string) domain.Healing {
			return domain.Healing{Amount: atoi(m[1]), Bites: atoi(m[2])}
		},
	},
	{
		Name:    "simple",
		Pattern: simplePattern,
		Build: func(m []string, _ string) domain.Healing {
			return domain.Healing{Amount: atoi(m[1]), Bites: 1}
		},
	},
}

// HealingRules returns the notation rules in precedence order.
func HealingRules() []HealingRule {
	return healingRules
}

// ParseHealing reads a food table healing cell. It returns false when the
// text carries no digits at all and so no healing can be attributed.
func ParseHealing(text string) (domain.Healing, bool) {
	h, _, ok := MatchHealing(text)
	return h, ok
}

// MatchHealing is ParseHealing that also names the rule that matched.
func MatchHealing(text string) (domain.Healing, string, bool) {
	text = strings.TrimSpace(fold.Replace(text))
	for _, r := range healingRules {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		h := r.Build(m, text)
		if h.Bites < 1 {
			h.Bites = 1
		}
		return h, r.Name, true
	}
	return domain.Healing{}, "", false
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Package normalize turns the loosely formatted text found in wiki tables and
// pricing API payloads into typed values.
package normalize

import (
	"math"
	"strconv"
	"strings"
)

// missing holds the cell texts that mean "no value".
var missing = map[string]struct{}{
	"":       {},
	"N/A":    {},
	"-":      {},
	"\u2212": {},
	"?":      {},
}

// numberCleaner drops thousands separators and the spaces the wiki puts
// between digit groups, and reads the typographic minus as a plain one.
var numberCleaner = strings.NewReplacer(
	",", "",
	" ", "",
	"\u00a0", "",
	"\u2009", "",
	"\u202f", "",
	"\t", "",
	"\u2212", "-",
)

// IsMissing reports whether text is one of the "no value" markers.
func IsMissing(text string) bool {
	_, ok := missing[strings.TrimSpace(text)]
	return ok
}

// Number parses cell text into a number. It returns false for missing
// markers and for anything that is not numeric once separators are removed;
// malformed text is never an error.
func Number(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if IsMissing(text) {
		return 0, false
	}

	v, err := strconv.ParseFloat(numberCleaner.Replace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NumberPtr is Number returning nil for no value.
func NumberPtr(text string) *float64 {
	v, ok := Number(text)
	if !ok {
		return nil
	}
	return &v
}

// Int parses cell text into an integer. Fractional values are rejected.
func Int(text string) (int64, bool) {
	v, ok := Number(text)
	if !ok || v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
		return 0, false
	}
	return int64(v), true
}

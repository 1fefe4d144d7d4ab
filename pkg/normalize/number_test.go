package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber_MissingMarkers(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "N/A", "-", "−", "?", "   ", " N/A "} {
		_, ok := Number(text)
		assert.False(t, ok, "expected no value for %q", text)
		assert.Nil(t, NumberPtr(text))
	}
}

func TestNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		want   float64
		wantOK bool
	}{
		{name: "integer", text: "42", want: 42, wantOK: true},
		{name: "thousands separator", text: "12,345", want: 12345, wantOK: true},
		{name: "millions", text: "1,234,567", want: 1234567, wantOK: true},
		{name: "internal spaces", text: "12 345", want: 12345, wantOK: true},
		{name: "non-breaking space", text: "12 345", want: 12345, wantOK: true},
		{name: "plus sign", text: "+5", want: 5, wantOK: true},
		{name: "ascii negative", text: "-3", want: -3, wantOK: true},
		{name: "typographic minus", text: "−12", want: -12, wantOK: true},
		{name: "decimal", text: "2.268", want: 2.268, wantOK: true},
		{name: "surrounding whitespace", text: "\n 7 \t", want: 7, wantOK: true},
		{name: "zero is a value", text: "0", want: 0, wantOK: true},
		{name: "trailing unit", text: "1.8 kg", wantOK: false},
		{name: "word", text: "varies", wantOK: false},
		{name: "nan", text: "NaN", wantOK: false},
		{name: "inf", text: "Inf", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Number(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestInt(t *testing.T) {
	t.Parallel()

	v, ok := Int("12,345")
	assert.True(t, ok)
	assert.Equal(t, int64(12345), v)

	_, ok = Int("1.5")
	assert.False(t, ok, "fractional values are not integers")

	_, ok = Int("N/A")
	assert.False(t, ok)
}

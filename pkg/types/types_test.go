package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCounters_Unmatched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    RunCounters
		want int
	}{
		{name: "all matched", c: RunCounters{Attempted: 4, Matched: 4, Persisted: 4}, want: 0},
		{name: "misses", c: RunCounters{Attempted: 5, Matched: 3, Persisted: 3}, want: 2},
		{
			name: "lookup errors are failures not misses",
			c:    RunCounters{Attempted: 5, Matched: 2, Persisted: 2, Failed: 2, LookupFailed: 2},
			want: 1,
		},
		{
			name: "persist failures do not change misses",
			c:    RunCounters{Attempted: 3, Matched: 3, Persisted: 1, Failed: 2},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.c.Unmatched())
		})
	}
}

func TestRunCounters_Add(t *testing.T) {
	t.Parallel()

	var total RunCounters
	total.Add(RunCounters{Attempted: 3, Matched: 2, Persisted: 1, Failed: 1, Inserted: 1})
	total.Add(RunCounters{Attempted: 2, Failed: 1, LookupFailed: 1, Updated: 1})

	assert.Equal(t, RunCounters{
		Attempted:    5,
		Matched:      2,
		Persisted:    1,
		Failed:       2,
		LookupFailed: 1,
		Inserted:     1,
		Updated:      1,
	}, total)
	assert.Equal(t, 2, total.Unmatched())
}

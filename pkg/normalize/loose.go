package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Loose is a JSON number that the pricing API may send as a number, a
// formatted string ("12,345"), a missing marker, or null.
type Loose struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler. Unparseable strings decode to an
// invalid value rather than an error.
func (l *Loose) UnmarshalJSON(data []byte) error {
	*l = Loose{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding loose number string: %w", err)
		}
		l.Value, l.Valid = Number(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// Booleans, objects and arrays carry no number.
		return nil
	}
	l.Value, l.Valid = Number(n.String())
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Loose) MarshalJSON() ([]byte, error) {
	if !l.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(l.Value)
}

// Ptr returns the value or nil when it is not valid.
func (l Loose) Ptr() *float64 {
	if !l.Valid {
		return nil
	}
	v := l.Value
	return &v
}

// IntPtr returns the value truncated to an int64, or nil.
func (l Loose) IntPtr() *int64 {
	if !l.Valid {
		return nil
	}
	v := int64(l.Value)
	return &v
}

package gedata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/donaldgifford/osrs-price-tracker/pkg/normalize"
)

// ErrUnexpectedPayload is returned when a response body is neither an array
// nor an object of records.
var ErrUnexpectedPayload = errors.New("unexpected payload shape")

// records splits a payload into its item-like entries. Arrays, objects keyed
// by id and {"items": [...]} envelopes are all accepted.
func records(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrUnexpectedPayload)
	}

	switch body[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
		}
		return list, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
		}
		if inner, ok := obj["items"]; ok && len(bytes.TrimSpace(inner)) > 0 &&
			bytes.TrimSpace(inner)[0] == '[' {
			return records(inner)
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		list := make([]json.RawMessage, 0, len(obj))
		for _, k := range keys {
			list = append(list, obj[k])
		}
		return list, nil
	default:
		return nil, fmt.Errorf("%w: starts with %q", ErrUnexpectedPayload, body[0])
	}
}

// numericID reports the record's id when it is a JSON number holding an
// integer. String ids are not accepted.
func numericID(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// text decodes any JSON value, keeping only strings.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = ""
		return nil //nolint:nilerr // non-string values carry no text
	}
	*t = text(s)
	return nil
}

// flag decodes JSON booleans and the strings "true"/"false".
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, _ := strconv.ParseBool(s)
		*f = flag(parsed)
	}
	return nil
}

type itemRecord struct {
	ID       json.RawMessage `json:"id"`
	Name     text            `json:"name"`
	Members  flag            `json:"members"`
	Limit    normalize.Loose `json:"limit"`
	Value    normalize.Loose `json:"value"`
	HighAlch normalize.Loose `json:"highalch"`
	LowAlch  normalize.Loose `json:"lowalch"`
	Icon     text            `json:"icon"`
}

type pricePoint struct {
	Price normalize.Loose `json:"price"`
	Trend text            `json:"trend"`
}

type priceRecord struct {
	ID      json.RawMessage `json:"id"`
	Current *pricePoint     `json:"current"`
	Today   *pricePoint     `json:"today"`
}

type volumeRecord struct {
	ID     json.RawMessage `json:"id"`
	Volume normalize.Loose `json:"volume"`
}

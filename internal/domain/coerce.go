package domain

import (
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// CoerceDecimal is the single numeric-normalization rule every field arriving
// from the persistence gateway or a raw snapshot import passes through:
// nil, unparsable and non-finite input all degrade to zero. Sign is kept.
func CoerceDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case float32:
		return CoerceDecimal(float64(x))
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case json.Number:
		return CoerceDecimal(string(x))
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// CoerceInt normalizes identifier-shaped input the same way: anything that is
// not a whole number becomes zero.
func CoerceInt(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return int64(x)
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0
		}
		return n
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return 0
		}
		return d.IntPart()
	default:
		return 0
	}
}

// dateLayouts are tried in order when a date arrives as a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// CoerceDate parses calendar-date input. Malformed input degrades to the zero
// time rather than raising; downstream sorting treats it as the oldest date.
func CoerceDate(v any) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, x); err == nil {
				return t
			}
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}

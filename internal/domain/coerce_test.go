package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCoerceDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  decimal.Decimal
	}{
		{"nil", nil, decimal.Zero},
		{"float", float64(12.5), decimal.NewFromFloat(12.5)},
		{"negative float keeps sign", float64(-3.25), decimal.NewFromFloat(-3.25)},
		{"numeric string", "99.99", decimal.NewFromFloat(99.99)},
		{"garbage string", "abc", decimal.Zero},
		{"empty string", "", decimal.Zero},
		{"NaN", math.NaN(), decimal.Zero},
		{"positive infinity", math.Inf(1), decimal.Zero},
		{"int", 7, decimal.NewFromInt(7)},
		{"json.Number", json.Number("42.5"), decimal.NewFromFloat(42.5)},
		{"bool is not a number", true, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceDecimal(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("CoerceDecimal(%v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int64
	}{
		{"nil", nil, 0},
		{"float", float64(42), 42},
		{"truncates fraction", float64(42.9), 42},
		{"string", "17", 17},
		{"decimal string truncates", "17.8", 17},
		{"garbage string", "xyz", 0},
		{"NaN", math.NaN(), 0},
		{"json.Number", json.Number("9"), 9},
		{"slice is not a number", []int{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceInt(tt.input); got != tt.want {
				t.Errorf("CoerceInt(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoerceDate(t *testing.T) {
	t.Run("calendar date", func(t *testing.T) {
		got := CoerceDate("2026-03-15")
		want := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("CoerceDate = %v, want %v", got, want)
		}
	})

	t.Run("RFC3339", func(t *testing.T) {
		got := CoerceDate("2026-03-15T10:30:00Z")
		if got.IsZero() {
			t.Error("Expected RFC3339 input to parse")
		}
	})

	t.Run("time passes through", func(t *testing.T) {
		now := time.Now()
		if !CoerceDate(now).Equal(now) {
			t.Error("Expected time.Time input unchanged")
		}
	})

	t.Run("malformed degrades to zero time", func(t *testing.T) {
		for _, in := range []any{"15/03/2026", "yesterday", nil, 42} {
			if got := CoerceDate(in); !got.IsZero() {
				t.Errorf("CoerceDate(%v) = %v, want zero time", in, got)
			}
		}
	})
}

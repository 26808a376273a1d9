package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a numeric cell that may be missing. The zero Value is missing.
type Value struct {
	Float float64
	Valid bool
}

// Number wraps a parsed numeric value.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing()
	}
	return Value{Float: f, Valid: true}
}

// Missing returns the missing-value marker.
func Missing() Value { return Value{} }

// OrZero returns the value, or 0 when missing.
func (v Value) OrZero() float64 {
	if !v.Valid {
		return 0
	}
	return v.Float
}

func (v Value) String() string {
	if !v.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(v.Float, 'f', -1, 64)
}

// MarshalJSON encodes missing values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(b []byte) error {
	if strings.TrimSpace(string(b)) == "null" {
		*v = Missing()
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Number(f)
	return nil
}

// ParseCount coerces a thousands-separated cell such as "1,234" to a number.
// Cells that still fail to parse become missing.
func ParseCount(s string) Value {
	raw := strings.ReplaceAll(s, "\u00A0", " ")
	raw = strings.ReplaceAll(raw, ",", "")
	return ParseStrict(raw)
}

// ParseStrict coerces a cell without stripping any separators.
func ParseStrict(s string) Value {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Missing()
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Missing()
	}
	return Number(f)
}

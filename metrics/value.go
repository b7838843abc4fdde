package metrics

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
)

// Value is a metric result that may be undefined.
// The zero value is Undefined.
type Value struct {
	v  float64
	ok bool
}

// Undefined marks a metric that cannot be computed for the input.
var Undefined = Value{}

// Defined wraps a computed metric.
func Defined(v float64) Value {
	return Value{v: v, ok: true}
}

// ratio returns num/den, or Undefined when den is zero.
func ratio(num, den int) Value {
	if den == 0 {
		return Undefined
	}
	return Defined(float64(num) / float64(den))
}

// Float returns the value and whether it is defined.
func (v Value) Float() (float64, bool) { return v.v, v.ok }

// IsDefined reports whether the metric was computable.
func (v Value) IsDefined() bool { return v.ok }

// Or returns the value, or fallback when undefined.
func (v Value) Or(fallback float64) float64 {
	if !v.ok {
		return fallback
	}
	return v.v
}

func (v Value) String() string {
	if !v.ok {
		return "undefined"
	}
	return strconv.FormatFloat(v.v, 'g', -1, 64)
}

// MarshalJSON encodes undefined values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON decodes null as Undefined.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Undefined
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Defined(f)
	return nil
}

// Value implements driver.Valuer; undefined values are stored as NULL.
func (v Value) Value() (driver.Value, error) {
	if !v.ok {
		return nil, nil
	}
	return v.v, nil
}

package chipper

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// maxReps bounds rounded rep counts so they always fit an int on every platform.
const maxReps = math.MaxInt32

// Reps is an untrusted rep count as entered by a user or read back from storage.
// It may hold a number, a numeric string, anything else, or nothing at all.
type Reps struct {
	value any
	set   bool
}

// RepsOf wraps a raw value. A nil value is an explicit null, not an absent one.
func RepsOf(v any) Reps {
	return Reps{value: v, set: true}
}

// IsSet reports whether a value (possibly null) was provided.
func (r Reps) IsSet() bool {
	return r.set
}

// Value returns the wrapped raw value.
func (r Reps) Value() any {
	return r.value
}

// Number coerces the raw value to a float64. Absent values and unparseable
// strings give NaN; null and blank strings give 0; booleans give 1 or 0.
func (r Reps) Number() float64 {
	if !r.set {
		return math.NaN()
	}
	switch v := r.value.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		return parseNumber(string(v))
	case string:
		return parseNumber(v)
	default:
		return math.NaN()
	}
}

// Valid reports whether the value is a usable rep count: finite and strictly positive.
func (r Reps) Valid() bool {
	n := r.Number()
	return !math.IsNaN(n) && !math.IsInf(n, 0) && n > 0
}

// Count returns the value rounded half-up to an integer, and false when the
// value is not a usable rep count or rounds outside 1..MaxInt32.
func (r Reps) Count() (int, bool) {
	if !r.Valid() {
		return 0, false
	}
	rounded := math.Floor(r.Number() + 0.5)
	if rounded < 1 || rounded > maxReps {
		return 0, false
	}
	return int(rounded), true
}

func (r Reps) MarshalJSON() ([]byte, error) {
	if !r.set {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

func (r *Reps) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = RepsOf(v)
	return nil
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				if errors.Is(err, strconv.ErrRange) {
					return math.Inf(1)
				}
				return math.NaN()
			}
			return float64(n)
		}
	}
	// strconv is more lenient than numeric input should be.
	lower := strings.ToLower(s)
	if strings.Contains(s, "_") || strings.Contains(lower, "inf") || strings.Contains(lower, "nan") {
		return math.NaN()
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return n
		}
		return math.NaN()
	}
	return n
}

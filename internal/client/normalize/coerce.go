// Package normalize turns untyped backend records into the console's typed
// models. It never fails: missing or malformed fields fall back to defaults
// (empty string, zero, the entity's default flags) so that schema drift on
// the backend cannot break the store.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
)

// first returns the first non-nil value found under any of keys.
func first(r models.Record, keys ...string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// String coerces v to its string form. Numbers are printed without exponent
// so that numeric ids ("id": 12) become "12".
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// Int coerces v to an int; anything unparseable is 0. Values outside the int
// range are clamped to it and fractions are truncated.
func Int(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return x
	case int8:
		return int(x)
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int64ToInt(x)
	case uint:
		return uint64ToInt(uint64(x))
	case uint8:
		return int(x)
	case uint16:
		return int(x)
	case uint32:
		return uint64ToInt(uint64(x))
	case uint64:
		return uint64ToInt(x)
	case float64:
		return floatToInt(x)
	case float32:
		return floatToInt(float64(x))
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int64ToInt(n)
		}
		if f, err := x.Float64(); err == nil {
			return floatToInt(f)
		}
		return 0
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt(f)
		}
		return 0
	default:
		return 0
	}
}

// Count is Int clamped at zero, for tallies that cannot be negative.
func Count(v any) int {
	if n := Int(v); n > 0 {
		return n
	}
	return 0
}

// floatToInt truncates f toward zero, clamping finite values to the int
// range. NaN and infinities are 0.
func floatToInt(f float64) int {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return 0
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	default:
		return int(f)
	}
}

func int64ToInt(n int64) int {
	switch {
	case n > math.MaxInt:
		return math.MaxInt
	case n < math.MinInt:
		return math.MinInt
	default:
		return int(n)
	}
}

func uint64ToInt(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

// Bool coerces v to a bool, returning def when v is absent or unrecognised.
// Any number is true unless it is zero; NaN is unrecognised.
func Bool(v any, def bool) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil {
			return b
		}
		return def
	case int:
		return x != 0
	case int8:
		return x != 0
	case int16:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case uint:
		return x != 0
	case uint8:
		return x != 0
	case uint16:
		return x != 0
	case uint32:
		return x != 0
	case uint64:
		return x != 0
	case float32:
		return floatToBool(float64(x), def)
	case float64:
		return floatToBool(x, def)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return floatToBool(f, def)
		}
		return def
	default:
		return def
	}
}

func floatToBool(f float64, def bool) bool {
	if math.IsNaN(f) {
		return def
	}
	return f != 0
}

// Strings coerces a JSON array to []string, dropping nil elements. A non-array
// value yields nil.
func Strings(v any) []string {
	switch x := v.(type) {
	case []string:
		return append([]string(nil), x...)
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if item == nil {
				continue
			}
			out = append(out, String(item))
		}
		return out
	default:
		return nil
	}
}

// records coerces a JSON array of objects to []models.Record.
func records(v any) []models.Record {
	switch x := v.(type) {
	case []models.Record:
		return x
	case []any:
		out := make([]models.Record, 0, len(x))
		for _, item := range x {
			if r, ok := item.(map[string]any); ok {
				out = append(out, r)
			}
		}
		return out
	default:
		return nil
	}
}

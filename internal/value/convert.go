package value

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"
)

// From converts a plain Go value into a Value.
//
// Supported inputs: nil, Value, Recorder, string, bool, all integer kinds,
// float32/float64, json.Number, time.Time, []any, map[string]any and
// fmt.Stringer (as Opaque). Go maps have no order, so map keys are sorted;
// use NewMap or a decoder when insertion order matters.
func From(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case Recorder:
		return val.Record(), nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint:
		if uint64(val) > math.MaxInt64 {
			return nil, fmt.Errorf("unsigned integer %d overflows int64", val)
		}
		return Int(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("unsigned integer %d overflows int64", val)
		}
		return Int(val), nil
	case float32:
		return Double(val), nil
	case float64:
		return Double(val), nil
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return Int(n), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", val, err)
		}
		return Double(f), nil
	case time.Time:
		return DateTimeOffset{val}, nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			converted, err := From(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = converted
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		m := &Map{}
		for _, k := range keys {
			converted, err := From(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			m.Set(k, converted)
		}
		return m, nil
	case fmt.Stringer:
		return Opaque{V: val}, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// MustFrom is like From but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustFrom(v any) Value {
	converted, err := From(v)
	if err != nil {
		panic(err)
	}
	return converted
}

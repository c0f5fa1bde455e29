package dataset

import (
	"fmt"
	"math"
)

// Record is one flat raw or translation record.
type Record map[string]any

// Translations holds the translation records of one (language, dataset)
// pair keyed by primary key.
type Translations map[string]Record

// Key returns the value of field as a string key. Non-string scalars are
// formatted; integral floats print without a fraction. Null and absent
// values report false.
func (r Record) Key(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}

	return FormatKey(v), true
}

// FormatKey formats a scalar value for use as a mapping key.
func FormatKey(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) && t >= math.MinInt64 && t < math.MaxInt64 {
			return fmt.Sprintf("%d", int64(t))
		}

		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}

// Lookup returns the translated value of field for the record with key.
func (t Translations) Lookup(key, field string) (any, bool) {
	rec, ok := t[key]
	if !ok {
		return nil, false
	}

	v, ok := rec[field]

	return v, ok
}

package enquiries

import (
	"cmp"
	"strings"

	"iso3166/dataset"
	"iso3166/internal/locale"
)

// compareValues orders two non-nil field values. Strings compare folded,
// numbers and booleans by value; anything else by its key form.
func compareValues(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(locale.Fold(x), locale.Fold(y))
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return compareBool(x, y)
		}
	}

	return strings.Compare(dataset.FormatKey(a), dataset.FormatKey(b))
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

package enquiries

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryMaterialized is returned by configuration calls on an Enquiry
	// that already produced a result. Call Reset to start a new query.
	ErrQueryMaterialized = errors.New("query already materialized")
	// ErrNotFound is returned by ByCode when no record has the key.
	ErrNotFound = errors.New("record not found")
)

// FieldNotSelectableError reports a field that is unknown or not public.
type FieldNotSelectableError struct {
	Field   string
	Dataset string
	// Suggestion is the closest selectable field, if any is close enough.
	Suggestion string
}

func (e *FieldNotSelectableError) Error() string {
	return fmt.Sprintf("field %q is not selectable in dataset %s", e.Field, e.Dataset) + didYouMean(e.Suggestion)
}

// FieldNotIndexableError reports a field that cannot key the result.
type FieldNotIndexableError struct {
	Field      string
	Dataset    string
	Suggestion string
}

func (e *FieldNotIndexableError) Error() string {
	return fmt.Sprintf("field %q is not indexable in dataset %s", e.Field, e.Dataset) + didYouMean(e.Suggestion)
}

func didYouMean(s string) string {
	if s == "" {
		return ""
	}

	return fmt.Sprintf(", did you mean %q?", s)
}

// InvalidLimitError reports a negative pagination argument.
type InvalidLimitError struct {
	Offset int
	Count  int
}

func (e *InvalidLimitError) Error() string {
	return fmt.Sprintf("invalid limit: offset %d, count %d must not be negative", e.Offset, e.Count)
}

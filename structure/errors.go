package structure

import (
	"fmt"
	"strings"
)

// SchemaResolutionError reports a declared type that names no known schema.
// It indicates a schema/data integration defect rather than bad caller input.
type SchemaResolutionError struct {
	// Field is the declared field whose type could not be resolved.
	Field string
	// Path is the dot path of the field inside the mapped value.
	Path string
	// Type is the unresolved schema name.
	Type string
}

func (e *SchemaResolutionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot resolve schema %q", e.Type)
	}

	return fmt.Sprintf("cannot resolve schema %q declared for field %q (path %q)", e.Type, e.Field, e.Path)
}

// ShapeError reports an input value whose shape contradicts its schema.
type ShapeError struct {
	Path     string
	Expected SchemaKind
	Got      string
}

func (e *ShapeError) Error() string {
	at := e.Path
	if at == "" {
		at = "<root>"
	}

	return fmt.Sprintf("value at %s: expected %s, got %s", at, e.Expected, e.Got)
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}

	return path
}

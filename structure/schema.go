package structure

//go:generate go tool stringer -type=SchemaKind,ScalarKind -linecomment -output=schema_string.go

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaKind tags the variant held by a Schema.
type SchemaKind int

const (
	// SchemaAny infers the shape from the value itself.
	SchemaAny SchemaKind = iota // any
	// SchemaScalar is a leaf value.
	SchemaScalar // scalar
	// SchemaRef refers to a named schema in a Catalog.
	SchemaRef // ref
	// SchemaList is a homogeneous list of an element schema.
	SchemaList // list
	// SchemaNamed holds ordered named fields.
	SchemaNamed // named
)

// ScalarKind is the declared type of a leaf value. Its string form is the
// type expression used in exported schemas.
type ScalarKind int

const (
	ScalarString  ScalarKind = iota // string
	ScalarInteger                   // integer
	ScalarNumber                    // number
	ScalarBoolean                   // boolean
)

// Schema describes the expected shape of a value. The zero value is Any.
type Schema struct {
	kind   SchemaKind
	scalar ScalarKind
	ref    string
	elem   *Schema
	fields []Field
}

// Field is a named field of a Named schema.
type Field struct {
	Name   string
	Schema Schema
}

// Any returns a schema mapped by structural inference.
func Any() Schema {
	return Schema{kind: SchemaAny}
}

// Scalar returns a leaf schema of the given kind.
func Scalar(kind ScalarKind) Schema {
	return Schema{kind: SchemaScalar, scalar: kind}
}

// Ref returns a reference to the schema registered under name.
func Ref(name string) Schema {
	return Schema{kind: SchemaRef, ref: name}
}

// ListOf returns a homogeneous list schema.
func ListOf(elem Schema) Schema {
	return Schema{kind: SchemaList, elem: &elem}
}

// Named returns a schema with the given ordered fields.
func Named(fields ...Field) Schema {
	return Schema{kind: SchemaNamed, fields: fields}
}

// NewField is a shorthand for Field{Name: name, Schema: s}.
func NewField(name string, s Schema) Field {
	return Field{Name: name, Schema: s}
}

// Kind returns the variant of the schema.
func (s Schema) Kind() SchemaKind { return s.kind }

// ScalarKind returns the leaf kind of a Scalar schema.
func (s Schema) ScalarKind() ScalarKind { return s.scalar }

// RefName returns the referenced schema name of a Ref schema.
func (s Schema) RefName() string { return s.ref }

// Elem returns the element schema of a ListOf schema, or Any.
func (s Schema) Elem() Schema {
	if s.elem == nil {
		return Any()
	}

	return *s.elem
}

// Fields returns the declared fields of a Named schema.
func (s Schema) Fields() []Field {
	return s.fields
}

// Field returns the declared field with the given name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// String renders the schema as a type expression.
func (s Schema) String() string {
	switch s.kind {
	case SchemaScalar:
		return s.scalar.String()
	case SchemaRef:
		return s.ref
	case SchemaList:
		return "[]" + s.Elem().String()
	case SchemaNamed:
		names := make([]string, len(s.fields))
		for i, f := range s.fields {
			names[i] = f.Name + ": " + f.Schema.String()
		}

		return "{" + strings.Join(names, ", ") + "}"
	default:
		return "any"
	}
}

// ParseType parses a type expression into a schema.
// Supported: "any", "string", "integer", "number", "boolean", "[]T" and
// schema names such as "Flags" (parsed as Ref).
func ParseType(expr string) (Schema, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Schema{}, errors.New("empty type expression")
	}

	if rest, ok := strings.CutPrefix(expr, "[]"); ok {
		elem, err := ParseType(rest)
		if err != nil {
			return Schema{}, fmt.Errorf("invalid list type %q: %w", expr, err)
		}

		return ListOf(elem), nil
	}

	switch expr {
	case "any":
		return Any(), nil
	case "string":
		return Scalar(ScalarString), nil
	case "integer":
		return Scalar(ScalarInteger), nil
	case "number":
		return Scalar(ScalarNumber), nil
	case "boolean":
		return Scalar(ScalarBoolean), nil
	}

	if !isValidIdent(expr) {
		return Schema{}, fmt.Errorf("invalid type expression %q", expr)
	}

	return Ref(expr), nil
}

// isValidIdent checks if a string is a valid schema name.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isLetter(r) && r != '_' {
				return false
			}
		} else if !isLetter(r) && !isDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

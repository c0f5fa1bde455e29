package dataset

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"iso3166/structure"
)

// Field is a declared field of a dataset schema.
type Field struct {
	Name        string
	Origin      Origin
	Type        structure.Schema
	Nullable    bool
	Index       IndexKind
	Visibility  Visibility
	Searchable  bool
	Description string
}

// IsPublic reports whether callers may select the field.
func (f Field) IsPublic() bool {
	return f.Visibility == VisibilityPublic
}

// IsIndexable reports whether callers may index results by the field.
func (f Field) IsIndexable() bool {
	return f.IsPublic() && f.Index != IndexNone
}

// IsTranslated reports whether the value depends on the language.
func (f Field) IsTranslated() bool {
	return f.Origin == OriginTranslation
}

// Capability describes the field for listings.
func (f Field) Capability() string {
	nullable := "not nullable"
	if f.Nullable {
		nullable = "nullable"
	}

	language := "language independent"
	if f.IsTranslated() {
		language = "language dependent"
	}

	out := fmt.Sprintf("%s, %s, %s", f.Type, nullable, language)
	if f.Description != "" {
		out += ". " + f.Description
	}

	return out
}

// FieldInfo is an entry of SelectableFields or IndexableFields.
type FieldInfo struct {
	Name        string
	Description string
	// Primary marks the default index.
	Primary bool
}

// Schema is the immutable declaration of one dataset.
type Schema struct {
	name        string
	item        string
	description string
	fields      []Field
	byName      map[string]int
	primary     int
	types       []TypeDecl
	catalog     *structure.Catalog
	validator   *gojsonschema.Schema
	warnings    []string
}

// Name returns the dataset name, e.g. "countries".
func (s *Schema) Name() string { return s.name }

// ItemType returns the schema name of one record, e.g. "Country".
func (s *Schema) ItemType() string { return s.item }

// ListType returns the schema name of the top-level list of records.
func (s *Schema) ListType() string { return s.item + "List" }

// Description returns the human-readable dataset description.
func (s *Schema) Description() string { return s.description }

// Fields returns all declared fields, private ones included, in order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Field returns the declared field with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}

	return s.fields[i], true
}

// Primary returns the primary key field.
func (s *Schema) Primary() Field {
	return s.fields[s.primary]
}

// IsSelectable reports whether name is a public field.
func (s *Schema) IsSelectable(name string) bool {
	f, ok := s.Field(name)
	return ok && f.IsPublic()
}

// IsIndexable reports whether name is a public, indexable field.
func (s *Schema) IsIndexable(name string) bool {
	f, ok := s.Field(name)
	return ok && f.IsIndexable()
}

// PublicFields returns the names of the public fields in order.
func (s *Schema) PublicFields() []string {
	var names []string

	for _, f := range s.fields {
		if f.IsPublic() {
			names = append(names, f.Name)
		}
	}

	return names
}

// SelectableFields lists the public fields with a description of their type,
// nullability and language dependency.
func (s *Schema) SelectableFields() []FieldInfo {
	var out []FieldInfo

	for _, f := range s.fields {
		if !f.IsPublic() {
			continue
		}

		out = append(out, FieldInfo{
			Name:        f.Name,
			Description: f.Capability(),
			Primary:     f.Index == IndexPrimary,
		})
	}

	return out
}

// IndexableFields lists the public fields usable as index. The primary field
// is marked as the default index.
func (s *Schema) IndexableFields() []FieldInfo {
	var out []FieldInfo

	for _, f := range s.fields {
		if !f.IsIndexable() {
			continue
		}

		desc := f.Capability()
		if f.Index == IndexPrimary {
			desc = "(primary, default) " + desc
		}

		out = append(out, FieldInfo{
			Name:        f.Name,
			Description: desc,
			Primary:     f.Index == IndexPrimary,
		})
	}

	return out
}

// Warnings returns the non-fatal findings of the declaration check.
func (s *Schema) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

// Catalog returns the mapper catalog of the dataset: the item type, the list
// type and every nested type.
func (s *Schema) Catalog() *structure.Catalog {
	return s.catalog
}

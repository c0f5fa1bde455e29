package dataset

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"iso3166/structure"
)

const jsonSchemaDraft = "http://json-schema.org/draft-07/schema#"

// JSONSchema returns the JSON Schema that a raw record sequence of the
// dataset must satisfy: an array of objects carrying every raw-data field.
// Nullable fields accept null.
func (s *Schema) JSONSchema() map[string]any {
	props := make(map[string]any)
	required := make([]any, 0, len(s.fields))

	for _, f := range s.fields {
		if f.Origin != OriginData {
			continue
		}

		props[f.Name] = s.jsonType(f.Type, f.Nullable, 0)
		required = append(required, f.Name)
	}

	return map[string]any{
		"$schema": jsonSchemaDraft,
		"title":   s.name,
		"type":    "array",
		"items": map[string]any{
			"type":       "object",
			"properties": props,
			"required":   required,
		},
	}
}

func (s *Schema) jsonType(t structure.Schema, nullable bool, depth int) map[string]any {
	var out map[string]any

	switch t.Kind() {
	case structure.SchemaScalar:
		out = map[string]any{"type": t.ScalarKind().String()}
	case structure.SchemaList:
		out = map[string]any{"type": "array", "items": s.jsonType(t.Elem(), false, depth+1)}
	case structure.SchemaRef:
		out = map[string]any{"type": "object"}

		if td, ok := s.typeDecl(t.RefName()); ok && depth < 8 {
			props := make(map[string]any, len(td.Fields))

			for _, md := range td.Fields {
				mt, err := structure.ParseType(md.Type)
				if err != nil {
					continue
				}

				props[md.Name] = s.jsonType(mt, md.Nullable, depth+1)
			}

			out["properties"] = props
		}
	default:
		return map[string]any{}
	}

	if nullable {
		out["type"] = []any{out["type"], "null"}
	}

	return out
}

func (s *Schema) typeDecl(name string) (TypeDecl, bool) {
	for _, td := range s.types {
		if td.Name == name {
			return td, true
		}
	}

	return TypeDecl{}, false
}

// ValidateRecords checks raw records against JSONSchema.
func (s *Schema) ValidateRecords(records []Record) error {
	if len(records) == 0 {
		return nil
	}

	result, err := s.validator.Validate(gojsonschema.NewGoLoader(records))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}

		return fmt.Errorf("%s records invalid against schema: %s", s.name, strings.Join(errs, "; "))
	}

	return nil
}

package dataset

import (
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"iso3166/internal/diagnostic"
	"iso3166/structure"
)

// Declaration is the YAML form of a dataset schema.
type Declaration struct {
	// Name of the dataset (e.g. "countries").
	Name string `yaml:"name"`

	// Item is the schema name of one record (e.g. "Country").
	Item string `yaml:"item"`

	// Description of the dataset.
	Description string `yaml:"description,omitempty"`

	// Fields is the ordered field table.
	Fields []FieldDecl `yaml:"fields"`

	// Types declares the nested named types referenced by fields.
	Types []TypeDecl `yaml:"types,omitempty"`
}

// FieldDecl declares one field. Omitted keys default to origin "data",
// index "none" and visibility "public".
type FieldDecl struct {
	Name        string     `yaml:"name"`
	Origin      Origin     `yaml:"origin,omitempty"`
	Type        string     `yaml:"type"`
	Nullable    bool       `yaml:"nullable,omitempty"`
	Index       IndexKind  `yaml:"index,omitempty"`
	Visibility  Visibility `yaml:"visibility,omitempty"`
	Searchable  bool       `yaml:"searchable,omitempty"`
	Description string     `yaml:"description,omitempty"`
}

// TypeDecl declares a nested named type.
type TypeDecl struct {
	Name   string       `yaml:"name"`
	Fields []MemberDecl `yaml:"fields"`
}

// MemberDecl declares a field of a nested type.
type MemberDecl struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable,omitempty"`
}

// Parse parses and validates a YAML schema declaration.
func Parse(data []byte) (*Schema, error) {
	var decl Declaration

	if err := yaml.Unmarshal(data, &decl); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	return Build(&decl)
}

// MustParse is like Parse but panics on error. It is meant for embedded
// declarations, where an invalid schema is a programming error.
func MustParse(data []byte) *Schema {
	s, err := Parse(data)
	if err != nil {
		panic(err)
	}

	return s
}

// Build validates a declaration and turns it into a Schema. Every problem is
// reported, not only the first one.
func Build(decl *Declaration) (*Schema, error) {
	if decl == nil {
		return nil, errors.New("schema declaration is nil")
	}

	res := &diagnostic.Diagnostics{}
	s := &Schema{
		name:        decl.Name,
		item:        decl.Item,
		description: decl.Description,
		byName:      make(map[string]int, len(decl.Fields)),
		primary:     -1,
		catalog:     structure.NewCatalog(),
	}

	if decl.Name == "" {
		res.AddError("missing_name", "dataset name is empty", "", "")
	}

	if decl.Item == "" {
		res.AddError("missing_item", "item type name is empty", decl.Name, "")
	}

	for i := range decl.Fields {
		buildField(res, s, &decl.Fields[i])
	}

	validatePrimary(res, s)

	if !res.HasErrors() {
		defineTypes(res, s, decl)
	}

	if !res.HasErrors() {
		validator, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.JSONSchema()))
		if err != nil {
			res.AddError("invalid_json_schema", fmt.Sprintf("derived JSON schema does not compile: %v", err), s.name, "")
		}

		s.validator = validator
	}

	if err := res.Error(); err != nil {
		return nil, fmt.Errorf("invalid schema %q: %w", decl.Name, err)
	}

	for _, w := range res.Warnings {
		s.warnings = append(s.warnings, w.String())
	}

	return s, nil
}

func buildField(res *diagnostic.Diagnostics, s *Schema, fd *FieldDecl) {
	if fd.Name == "" {
		res.AddError("missing_field_name", "field name is empty", s.name, "")
		return
	}

	if _, dup := s.byName[fd.Name]; dup {
		res.AddError("duplicate_field", fmt.Sprintf("duplicate field %q", fd.Name), s.name, fd.Name)
		return
	}

	typ, err := structure.ParseType(fd.Type)
	if err != nil {
		res.AddError("invalid_type", err.Error(), s.name, fd.Name)
		return
	}

	f := Field{
		Name:        fd.Name,
		Origin:      fd.Origin,
		Type:        typ,
		Nullable:    fd.Nullable,
		Index:       fd.Index,
		Visibility:  fd.Visibility,
		Searchable:  fd.Searchable,
		Description: fd.Description,
	}

	if f.Index != IndexNone && !f.IsPublic() {
		res.AddError("private_index", "indexable fields must be public", s.name, f.Name)
	}

	if f.Index == IndexPrimary {
		if s.primary >= 0 {
			res.AddError("multiple_primary",
				fmt.Sprintf("primary already declared by %q", s.fields[s.primary].Name), s.name, f.Name)
		} else {
			s.primary = len(s.fields)
		}
	}

	if f.Description == "" {
		res.AddWarning("missing_description", "field has no description", s.name, f.Name)
	}

	s.byName[f.Name] = len(s.fields)
	s.fields = append(s.fields, f)
}

func validatePrimary(res *diagnostic.Diagnostics, s *Schema) {
	if s.primary < 0 {
		res.AddError("missing_primary", "no field has index kind primary", s.name, "")
		return
	}

	p := s.fields[s.primary]

	if p.Origin != OriginData {
		res.AddError("primary_not_data", "primary field must come from raw data", s.name, p.Name)
	}

	if p.Nullable {
		res.AddError("primary_nullable", "primary field cannot be nullable", s.name, p.Name)
	}

	if p.Type.Kind() != structure.SchemaScalar || p.Type.ScalarKind() != structure.ScalarString {
		res.AddError("primary_not_string", "primary field must be a string", s.name, p.Name)
	}
}

// defineTypes fills the mapper catalog and checks every type reference.
func defineTypes(res *diagnostic.Diagnostics, s *Schema, decl *Declaration) {
	item := make([]structure.Field, len(s.fields))
	for i, f := range s.fields {
		item[i] = structure.NewField(f.Name, f.Type)
	}

	define := func(name string, sch structure.Schema) {
		if err := s.catalog.Define(name, sch); err != nil {
			res.AddError("invalid_type_decl", err.Error(), s.name, name)
		}
	}

	define(s.ItemType(), structure.Named(item...))
	define(s.ListType(), structure.ListOf(structure.Ref(s.ItemType())))

	for _, td := range decl.Types {
		members := make([]structure.Field, 0, len(td.Fields))

		for _, md := range td.Fields {
			typ, err := structure.ParseType(md.Type)
			if err != nil {
				res.AddError("invalid_type", err.Error(), s.name, td.Name+"."+md.Name)
				continue
			}

			members = append(members, structure.NewField(md.Name, typ))
		}

		define(td.Name, structure.Named(members...))
	}

	s.types = decl.Types

	if err := s.catalog.Check(); err != nil {
		var resErr *structure.SchemaResolutionError
		if errors.As(err, &resErr) {
			res.AddError("unknown_type", err.Error(), s.name, resErr.Path)
		} else {
			res.AddError("unknown_type", err.Error(), s.name, "")
		}
	}
}

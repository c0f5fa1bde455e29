// Package dataset declares the schemas of the reference datasets
// (countries, currencies, geoSets) and answers which fields callers may
// select or index by.
//
// Each schema is an ordered table of fields. A field records where its value
// comes from (raw data or a translation overlay), its type expression, whether
// it is nullable, its index kind, its visibility, whether it takes part in
// full-text search, and a description. Schemas are declared in embedded YAML
// files and validated once; they are immutable and shared by every query.
//
// Invariants enforced at load time:
//   - exactly one field has index kind "primary"; it is a non-nullable string
//     read from raw data
//   - every indexable field is public
//   - every type referenced by a field is declared in the types section
package dataset

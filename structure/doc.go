// Package structure maps untyped nested values into a typed, navigable
// object graph driven by an explicit schema description.
//
// # Schemas
//
// A Schema is a tagged union:
//
//   - Any: no declared shape, the value is mapped by structural inference
//   - Scalar: a leaf of a given scalar kind (string, integer, number, boolean)
//   - Ref: a reference to a named schema held by a Catalog
//   - ListOf: a homogeneous list, the element schema is applied to every item
//   - Named: an ordered set of named fields, each with its own schema
//
// Type expressions ("string", "[]string", "Flags", "[]DialCodes") are parsed
// with ParseType, so schemas can be declared in data files.
//
// # Mapping
//
// Catalog.Map applies a schema to a value and returns a *Node. Declared fields
// absent from the input are omitted, they are never materialized as null.
// A Ref that names a schema unknown to the catalog fails with a
// *SchemaResolutionError.
//
// # Exports
//
// A materialized graph renders to JSON (MarshalJSON, ToJSON), YAML
// (MarshalYAML, ToYAML, block style with a two space indent) and to a
// flattened dot-path mapping (Flatten). Unflatten re-nests a flattened
// mapping. All exports keep the node order.
package structure

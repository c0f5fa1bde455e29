package structure

import (
	"encoding/json"
	"math"
)

// Map applies s to value and returns the materialized graph.
//
// A nil value maps to a null leaf whatever the schema. Declared fields absent
// from a mapping are omitted. A Ref naming a schema unknown to the catalog
// fails with *SchemaResolutionError; an input whose shape contradicts the
// schema fails with *ShapeError.
func (c *Catalog) Map(s Schema, value any) (*Node, error) {
	return c.mapValue("", "", s, value)
}

// MapType maps value with the schema registered under name.
func (c *Catalog) MapType(name string, value any) (*Node, error) {
	return c.Map(Ref(name), value)
}

// Infer maps value by structural inference: mappings become named nodes,
// sequences become list nodes and anything else is assigned as a leaf.
// Keys of Go maps are sorted; Ordered input keeps its order.
func Infer(value any) *Node {
	if m, ok := asMapping(value); ok {
		n := NewNamed("")
		for _, k := range m.keys() {
			v, _ := m.get(k)
			n.Set(k, Infer(v))
		}

		return n
	}

	if seq, ok := asSequence(value); ok {
		n := NewList("")
		for _, v := range seq {
			n.Append(Infer(v))
		}

		return n
	}

	return NewLeaf(value)
}

func (c *Catalog) mapValue(path, typeName string, s Schema, value any) (*Node, error) {
	resolved, name, err := c.resolve(path, s)
	if err != nil {
		return nil, err
	}

	if name != "" {
		typeName = name
	}

	if value == nil {
		return NewLeaf(nil), nil
	}

	switch resolved.kind {
	case SchemaScalar:
		return c.mapScalar(path, resolved.scalar, value)
	case SchemaList:
		return c.mapList(path, typeName, resolved.Elem(), value)
	case SchemaNamed:
		return c.mapNamed(path, typeName, resolved, value)
	default:
		return Infer(value), nil
	}
}

func (c *Catalog) mapScalar(path string, kind ScalarKind, value any) (*Node, error) {
	if _, ok := asMapping(value); ok {
		return nil, &ShapeError{Path: path, Expected: SchemaScalar, Got: describe(value)}
	}

	if _, ok := asSequence(value); ok {
		return nil, &ShapeError{Path: path, Expected: SchemaScalar, Got: describe(value)}
	}

	return NewLeaf(normalizeScalar(kind, value)), nil
}

func (c *Catalog) mapList(path, typeName string, elem Schema, value any) (*Node, error) {
	seq, ok := asSequence(value)
	if !ok {
		return nil, &ShapeError{Path: path, Expected: SchemaList, Got: describe(value)}
	}

	n := &Node{kind: KindList, typeName: typeName, items: make([]*Node, 0, len(seq))}

	for i, v := range seq {
		item, err := c.mapValue(indexPath(path, i), "", elem, v)
		if err != nil {
			return nil, err
		}

		n.items = append(n.items, item)
	}

	return n, nil
}

func (c *Catalog) mapNamed(path, typeName string, s Schema, value any) (*Node, error) {
	m, ok := asMapping(value)
	if !ok {
		return nil, &ShapeError{Path: path, Expected: SchemaNamed, Got: describe(value)}
	}

	n := NewNamed(typeName)

	for _, f := range s.fields {
		v, present := m.get(f.Name)
		if !present {
			continue
		}

		child, err := c.mapValue(joinPath(path, f.Name), "", f.Schema, v)
		if err != nil {
			return nil, err
		}

		n.Set(f.Name, child)
	}

	return n, nil
}

// normalizeScalar converts decoded JSON numbers to the declared scalar kind.
func normalizeScalar(kind ScalarKind, value any) any {
	switch kind {
	case ScalarInteger:
		switch v := value.(type) {
		case float64:
			if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
				return int64(v)
			}
		case json.Number:
			if i, err := v.Int64(); err == nil {
				return i
			}
		case int:
			return int64(v)
		case int32:
			return int64(v)
		}
	case ScalarNumber:
		switch v := value.(type) {
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f
			}
		case int:
			return float64(v)
		case int64:
			return float64(v)
		}
	}

	return value
}

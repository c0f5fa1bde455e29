package structure

import (
	"fmt"
	"strconv"
)

// Catalog holds named schemas referenced by Ref.
// A Catalog is built once and then only read, so it is safe to share.
type Catalog struct {
	types map[string]Schema
	names []string
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{types: make(map[string]Schema)}
}

// Define registers a schema under name. Names are unique.
func (c *Catalog) Define(name string, s Schema) error {
	if !isValidIdent(name) {
		return fmt.Errorf("invalid schema name %q", name)
	}

	if _, ok := c.types[name]; ok {
		return fmt.Errorf("duplicate schema %q", name)
	}

	c.types[name] = s
	c.names = append(c.names, name)

	return nil
}

// Lookup returns the schema registered under name.
func (c *Catalog) Lookup(name string) (Schema, bool) {
	if c == nil {
		return Schema{}, false
	}

	s, ok := c.types[name]

	return s, ok
}

// Names returns the registered schema names in definition order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}

	return append([]string(nil), c.names...)
}

// Check verifies that every Ref reachable from the registered schemas names
// a registered schema. The first unresolved reference is returned.
func (c *Catalog) Check() error {
	for _, name := range c.Names() {
		if err := c.check(name, c.types[name]); err != nil {
			return err
		}
	}

	return nil
}

func (c *Catalog) check(path string, s Schema) error {
	switch s.kind {
	case SchemaRef:
		if _, ok := c.Lookup(s.ref); !ok {
			return &SchemaResolutionError{Field: lastSegment(path), Path: path, Type: s.ref}
		}
	case SchemaList:
		return c.check(path+".[]", s.Elem())
	case SchemaNamed:
		for _, f := range s.fields {
			if err := c.check(path+"."+f.Name, f.Schema); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolve follows Ref chains until a concrete schema is reached.
func (c *Catalog) resolve(path string, s Schema) (Schema, string, error) {
	typeName := ""
	seen := map[string]struct{}{}

	for s.kind == SchemaRef {
		if _, loop := seen[s.ref]; loop {
			return Schema{}, "", fmt.Errorf("schema %q refers to itself", s.ref)
		}

		seen[s.ref] = struct{}{}

		target, ok := c.Lookup(s.ref)
		if !ok {
			return Schema{}, "", &SchemaResolutionError{Field: lastSegment(path), Path: path, Type: s.ref}
		}

		typeName = s.ref
		s = target
	}

	return s, typeName, nil
}

func joinPath(prefix, seg string) string {
	if prefix == "" {
		return seg
	}

	return prefix + "." + seg
}

func indexPath(prefix string, i int) string {
	return joinPath(prefix, strconv.Itoa(i))
}

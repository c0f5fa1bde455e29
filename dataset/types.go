package dataset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:generate go tool stringer -type=Origin,IndexKind,Visibility -linecomment -output=types_string.go

// Origin tells where the value of a field comes from.
type Origin int

const (
	OriginData        Origin = iota // data
	OriginTranslation               // translation
)

// IndexKind classifies a field as primary, indexable or not indexable.
type IndexKind int

const (
	IndexNone      IndexKind = iota // none
	IndexPrimary                    // primary
	IndexSecondary                  // indexable
)

// Visibility tells whether callers may select a field.
type Visibility int

const (
	VisibilityPublic  Visibility = iota // public
	VisibilityPrivate                   // private
)

// parseEnum matches s against the String form of every value below total.
func parseEnum[T ~int](kind, s string, total int, str func(T) string) (T, error) {
	for i := range total {
		if str(T(i)) == s {
			return T(i), nil
		}
	}

	return 0, fmt.Errorf("invalid %s %q", kind, s)
}

// ParseOrigin parses "data" or "translation".
func ParseOrigin(s string) (Origin, error) {
	return parseEnum("origin", s, len(_Origin_index)-1, Origin.String)
}

// ParseIndexKind parses "none", "primary" or "indexable".
func ParseIndexKind(s string) (IndexKind, error) {
	return parseEnum("index kind", s, len(_IndexKind_index)-1, IndexKind.String)
}

// ParseVisibility parses "public" or "private".
func ParseVisibility(s string) (Visibility, error) {
	return parseEnum("visibility", s, len(_Visibility_index)-1, Visibility.String)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Origin) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, o, ParseOrigin)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *IndexKind) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, k, ParseIndexKind)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Visibility) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, v, ParseVisibility)
}

func decodeEnum[T any](node *yaml.Node, dst *T, parse func(string) (T, error)) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected scalar, got %v", node.Line, node.Kind)
	}

	v, err := parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*dst = v

	return nil
}

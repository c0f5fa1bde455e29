package structure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSeparator joins path segments in Flatten when none is given.
const DefaultSeparator = "."

// yamlIndent is the fixed block indent used by ToYAML.
const yamlIndent = 2

// MarshalJSON implements json.Marshaler, keeping field order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ToJSON renders the graph as JSON, indented with two spaces when pretty is set.
// NaN and infinite numbers are written as null.
func (n *Node) ToJSON(pretty bool) ([]byte, error) {
	data, err := n.MarshalJSON()
	if err != nil {
		return nil, err
	}

	if !pretty {
		return data, nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent JSON: %w", err)
	}

	return out.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	switch n.kind {
	case KindNamed:
		buf.WriteByte('{')

		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			key, err := json.Marshal(k)
			if err != nil {
				return err
			}

			buf.Write(key)
			buf.WriteByte(':')

			if err := n.fields[k].writeJSON(buf); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	case KindList:
		buf.WriteByte('[')

		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	default:
		if !finite(n.value) {
			buf.WriteString("null")
			return nil
		}

		data, err := json.Marshal(n.value)
		if err != nil {
			return fmt.Errorf("failed to encode leaf: %w", err)
		}

		buf.Write(data)
	}

	return nil
}

// finite reports false for NaN and infinite floats, which JSON cannot hold.
func finite(v any) bool {
	switch f := v.(type) {
	case float64:
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case float32:
		return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
	default:
		return true
	}
}

// MarshalYAML implements yaml.Marshaler, keeping field order.
func (n *Node) MarshalYAML() (any, error) {
	return n.yamlNode()
}

// ToYAML renders the graph as block-style YAML with a fixed indent.
func (n *Node) ToYAML() ([]byte, error) {
	doc, err := n.yamlNode()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}

	return buf.Bytes(), nil
}

func (n *Node) yamlNode() (*yaml.Node, error) {
	switch n.kind {
	case KindNamed:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

		for _, k := range n.keys {
			child, err := n.fields[k].yamlNode()
			if err != nil {
				return nil, err
			}

			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				child,
			)
		}

		return out, nil
	case KindList:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}

		for _, item := range n.items {
			child, err := item.yamlNode()
			if err != nil {
				return nil, err
			}

			out.Content = append(out.Content, child)
		}

		return out, nil
	default:
		out := &yaml.Node{}
		if err := out.Encode(n.value); err != nil {
			return nil, fmt.Errorf("failed to encode leaf: %w", err)
		}

		return out, nil
	}
}

// Flatten joins nested keys with sep into a single level mapping. List
// indices are numeric path segments. Empty named and list nodes are kept as
// leaves holding an empty map or slice so that Unflatten can restore them.
// A leaf root yields a single entry with an empty key. Unflatten reads such an
// entry back as the leaf, so a named root whose only flattened entry has the
// empty key does not round-trip.
func (n *Node) Flatten(sep string) Ordered {
	if sep == "" {
		sep = DefaultSeparator
	}

	var out Ordered

	n.flatten("", true, sep, &out)

	return out
}

func (n *Node) flatten(prefix string, root bool, sep string, out *Ordered) {
	join := func(seg string) string {
		if root {
			return seg
		}

		return prefix + sep + seg
	}

	switch n.kind {
	case KindNamed:
		if len(n.keys) == 0 {
			*out = append(*out, Pair{Key: prefix, Value: map[string]any{}})
			return
		}

		for _, k := range n.keys {
			n.fields[k].flatten(join(k), false, sep, out)
		}
	case KindList:
		if len(n.items) == 0 {
			*out = append(*out, Pair{Key: prefix, Value: []any{}})
			return
		}

		for i, item := range n.items {
			item.flatten(join(strconv.Itoa(i)), false, sep, out)
		}
	default:
		*out = append(*out, Pair{Key: prefix, Value: n.value})
	}
}

// Unflatten re-nests a flattened mapping by splitting keys on sep.
// Containers whose keys are exactly 0..n-1 become []any, other containers
// become map[string]any. Keys containing sep as part of a name do not survive
// the round trip. A single entry under the empty key is read as a leaf root.
func Unflatten(flat Ordered, sep string) any {
	if sep == "" {
		sep = DefaultSeparator
	}

	if len(flat) == 1 && flat[0].Key == "" {
		return flat[0].Value
	}

	root := &flatTree{}
	for _, p := range flat {
		root.insert(strings.Split(p.Key, sep), p.Value)
	}

	return root.build()
}

type flatTree struct {
	keys     []string
	children map[string]*flatTree
	value    any
	leaf     bool
}

func (t *flatTree) insert(segments []string, value any) {
	if len(segments) == 0 {
		t.value = value
		t.leaf = true

		return
	}

	if t.children == nil {
		t.children = make(map[string]*flatTree)
	}

	child, ok := t.children[segments[0]]
	if !ok {
		child = &flatTree{}
		t.children[segments[0]] = child
		t.keys = append(t.keys, segments[0])
	}

	child.insert(segments[1:], value)
}

func (t *flatTree) build() any {
	if t.leaf && len(t.keys) == 0 {
		return t.value
	}

	if t.isList() {
		out := make([]any, len(t.keys))
		for i := range out {
			out[i] = t.children[strconv.Itoa(i)].build()
		}

		return out
	}

	out := make(map[string]any, len(t.keys))
	for _, k := range t.keys {
		out[k] = t.children[k].build()
	}

	return out
}

func (t *flatTree) isList() bool {
	if len(t.keys) == 0 {
		return false
	}

	for i := range t.keys {
		if _, ok := t.children[strconv.Itoa(i)]; !ok {
			return false
		}
	}

	return true
}

package structure

import (
	"iter"
	"strconv"

	"github.com/davecgh/go-spew/spew"
)

// Node is a node of the structured object graph: a scalar leaf, a named
// node with ordered fields, or a list node with ordered items.
// A graph returned by a Catalog is owned by the caller.
type Node struct {
	kind     Kind
	typeName string
	value    any
	keys     []string
	fields   map[string]*Node
	items    []*Node
}

// NewLeaf creates a scalar leaf.
func NewLeaf(value any) *Node {
	return &Node{kind: KindLeaf, value: value}
}

// NewNamed creates an empty named node. typeName may be empty for inferred nodes.
func NewNamed(typeName string) *Node {
	return &Node{kind: KindNamed, typeName: typeName, fields: make(map[string]*Node)}
}

// NewList creates a list node holding items in order.
func NewList(typeName string, items ...*Node) *Node {
	return &Node{kind: KindList, typeName: typeName, items: append([]*Node{}, items...)}
}

// Set assigns a field of a named node. An existing field keeps its position
// and gets the new value.
func (n *Node) Set(key string, child *Node) {
	if n.kind != KindNamed {
		panic("structure: Set called on " + n.kind.String() + " node")
	}

	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}

	n.fields[key] = child
}

// Append adds an item to a list node.
func (n *Node) Append(child *Node) {
	if n.kind != KindList {
		panic("structure: Append called on " + n.kind.String() + " node")
	}

	n.items = append(n.items, child)
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// TypeName returns the schema name the node was mapped from, if any.
func (n *Node) TypeName() string { return n.typeName }

// Value returns the scalar value of a leaf, nil otherwise.
func (n *Node) Value() any { return n.value }

// IsNull reports whether the node is a leaf holding nil.
func (n *Node) IsNull() bool {
	return n.kind == KindLeaf && n.value == nil
}

// Len returns the number of items of a list node or fields of a named node.
func (n *Node) Len() int {
	switch n.kind {
	case KindList:
		return len(n.items)
	case KindNamed:
		return len(n.keys)
	default:
		return 0
	}
}

// Keys returns the field names of a named node in order.
func (n *Node) Keys() []string {
	return append([]string(nil), n.keys...)
}

// Field returns a field of a named node.
func (n *Node) Field(name string) (*Node, bool) {
	if n.kind != KindNamed {
		return nil, false
	}

	child, ok := n.fields[name]

	return child, ok
}

// Index returns the i-th item of a list node, or nil when out of range.
func (n *Node) Index(i int) *Node {
	if n.kind != KindList || i < 0 || i >= len(n.items) {
		return nil
	}

	return n.items[i]
}

// All iterates the items of a list node in order.
// Only list nodes support sequence iteration; other kinds yield nothing.
func (n *Node) All() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		if n.kind != KindList {
			return
		}

		for i, item := range n.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Lookup descends through named fields and list indices.
func (n *Node) Lookup(segments ...string) (*Node, bool) {
	current := n

	for _, seg := range segments {
		switch current.kind {
		case KindNamed:
			child, ok := current.fields[seg]
			if !ok {
				return nil, false
			}

			current = child
		case KindList:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(current.items) {
				return nil, false
			}

			current = current.items[i]
		default:
			return nil, false
		}
	}

	return current, true
}

// WalkFunc is called for every node visited by Walk. Returning false skips
// the children of the node.
type WalkFunc func(path []string, n *Node) bool

// Walk visits the graph depth-first in node order.
func (n *Node) Walk(fn WalkFunc) {
	n.walk(nil, fn)
}

func (n *Node) walk(path []string, fn WalkFunc) {
	if !fn(path, n) {
		return
	}

	switch n.kind {
	case KindNamed:
		for _, k := range n.keys {
			n.fields[k].walk(append(path[:len(path):len(path)], k), fn)
		}
	case KindList:
		for i, item := range n.items {
			item.walk(append(path[:len(path):len(path)], strconv.Itoa(i)), fn)
		}
	}
}

// Interface converts the graph to plain Go values:
// map[string]any for named nodes, []any for lists and the scalar for leaves.
func (n *Node) Interface() any {
	switch n.kind {
	case KindNamed:
		out := make(map[string]any, len(n.keys))
		for _, k := range n.keys {
			out[k] = n.fields[k].Interface()
		}

		return out
	case KindList:
		out := make([]any, len(n.items))
		for i, item := range n.items {
			out[i] = item.Interface()
		}

		return out
	default:
		return n.value
	}
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump returns a debugging representation of the graph.
func (n *Node) Dump() string {
	return dumpConfig.Sdump(n.Interface())
}

package structure

import (
	"reflect"
	"slices"
)

// Pair is a key/value entry of an Ordered mapping.
type Pair struct {
	Key   string
	Value any
}

// Ordered is a mapping that keeps insertion order. It is accepted as mapper
// input wherever a mapping is expected and is the result type of Flatten.
type Ordered []Pair

// Get returns the value stored under key. When a key repeats, the last
// entry wins.
func (o Ordered) Get(key string) (any, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}

	return nil, false
}

// Keys returns the keys in order.
func (o Ordered) Keys() []string {
	keys := make([]string, len(o))
	for i, p := range o {
		keys[i] = p.Key
	}

	return keys
}

// Map converts the entries to a Go map.
func (o Ordered) Map() map[string]any {
	out := make(map[string]any, len(o))
	for _, p := range o {
		out[p.Key] = p.Value
	}

	return out
}

// mapping is the read view the mapper needs over mapping-shaped input.
type mapping interface {
	keys() []string
	get(key string) (any, bool)
}

type orderedMapping Ordered

func (m orderedMapping) keys() []string             { return Ordered(m).Keys() }
func (m orderedMapping) get(key string) (any, bool) { return Ordered(m).Get(key) }

type goMapping map[string]any

func (m goMapping) keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

func (m goMapping) get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// reflectMapping covers string-keyed maps of any named type.
type reflectMapping struct {
	v reflect.Value
}

func (m reflectMapping) keys() []string {
	keys := make([]string, 0, m.v.Len())
	for _, k := range m.v.MapKeys() {
		keys = append(keys, k.String())
	}

	slices.Sort(keys)

	return keys
}

func (m reflectMapping) get(key string) (any, bool) {
	v := m.v.MapIndex(reflect.ValueOf(key).Convert(m.v.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}

	return v.Interface(), true
}

func asMapping(v any) (mapping, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case Ordered:
		return orderedMapping(t), true
	case map[string]any:
		return goMapping(t), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		return reflectMapping{v: rv}, true
	}

	return nil, false
}

func asSequence(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil, Ordered, string, []byte:
		return nil, false
	case []any:
		return t, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

func describe(v any) string {
	if v == nil {
		return "null"
	}

	if _, ok := asMapping(v); ok {
		return "mapping"
	}

	if _, ok := asSequence(v); ok {
		return "sequence"
	}

	return reflect.TypeOf(v).String()
}

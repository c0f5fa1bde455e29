package structure

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph(t *testing.T) *Node {
	t.Helper()

	c := countryCatalog(t)

	n, err := c.MapType("CountryList", []any{
		map[string]any{
			"alpha2":    "AD",
			"name":      "Andorra",
			"unM49":     float64(20),
			"timezones": []any{"Europe/Andorra"},
			"flags":     map[string]any{"svg": "ad.svg"},
		},
		map[string]any{
			"alpha2":    "IT",
			"name":      "Italia",
			"timezones": []any{},
		},
	})
	require.NoError(t, err)

	return n
}

func TestToJSONKeepsOrder(t *testing.T) {
	n := sampleGraph(t)

	data, err := n.ToJSON(false)
	require.NoError(t, err)

	expected := `[{"alpha2":"AD","name":"Andorra","unM49":20,"timezones":["Europe/Andorra"],"flags":{"svg":"ad.svg"}},` +
		`{"alpha2":"IT","name":"Italia","timezones":[]}]`
	assert.Equal(t, expected, string(data))

	// Embedding in encoding/json goes through MarshalJSON.
	wrapped, err := json.Marshal(map[string]any{"data": n})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":`+expected+`}`, string(wrapped))
}

func TestToJSONPretty(t *testing.T) {
	n := NewNamed("")
	n.Set("a", NewLeaf(1))

	data, err := n.ToJSON(true)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(data))
}

func TestToYAMLBlockStyle(t *testing.T) {
	n := sampleGraph(t)

	data, err := n.ToYAML()
	require.NoError(t, err)

	expected := `- alpha2: AD
  name: Andorra
  unM49: 20
  timezones:
    - Europe/Andorra
  flags:
    svg: ad.svg
- alpha2: IT
  name: Italia
  timezones: []
`
	assert.Equal(t, expected, string(data))
}

func TestFlatten(t *testing.T) {
	n := sampleGraph(t)

	flat := n.Flatten("")

	assert.Equal(t, []string{
		"0.alpha2", "0.name", "0.unM49", "0.timezones.0", "0.flags.svg",
		"1.alpha2", "1.name", "1.timezones",
	}, flat.Keys())

	v, ok := flat.Get("0.flags.svg")
	require.True(t, ok)
	assert.Equal(t, "ad.svg", v)

	v, ok = flat.Get("1.timezones")
	require.True(t, ok)
	assert.Equal(t, []any{}, v)
}

func TestFlattenCustomSeparator(t *testing.T) {
	n := sampleGraph(t)

	flat := n.Flatten("/")
	_, ok := flat.Get("0/flags/svg")
	assert.True(t, ok)
}

func TestFlattenRoundTrip(t *testing.T) {
	graphs := map[string]*Node{
		"list":   sampleGraph(t),
		"named":  Infer(map[string]any{"a": map[string]any{"b": []any{"x", map[string]any{"c": true}}}, "d": nil}),
		"leaf":   NewLeaf("solo"),
		"empty":  NewNamed(""),
		"nested": Infer(map[string]any{"l": []any{[]any{1, 2}, []any{}}}),
		"blank":  Infer(map[string]any{"": map[string]any{"b": 1}, "x": []any{map[string]any{"": 2}}}),
		"blanks": Infer(map[string]any{"": 1, "y": 2}),
	}

	for name, n := range graphs {
		for _, sep := range []string{".", "__", "/"} {
			t.Run(fmt.Sprintf("%s %s", name, sep), func(t *testing.T) {
				back := Unflatten(n.Flatten(sep), sep)
				assert.Equal(t, n.Interface(), back, n.Dump())
			})
		}
	}
}

func TestFlattenEmptyKeyAtRoot(t *testing.T) {
	inner := NewNamed("")
	inner.Set("b", NewLeaf(1))

	n := NewNamed("")
	n.Set("", inner)

	assert.Equal(t, []string{".b"}, n.Flatten(".").Keys())

	sole := NewNamed("")
	sole.Set("", NewLeaf(1))

	assert.Equal(t, NewLeaf(1).Flatten("."), sole.Flatten("."))
	assert.Equal(t, 1, Unflatten(sole.Flatten("."), "."), "a single empty key reads back as a leaf root")
}

func TestToJSONNonFiniteNumbers(t *testing.T) {
	n := Infer(map[string]any{"nan": math.NaN(), "inf": []any{math.Inf(1), float32(math.Inf(-1)), 1.5}})

	data, err := n.ToJSON(false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"inf":[null,null,1.5],"nan":null}`, string(data))

	data, err = NewLeaf(math.NaN()).ToJSON(true)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestWalkVisitsEveryNode(t *testing.T) {
	n := sampleGraph(t)

	var paths []string

	n.Walk(func(path []string, node *Node) bool {
		if node.Kind() == KindLeaf {
			paths = append(paths, fmt.Sprint(path))
		}

		return true
	})

	assert.Equal(t, []string{
		"[0 alpha2]", "[0 name]", "[0 unM49]", "[0 timezones 0]", "[0 flags svg]",
		"[1 alpha2]", "[1 name]",
	}, paths)
}

func TestWalkSkipsChildren(t *testing.T) {
	n := sampleGraph(t)

	visited := 0

	n.Walk(func(path []string, _ *Node) bool {
		visited++
		return len(path) == 0
	})

	assert.Equal(t, 3, visited)
}

func TestSetOverwriteKeepsPosition(t *testing.T) {
	n := NewNamed("Index")
	n.Set("a", NewLeaf(1))
	n.Set("b", NewLeaf(2))
	n.Set("a", NewLeaf(3))

	assert.Equal(t, []string{"a", "b"}, n.Keys())
	assert.Equal(t, map[string]any{"a": 3, "b": 2}, n.Interface())
}

func TestAllOnlyOnLists(t *testing.T) {
	count := 0
	for range NewNamed("").All() {
		count++
	}

	assert.Zero(t, count)
	assert.Nil(t, NewLeaf(1).Index(0))
}

func ExampleNode_Flatten() {
	n := Infer(Ordered{
		{Key: "alpha2", Value: "IT"},
		{Key: "dialCodes", Value: Ordered{{Key: "main", Value: []any{"+39"}}}},
	})

	for _, p := range n.Flatten(".") {
		fmt.Printf("%s=%v\n", p.Key, p.Value)
	}

	// Output:
	// alpha2=IT
	// dialCodes.main.0=+39
}

func ExampleNode_ToYAML() {
	n := Infer(Ordered{
		{Key: "isoAlpha", Value: "EUR"},
		{Key: "decimals", Value: 2},
	})

	out, _ := n.ToYAML()
	fmt.Print(string(out))

	// Output:
	// isoAlpha: EUR
	// decimals: 2
}

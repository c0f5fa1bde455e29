package structure

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countryCatalog(t *testing.T) *Catalog {
	t.Helper()

	c := NewCatalog()
	require.NoError(t, c.Define("Flags", Named(
		NewField("svg", Scalar(ScalarString)),
	)))
	require.NoError(t, c.Define("Country", Named(
		NewField("alpha2", Scalar(ScalarString)),
		NewField("name", Scalar(ScalarString)),
		NewField("unM49", Scalar(ScalarInteger)),
		NewField("timezones", ListOf(Scalar(ScalarString))),
		NewField("flags", Ref("Flags")),
		NewField("extra", Any()),
	)))
	require.NoError(t, c.Define("CountryList", ListOf(Ref("Country"))))
	require.NoError(t, c.Check())

	return c
}

func TestMapListPreservesLengthAndOrder(t *testing.T) {
	c := countryCatalog(t)

	input := []any{
		map[string]any{"alpha2": "AD", "name": "Andorra"},
		map[string]any{"alpha2": "IT", "name": "Italy"},
		map[string]any{"alpha2": "FR", "name": "France"},
	}

	n, err := c.MapType("CountryList", input)
	require.NoError(t, err)

	assert.Equal(t, KindList, n.Kind())
	assert.Equal(t, "CountryList", n.TypeName())
	require.Equal(t, len(input), n.Len())

	var codes []string
	for i, item := range n.All() {
		assert.Equal(t, "Country", item.TypeName(), "item %d", i)

		code, ok := item.Field("alpha2")
		require.True(t, ok)
		codes = append(codes, code.Value().(string))
	}

	assert.Equal(t, []string{"AD", "IT", "FR"}, codes)
}

func TestMapNamedOmitsAbsentFields(t *testing.T) {
	c := countryCatalog(t)

	n, err := c.MapType("Country", map[string]any{"alpha2": "AD", "unknown": 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha2"}, n.Keys())

	_, ok := n.Field("name")
	assert.False(t, ok, "declared but absent fields must not be materialized")
}

func TestMapNamedFollowsDeclarationOrder(t *testing.T) {
	c := countryCatalog(t)

	input := Ordered{
		{Key: "flags", Value: map[string]any{"svg": "ad.svg"}},
		{Key: "name", Value: "Andorra"},
		{Key: "alpha2", Value: "AD"},
	}

	n, err := c.MapType("Country", input)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha2", "name", "flags"}, n.Keys())

	svg, ok := n.Lookup("flags", "svg")
	require.True(t, ok)
	assert.Equal(t, "ad.svg", svg.Value())

	flags, _ := n.Field("flags")
	assert.Equal(t, "Flags", flags.TypeName())
}

func TestMapNormalizesIntegers(t *testing.T) {
	c := countryCatalog(t)

	n, err := c.MapType("Country", map[string]any{"unM49": float64(20)})
	require.NoError(t, err)

	v, _ := n.Field("unM49")
	assert.Equal(t, int64(20), v.Value())

	n, err = c.MapType("Country", map[string]any{"unM49": json.Number("380")})
	require.NoError(t, err)

	v, _ = n.Field("unM49")
	assert.Equal(t, int64(380), v.Value())

	for _, f := range []float64{math.Pow(2, 63), 1.5, math.Inf(-1)} {
		n, err = c.MapType("Country", map[string]any{"unM49": f})
		require.NoError(t, err)

		v, _ = n.Field("unM49")
		assert.Equal(t, f, v.Value(), "%g is kept as a float", f)
	}

	n, err = c.MapType("Country", map[string]any{"unM49": float64(math.MinInt64)})
	require.NoError(t, err)

	v, _ = n.Field("unM49")
	assert.Equal(t, int64(math.MinInt64), v.Value())
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "named", SchemaNamed.String())
	assert.Equal(t, "any", SchemaAny.String())
	assert.Equal(t, "SchemaKind(9)", SchemaKind(9).String())
	assert.Equal(t, "number", ScalarNumber.String())
	assert.Equal(t, "boolean", ScalarBoolean.String())
	assert.Equal(t, "ScalarKind(-1)", ScalarKind(-1).String())
}

func TestMapNullValues(t *testing.T) {
	c := countryCatalog(t)

	n, err := c.MapType("Country", map[string]any{"alpha2": "XK", "flags": nil, "timezones": nil})
	require.NoError(t, err)

	flags, ok := n.Field("flags")
	require.True(t, ok)
	assert.True(t, flags.IsNull())

	tz, ok := n.Field("timezones")
	require.True(t, ok)
	assert.True(t, tz.IsNull())
}

func TestMapInfersUndeclaredShape(t *testing.T) {
	c := countryCatalog(t)

	n, err := c.MapType("Country", map[string]any{
		"extra": map[string]any{"b": []any{1, 2}, "a": "x"},
	})
	require.NoError(t, err)

	extra, ok := n.Field("extra")
	require.True(t, ok)
	assert.Equal(t, KindNamed, extra.Kind())
	assert.Equal(t, []string{"a", "b"}, extra.Keys())

	b, _ := extra.Field("b")
	assert.Equal(t, KindList, b.Kind())
	assert.Equal(t, 2, b.Len())
}

func TestMapUnknownSchema(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Define("Country", Named(
		NewField("alpha2", Scalar(ScalarString)),
		NewField("currency", Ref("Currency")),
	)))

	_, err := c.MapType("Country", map[string]any{"alpha2": "IT", "currency": map[string]any{"code": "EUR"}})
	require.Error(t, err)

	var resErr *SchemaResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "currency", resErr.Field)
	assert.Equal(t, "Currency", resErr.Type)
	assert.Contains(t, err.Error(), "currency")
	assert.Contains(t, err.Error(), "Currency")

	var checkErr *SchemaResolutionError
	require.ErrorAs(t, c.Check(), &checkErr)
	assert.Equal(t, "Currency", checkErr.Type)
}

func TestMapUnknownTopLevelType(t *testing.T) {
	_, err := NewCatalog().MapType("Missing", []any{})

	var resErr *SchemaResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "Missing", resErr.Type)
}

func TestMapShapeMismatch(t *testing.T) {
	c := countryCatalog(t)

	tests := []struct {
		name  string
		typ   string
		input any
		path  string
	}{
		{name: "list expected", typ: "CountryList", input: map[string]any{}, path: ""},
		{name: "mapping expected", typ: "Country", input: "AD", path: ""},
		{name: "scalar expected", typ: "Country", input: map[string]any{"alpha2": []any{"A"}}, path: "alpha2"},
		{name: "nested item", typ: "CountryList", input: []any{map[string]any{}, "x"}, path: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.MapType(tt.typ, tt.input)

			var shapeErr *ShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, tt.path, shapeErr.Path)
		})
	}
}

func TestCatalogDefine(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Define("A", Any()))
	require.Error(t, c.Define("A", Any()))
	require.Error(t, c.Define("1bad", Any()))
	assert.Equal(t, []string{"A"}, c.Names())
}

func TestCatalogSelfReference(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Define("Loop", Ref("Loop")))

	_, err := c.MapType("Loop", "x")
	require.Error(t, err)
}

func TestParseType(t *testing.T) {
	tests := []struct {
		expr     string
		expected string
		kind     SchemaKind
		wantErr  bool
	}{
		{expr: "string", expected: "string", kind: SchemaScalar},
		{expr: "integer", expected: "integer", kind: SchemaScalar},
		{expr: "[]string", expected: "[]string", kind: SchemaList},
		{expr: "[][]number", expected: "[][]number", kind: SchemaList},
		{expr: "Flags", expected: "Flags", kind: SchemaRef},
		{expr: "[]DialCodes", expected: "[]DialCodes", kind: SchemaList},
		{expr: "any", expected: "any", kind: SchemaAny},
		{expr: "", wantErr: true},
		{expr: "[]", wantErr: true},
		{expr: "not-an-ident", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			s, err := ParseType(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.kind, s.Kind())
			assert.Equal(t, tt.expected, s.String())
		})
	}
}

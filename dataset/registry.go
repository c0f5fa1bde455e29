package dataset

import (
	"embed"
	"path"
	"sync"
)

// Names of the built-in datasets.
const (
	NameCountries  = "countries"
	NameCurrencies = "currencies"
	NameGeoSets    = "geoSets"
)

//go:embed schemas/*.yaml
var declarations embed.FS

var builtin = [...]struct {
	name string
	file string
}{
	{NameCountries, "countries.yaml"},
	{NameCurrencies, "currencies.yaml"},
	{NameGeoSets, "geosets.yaml"},
}

// registry parses the embedded declarations once per process.
var registry = sync.OnceValue(func() map[string]*Schema {
	out := make(map[string]*Schema, len(builtin))

	for _, b := range builtin {
		data, err := declarations.ReadFile(path.Join("schemas", b.file))
		if err != nil {
			panic(err)
		}

		s := MustParse(data)
		if s.Name() != b.name {
			panic("dataset: " + b.file + " declares " + s.Name() + ", want " + b.name)
		}

		out[b.name] = s
	}

	return out
})

// Countries returns the countries schema.
func Countries() *Schema { return registry()[NameCountries] }

// Currencies returns the currencies schema.
func Currencies() *Schema { return registry()[NameCurrencies] }

// GeoSets returns the geoSets schema.
func GeoSets() *Schema { return registry()[NameGeoSets] }

// Lookup returns the built-in schema with the given dataset name.
func Lookup(name string) (*Schema, bool) {
	s, ok := registry()[name]
	return s, ok
}

// Names returns the built-in dataset names.
func Names() []string {
	names := make([]string, len(builtin))
	for i, b := range builtin {
		names[i] = b.name
	}

	return names
}

// All returns every built-in schema in Names order.
func All() []*Schema {
	out := make([]*Schema, len(builtin))
	for i, b := range builtin {
		out[i] = registry()[b.name]
	}

	return out
}

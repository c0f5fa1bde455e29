package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var countryFields = []string{"alpha2", "alpha3", "unM49", "name", "fullName", "demonyms", "ccTld", "timezones"}

func TestRank(t *testing.T) {
	ranked := Rank("alpha", countryFields)
	require.Len(t, ranked, len(countryFields))

	assert.Equal(t, "alpha2", ranked[0].Name, "ties break by name")
	assert.Equal(t, "alpha3", ranked[1].Name)
	assert.InDelta(t, ranked[0].Score, ranked[1].Score, 0.001)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{name: "full_name", want: "fullName", ok: true},
		{name: "timezone", want: "timezones", ok: true},
		{name: "cctld", want: "ccTld", ok: true},
		{name: "currency", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Suggest(tt.name, countryFields, DefaultThreshold)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Suggest("name", nil, DefaultThreshold)
	assert.False(t, ok)
}

package cities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bandra W", "bandra west"},
		{"  WEST BANDRA ", "bandra west"},
		{"mumbai city", "mumbai"},
		{"Bombay", "bombay"},
		{"hiranandani powai", "powai"},
		{"Marine Drive", "marine lines"},
		{"parel", "lower parel"},
		{"Thane City", "thane city"},
		{"fort colaba", "colaba"},
		{"  Nowhere City ", "nowhere city"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_EveryAliasResolves(t *testing.T) {
	firstOwner := func(v string) string {
		for _, s := range aliasTable {
			for _, x := range s.variants {
				if x == v {
					return s.key
				}
			}
		}
		return ""
	}

	for _, s := range aliasTable {
		assert.Equal(t, s.key, Normalize(s.key), "canonical key must map to itself")
		for _, v := range s.variants {
			got := Normalize(v)
			if IsCanonical(v) {
				assert.Equal(t, v, got)
			} else {
				assert.Equal(t, firstOwner(v), got, "alias %q", v)
			}
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent for %q", v)
		}
	}
}

func TestVariations(t *testing.T) {
	assert.Equal(t, []string{"bandra west", "bandra w", "west bandra"}, Variations("Bandra W"))
	assert.Equal(t, []string{"nowhere city"}, Variations("Nowhere City"))

	v := Variations("juhu")
	v[0] = "mutated"
	assert.Equal(t, "juhu", Variations("juhu")[0], "Variations must return a copy")
}

func TestSameCity(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Bandra W", "west bandra", true},
		{"colaba", "South Mumbai", true},
		{"south mumbai", "fort", true},
		{"bombay", "mumbai", true},
		{"Nowhere", " nowhere ", true},
		{"colaba", "worli", false},
		{"colaba", "fort", false},
		{"juhu", "powai", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, SameCity(tt.a, tt.b))
			assert.Equal(t, tt.want, SameCity(tt.b, tt.a), "SameCity must be symmetric")
		})
	}
}

func TestSupportedCities(t *testing.T) {
	got := SupportedCities()
	require.Len(t, got, len(aliasTable))
	assert.Equal(t, "mumbai", got[0])
	assert.Equal(t, "eastern mumbai", got[len(got)-1])
	assert.Contains(t, got, "bandra west")
}

func TestRelated(t *testing.T) {
	assert.Equal(t, []string{"colaba", "south mumbai"}, Related("Colaba"))
	assert.Equal(t, []string{"mumbai", "bombay"}, Related("mumbai"))
	assert.Equal(t, []string{"nowhere city"}, Related("Nowhere City"))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())

	saved := aliasTable
	t.Cleanup(func() { aliasTable = saved })

	aliasTable = []aliasSet{{"juhu", []string{"juhu beach"}}}
	assert.Error(t, Validate(), "missing self-inclusion")

	aliasTable = []aliasSet{{"juhu", []string{"juhu"}}, {"juhu", []string{"juhu"}}}
	assert.Error(t, Validate(), "duplicate key")

	aliasTable = []aliasSet{{"juhu", []string{"juhu", "Juhu Beach"}}}
	assert.Error(t, Validate(), "variant not lowercased")
}

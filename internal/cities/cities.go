// Package cities maps free-text city input onto canonical city keys.
package cities

import (
	"fmt"
	"strings"
)

// byKey indexes aliasTable by canonical key.
var byKey = func() map[string]int {
	m := make(map[string]int, len(aliasTable))
	for i, s := range aliasTable {
		if _, dup := m[s.key]; !dup {
			m[s.key] = i
		}
	}
	return m
}()

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalize returns the canonical key for input. A canonical key maps to
// itself; any other alias maps to the first set that lists it. Unknown input
// comes back trimmed and lowercased.
func Normalize(input string) string {
	s := clean(input)
	if _, ok := byKey[s]; ok {
		return s
	}
	for _, set := range aliasTable {
		for _, v := range set.variants {
			if v == s {
				return set.key
			}
		}
	}
	return s
}

// IsCanonical reports whether key names an alias set.
func IsCanonical(key string) bool {
	_, ok := byKey[key]
	return ok
}

// Variations returns every accepted spelling of city's canonical key, or
// just the normalized input when it has no alias set.
func Variations(city string) []string {
	key := Normalize(city)
	i, ok := byKey[key]
	if !ok {
		return []string{key}
	}
	out := make([]string, len(aliasTable[i].variants))
	copy(out, aliasTable[i].variants)
	return out
}

// SameCity reports whether a and b normalize to the same key or share at
// least one variant.
func SameCity(a, b string) bool {
	if Normalize(a) == Normalize(b) {
		return true
	}
	vb := Variations(b)
	for _, x := range Variations(a) {
		for _, y := range vb {
			if x == y {
				return true
			}
		}
	}
	return false
}

// SupportedCities returns the canonical keys in declaration order.
func SupportedCities() []string {
	out := make([]string, 0, len(aliasTable))
	for _, s := range aliasTable {
		out = append(out, s.key)
	}
	return out
}

// Related returns Normalize(city) followed by every other canonical key that
// SameCity considers equivalent, in declaration order. It is the set of
// stored city values a user directory should match.
func Related(city string) []string {
	key := Normalize(city)
	out := []string{key}
	for _, s := range aliasTable {
		if s.key != key && SameCity(s.key, city) {
			out = append(out, s.key)
		}
	}
	return out
}

// Validate checks the alias table invariants. It is called once at startup.
func Validate() error {
	seen := make(map[string]bool, len(aliasTable))
	for _, s := range aliasTable {
		if s.key == "" || s.key != clean(s.key) {
			return fmt.Errorf("cities: malformed canonical key %q", s.key)
		}
		if seen[s.key] {
			return fmt.Errorf("cities: duplicate canonical key %q", s.key)
		}
		seen[s.key] = true

		self := false
		for _, v := range s.variants {
			if v == "" || v != clean(v) {
				return fmt.Errorf("cities: malformed variant %q of %q", v, s.key)
			}
			if v == s.key {
				self = true
			}
		}
		if !self {
			return fmt.Errorf("cities: %q is missing from its own variants", s.key)
		}
	}
	return nil
}

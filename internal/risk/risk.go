// Package risk resolves the static flood-risk level of a city.
package risk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rajasatyajit/FloodAlert/internal/models"
)

const (
	TableCity = "city"
	TableWard = "ward"
)

// Table is an immutable city -> risk level mapping. Keys keep their display
// spelling; lookups go through a lowercase index.
type Table struct {
	name   string
	levels map[string]models.RiskLevel
	folded map[string]models.RiskLevel
}

func newTable(name string, levels map[string]models.RiskLevel) *Table {
	folded := make(map[string]models.RiskLevel, len(levels))
	for k, v := range levels {
		folded[strings.ToLower(k)] = v
	}
	return &Table{name: name, levels: levels, folded: folded}
}

// CityTable returns the table used for alert dispatch by default.
func CityTable() *Table { return newTable(TableCity, cityLevels) }

// WardTable returns the curated ward table.
func WardTable() *Table { return newTable(TableWard, wardLevels) }

func (t *Table) lookup(city string) (models.RiskLevel, bool) {
	if lvl, ok := t.levels[city]; ok {
		return lvl, true
	}
	lvl, ok := t.folded[strings.ToLower(city)]
	return lvl, ok
}

// ByName selects a table by its configuration name.
func ByName(name string) (*Table, error) {
	switch strings.ToLower(name) {
	case TableCity:
		return CityTable(), nil
	case TableWard:
		return WardTable(), nil
	}
	return nil, fmt.Errorf("risk: unknown table %q", name)
}

// Name returns the configuration name of the table.
func (t *Table) Name() string { return t.name }

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.levels) }

func (t *Table) validate() error {
	lower := make(map[string]string, len(t.levels))
	for k, v := range t.levels {
		if strings.TrimSpace(k) == "" || k != strings.TrimSpace(k) {
			return fmt.Errorf("risk: %s table has malformed key %q", t.name, k)
		}
		if !v.Valid() {
			return fmt.Errorf("risk: %s table has invalid level %q for %q", t.name, v, k)
		}
		lk := strings.ToLower(k)
		if prev, ok := lower[lk]; ok {
			return fmt.Errorf("risk: %s table has %q and %q differing only in case", t.name, prev, k)
		}
		lower[lk] = k
	}
	return nil
}

// Validate checks both built-in tables. It is called once at startup.
func Validate() error {
	for _, t := range []*Table{CityTable(), WardTable()} {
		if err := t.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Resolver answers risk lookups against one table.
type Resolver struct {
	table *Table
}

// NewResolver returns a resolver over t.
func NewResolver(t *Table) *Resolver {
	return &Resolver{table: t}
}

// Table returns the active table.
func (r *Resolver) Table() *Table { return r.table }

// Resolve looks city up as given, then case-insensitively. Unknown cities
// are low.
func (r *Resolver) Resolve(city string) models.RiskLevel {
	if lvl, ok := r.table.lookup(city); ok {
		return lvl
	}
	return models.RiskLow
}

// Known reports whether Resolve would find an entry for city rather than
// falling back to the default.
func (r *Resolver) Known(city string) bool {
	_, ok := r.table.lookup(city)
	return ok
}

// ByLevel returns the sorted keys at level.
func (r *Resolver) ByLevel(level models.RiskLevel) []string {
	var out []string
	for k, v := range r.table.levels {
		if v == level {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

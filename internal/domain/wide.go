package domain

import (
	"errors"
	"sort"
)

// ErrInvalidSelection is returned when a trait selection is neither a
// positive count nor a non-empty list of trait names.
var ErrInvalidSelection = errors.New("invalid trait selection: want a positive count or at least one trait name")

// NumericAgg collapses the numeric values of one (species, trait) group
// into a single cell value.
type NumericAgg func(values []float64) float64

// CategoricalAgg collapses the categorical values of one (species, trait)
// group into a single cell value.
type CategoricalAgg func(values []string) string

// Mean is the default numeric aggregation.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value, or the mean of the two middle values.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Min returns the smallest value in the group.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Max returns the largest value in the group.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Mode is the default categorical aggregation: the most frequent value,
// with ties broken by whichever value reached that count first.
func Mode(values []string) string {
	counts := make(map[string]int, len(values))
	best := ""
	bestN := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestN {
			best, bestN = v, counts[v]
		}
	}
	return best
}

// TraitSelection picks which traits a wide table includes: either the k
// traits with the most records across both tables, or an explicit list
// of trait names. The zero value is invalid.
type TraitSelection struct {
	count int
	names []string
}

// TopTraits selects the k most-recorded traits, counting numeric and
// categorical records together, with ties broken by trait name.
func TopTraits(k int) TraitSelection {
	return TraitSelection{count: k}
}

// NamedTraits selects exactly the given trait names.
func NamedTraits(names ...string) TraitSelection {
	return TraitSelection{names: names}
}

func (s TraitSelection) resolve(db *Database) ([]string, error) {
	if len(s.names) > 0 {
		return s.names, nil
	}
	if s.count <= 0 {
		return nil, ErrInvalidSelection
	}
	totals := make(map[string]int)
	for _, o := range db.Numeric {
		totals[o.Variable]++
	}
	for _, o := range db.Categorical {
		totals[o.Variable]++
	}
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > s.count {
		names = names[:s.count]
	}
	return names, nil
}

// WideOption adjusts how a wide table is built.
type WideOption func(*wideConfig)

type wideConfig struct {
	numAgg NumericAgg
	catAgg CategoricalAgg
}

// WithNumericAgg overrides the numeric aggregation (default Mean).
func WithNumericAgg(agg NumericAgg) WideOption {
	return func(c *wideConfig) { c.numAgg = agg }
}

// WithCategoricalAgg overrides the categorical aggregation (default Mode).
func WithCategoricalAgg(agg CategoricalAgg) WideOption {
	return func(c *wideConfig) { c.catAgg = agg }
}

// WideRow is one species row of a wide table. Traits with no aggregated
// value for the species are simply missing from the maps, which is how
// the outer join keeps species present on only one side.
type WideRow struct {
	Species     string
	Numeric     map[string]float64
	Categorical map[string]string
}

// WideTable is a species-by-trait pivot: one row per species, one column
// per trait that retained data after filtering, one aggregated value per
// cell. It is derived from a database snapshot and never persisted.
type WideTable struct {
	NumericTraits     []string
	CategoricalTraits []string
	Rows              []WideRow
}

// Empty reports whether the table has no rows.
func (w *WideTable) Empty() bool {
	return w == nil || len(w.Rows) == 0
}

// ToWide pivots the database into a wide per-species summary table.
// The selected traits are filtered first with the usual table-absence
// semantics; each present table is then grouped by (species, trait) and
// aggregated, and the two wide sides are outer-joined on species. Rows
// come back sorted by species and columns sorted by trait name.
func (db *Database) ToWide(sel TraitSelection, opts ...WideOption) (*WideTable, error) {
	if err := db.check(); err != nil {
		return nil, err
	}
	cfg := wideConfig{numAgg: Mean, catAgg: Mode}
	for _, opt := range opts {
		opt(&cfg)
	}

	traits, err := sel.resolve(db)
	if err != nil {
		return nil, err
	}
	sub, err := db.Apply(Filter{Traits: traits})
	if err != nil {
		return nil, err
	}
	if !sub.HasNumeric() && !sub.HasCategorical() {
		return &WideTable{}, nil
	}

	numCells := make(map[string]map[string]float64)
	for species, byTrait := range groupValues(sub.Numeric,
		func(o Numeric) (string, string, float64) { return o.Species, o.Variable, o.Value }) {
		cells := make(map[string]float64, len(byTrait))
		for trait, values := range byTrait {
			cells[trait] = cfg.numAgg(values)
		}
		numCells[species] = cells
	}
	catCells := make(map[string]map[string]string)
	for species, byTrait := range groupValues(sub.Categorical,
		func(o Categorical) (string, string, string) { return o.Species, o.Variable, o.Value }) {
		cells := make(map[string]string, len(byTrait))
		for trait, values := range byTrait {
			cells[trait] = cfg.catAgg(values)
		}
		catCells[species] = cells
	}

	table := &WideTable{
		NumericTraits:     distinct(sub.Numeric, func(o Numeric) string { return o.Variable }),
		CategoricalTraits: distinct(sub.Categorical, func(o Categorical) string { return o.Variable }),
	}
	for _, species := range joinedSpecies(numCells, catCells) {
		table.Rows = append(table.Rows, WideRow{
			Species:     species,
			Numeric:     numCells[species],
			Categorical: catCells[species],
		})
	}
	return table, nil
}

// groupValues buckets observation values by species and then trait,
// preserving encounter order within each bucket.
func groupValues[T any, V any](rows []T, split func(T) (species, trait string, value V)) map[string]map[string][]V {
	grouped := make(map[string]map[string][]V)
	for _, r := range rows {
		species, trait, value := split(r)
		byTrait := grouped[species]
		if byTrait == nil {
			byTrait = make(map[string][]V)
			grouped[species] = byTrait
		}
		byTrait[trait] = append(byTrait[trait], value)
	}
	return grouped
}

// joinedSpecies is the sorted union of species on both wide sides.
func joinedSpecies(num map[string]map[string]float64, cat map[string]map[string]string) []string {
	seen := make(map[string]bool, len(num)+len(cat))
	var out []string
	for s := range num {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for s := range cat {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

package domain

import (
	"errors"
	"sort"
)

// ErrMalformedDatabase is returned when an operation is invoked on a nil
// database or one with both tables absent. It indicates a caller error,
// not a data problem, and is never recovered internally.
var ErrMalformedDatabase = errors.New("malformed database: both tables absent")

// Database is the aggregate collection of observation records across all
// invoked providers. A nil table slice means that kind is absent from
// every contributing dataset; see the package documentation for how
// absence differs from emptiness.
type Database struct {
	Numeric     []Numeric
	Categorical []Categorical
}

// Aggregate concatenates per-dataset results into one database. Row order
// follows the input order for reproducibility. A kind contributed by no
// dataset stays absent (nil) in the output; a kind contributed by at least
// one dataset is present even when it holds zero rows.
func Aggregate(results []Result) *Database {
	db := &Database{}
	for _, res := range results {
		if res.Numeric != nil && db.Numeric == nil {
			db.Numeric = []Numeric{}
		}
		if res.Categorical != nil && db.Categorical == nil {
			db.Categorical = []Categorical{}
		}
		db.Numeric = append(db.Numeric, res.Numeric...)
		db.Categorical = append(db.Categorical, res.Categorical...)
	}
	return db
}

// HasNumeric reports whether the numeric table is present.
func (db *Database) HasNumeric() bool {
	return db != nil && db.Numeric != nil
}

// HasCategorical reports whether the categorical table is present.
func (db *Database) HasCategorical() bool {
	return db != nil && db.Categorical != nil
}

func (db *Database) check() error {
	if db == nil || (db.Numeric == nil && db.Categorical == nil) {
		return ErrMalformedDatabase
	}
	return nil
}

// Species returns the sorted distinct species present across both tables.
func (db *Database) Species() ([]string, error) {
	if err := db.check(); err != nil {
		return nil, err
	}
	return unionDistinct(
		distinct(db.Numeric, func(o Numeric) string { return o.Species }),
		distinct(db.Categorical, func(o Categorical) string { return o.Species }),
	), nil
}

// Traits returns the sorted distinct trait names present across both tables.
func (db *Database) Traits() ([]string, error) {
	if err := db.check(); err != nil {
		return nil, err
	}
	return unionDistinct(
		distinct(db.Numeric, func(o Numeric) string { return o.Variable }),
		distinct(db.Categorical, func(o Categorical) string { return o.Variable }),
	), nil
}

// TableSummary counts distinct species, distinct traits and total records
// in one table. An absent table summarizes to all zeros.
type TableSummary struct {
	Species int
	Traits  int
	Records int
}

// Summary describes a database: per-table counts plus combined counts.
// The combined species and trait counts are unions across both tables,
// not sums, so a species present in both tables counts once.
type Summary struct {
	Numeric     TableSummary
	Categorical TableSummary
	Species     int
	Traits      int
	Records     int
}

// Summarize computes record, species and trait counts for the database.
func (db *Database) Summarize() (Summary, error) {
	if err := db.check(); err != nil {
		return Summary{}, err
	}
	species, _ := db.Species()
	traits, _ := db.Traits()
	return Summary{
		Numeric: TableSummary{
			Species: len(distinct(db.Numeric, func(o Numeric) string { return o.Species })),
			Traits:  len(distinct(db.Numeric, func(o Numeric) string { return o.Variable })),
			Records: len(db.Numeric),
		},
		Categorical: TableSummary{
			Species: len(distinct(db.Categorical, func(o Categorical) string { return o.Species })),
			Traits:  len(distinct(db.Categorical, func(o Categorical) string { return o.Variable })),
			Records: len(db.Categorical),
		},
		Species: len(species),
		Traits:  len(traits),
		Records: len(db.Numeric) + len(db.Categorical),
	}, nil
}

// distinct returns the sorted distinct keys of a record slice.
func distinct[T any](rows []T, key func(T) string) []string {
	seen := make(map[string]bool, len(rows))
	out := make([]string, 0)
	for _, r := range rows {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// unionDistinct merges two sorted distinct slices into one.
func unionDistinct(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

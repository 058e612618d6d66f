package domain

// Filter selects records by species and/or trait name. A nil slice on
// either axis means no constraint on that axis.
type Filter struct {
	Species []string
	Traits  []string
}

func (f Filter) empty() bool {
	return f.Species == nil && f.Traits == nil
}

// Apply returns a new database containing only the records matching the
// filter. Each table is filtered independently; when a constraint is
// given and matches nothing in a table, that table becomes absent in the
// result, not present-but-empty. Filtering an already-absent table keeps
// it absent. The input database is never modified.
//
// Applying both constraints is equivalent to applying the species filter
// and then the trait filter. Absence-clearing always targets the table
// being matched against, never its sibling.
func (db *Database) Apply(f Filter) (*Database, error) {
	if db == nil {
		return nil, ErrMalformedDatabase
	}
	if f.empty() {
		return &Database{
			Numeric:     cloneRows(db.Numeric),
			Categorical: cloneRows(db.Categorical),
		}, nil
	}

	out := &Database{
		Numeric:     cloneRows(db.Numeric),
		Categorical: cloneRows(db.Categorical),
	}
	if f.Species != nil {
		allowed := toSet(f.Species)
		out.Numeric = filterRows(out.Numeric, allowed, func(o Numeric) string { return o.Species })
		out.Categorical = filterRows(out.Categorical, allowed, func(o Categorical) string { return o.Species })
	}
	if f.Traits != nil {
		allowed := toSet(f.Traits)
		out.Numeric = filterRows(out.Numeric, allowed, func(o Numeric) string { return o.Variable })
		out.Categorical = filterRows(out.Categorical, allowed, func(o Categorical) string { return o.Variable })
	}
	return out, nil
}

// filterRows keeps the rows whose key is in the allowed set. A table with
// no matches comes back nil, which marks it absent downstream.
func filterRows[T any](rows []T, allowed map[string]bool, key func(T) string) []T {
	if rows == nil {
		return nil
	}
	var out []T
	for _, r := range rows {
		if allowed[key(r)] {
			out = append(out, r)
		}
	}
	return out
}

// cloneRows copies a table, preserving the nil/empty distinction.
func cloneRows[T any](rows []T) []T {
	if rows == nil {
		return nil
	}
	out := make([]T, len(rows))
	copy(out, rows)
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}

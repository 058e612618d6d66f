// Package domain holds the core data model for Traitbase: long-format
// observation records, per-dataset results, the aggregated two-table
// database, and the pure operations over it (filtering, summarizing,
// and reshaping to a wide species-by-trait table).
//
// # Tables and absence
//
// A database carries two tables, numeric and categorical. Either table
// may be absent entirely, which is a different state from a table that
// is present but has zero rows. Absence is modeled as a nil slice;
// presence-but-empty as a non-nil empty slice. All constructors and
// operations in this package preserve that distinction, because
// downstream behavior (summary counts, wide-table joins) branches on it.
//
// # Purity
//
// Every operation on a Database returns a new value and never mutates
// its input. Multiple filtered views taken from one loaded database are
// therefore always independent.
package domain

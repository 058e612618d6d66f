// Package sqlite persists an assembled trait database in a SQLite file
// so downstream analysis can query it with plain SQL. The store is an
// export target, not the working representation: the in-memory database
// stays authoritative and an export replaces the previous contents.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"traitbase/internal/collector"
	"traitbase/internal/domain"
)

// Store wraps a SQLite database holding exported observations.
type Store struct {
	db *sql.DB
}

// Open creates or opens a store at the given path and migrates its schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS numeric_observations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		species TEXT NOT NULL,
		variable TEXT NOT NULL,
		value REAL NOT NULL,
		units TEXT NOT NULL DEFAULT '',
		metadata TEXT NOT NULL DEFAULT '',
		dataset TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS categorical_observations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		species TEXT NOT NULL,
		variable TEXT NOT NULL,
		value TEXT NOT NULL,
		units TEXT NOT NULL DEFAULT '',
		metadata TEXT NOT NULL DEFAULT '',
		dataset TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS table_state (
		kind TEXT PRIMARY KEY,
		present INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS fetch_runs (
		run_id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS fetch_providers (
		run_id TEXT NOT NULL,
		name TEXT NOT NULL,
		from_cache INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		numeric_records INTEGER NOT NULL,
		categorical_records INTEGER NOT NULL,
		PRIMARY KEY (run_id, name),
		FOREIGN KEY (run_id) REFERENCES fetch_runs(run_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_numeric_species ON numeric_observations(species);
	CREATE INDEX IF NOT EXISTS idx_numeric_variable ON numeric_observations(variable);
	CREATE INDEX IF NOT EXISTS idx_categorical_species ON categorical_observations(species);
	CREATE INDEX IF NOT EXISTS idx_categorical_variable ON categorical_observations(variable);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Export replaces the stored observations with the given database and
// records the fetch report when one is supplied. The whole export is one
// transaction: a failed export leaves the previous contents intact.
func (s *Store) Export(ctx context.Context, db *domain.Database, report *collector.Report) error {
	if db == nil {
		return domain.ErrMalformedDatabase
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"numeric_observations", "categorical_observations", "table_state"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, state := range []struct {
		kind    string
		present bool
	}{
		{"numeric", db.HasNumeric()},
		{"categorical", db.HasCategorical()},
	} {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO table_state (kind, present) VALUES (?, ?)",
			state.kind, state.present); err != nil {
			return fmt.Errorf("record table state: %w", err)
		}
	}

	for _, o := range db.Numeric {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO numeric_observations (species, variable, value, units, metadata, dataset)
			VALUES (?, ?, ?, ?, ?, ?)`,
			o.Species, o.Variable, o.Value, o.Units, o.Metadata, o.Dataset); err != nil {
			return fmt.Errorf("insert numeric observation: %w", err)
		}
	}
	for _, o := range db.Categorical {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categorical_observations (species, variable, value, units, metadata, dataset)
			VALUES (?, ?, ?, ?, ?, ?)`,
			o.Species, o.Variable, o.Value, o.Units, o.Metadata, o.Dataset); err != nil {
			return fmt.Errorf("insert categorical observation: %w", err)
		}
	}

	if report != nil {
		if err := insertReport(ctx, tx, report); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertReport(ctx context.Context, tx *sql.Tx, report *collector.Report) error {
	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO fetch_runs (run_id, started_at, finished_at) VALUES (?, ?, ?)",
		report.RunID, report.Started, report.Finished); err != nil {
		return fmt.Errorf("insert fetch run: %w", err)
	}
	for _, p := range report.Providers {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO fetch_providers
				(run_id, name, from_cache, failed, error, numeric_records, categorical_records)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			report.RunID, p.Name, p.FromCache, p.Failed, p.Err,
			p.NumericRecords, p.CategoricalRecords); err != nil {
			return fmt.Errorf("insert provider report %s: %w", p.Name, err)
		}
	}
	return nil
}

// Load reads the stored observations back into an in-memory database,
// restoring the numeric/categorical presence state recorded at export.
func (s *Store) Load(ctx context.Context) (*domain.Database, error) {
	present := map[string]bool{}
	rows, err := s.db.QueryContext(ctx, "SELECT kind, present FROM table_state")
	if err != nil {
		return nil, fmt.Errorf("query table state: %w", err)
	}
	for rows.Next() {
		var kind string
		var p bool
		if err := rows.Scan(&kind, &p); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan table state: %w", err)
		}
		present[kind] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read table state: %w", err)
	}

	db := &domain.Database{}
	if present["numeric"] {
		db.Numeric = []domain.Numeric{}
		rows, err := s.db.QueryContext(ctx, `
			SELECT species, variable, value, units, metadata, dataset
			FROM numeric_observations ORDER BY id`)
		if err != nil {
			return nil, fmt.Errorf("query numeric observations: %w", err)
		}
		for rows.Next() {
			var o domain.Numeric
			if err := rows.Scan(&o.Species, &o.Variable, &o.Value, &o.Units, &o.Metadata, &o.Dataset); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan numeric observation: %w", err)
			}
			db.Numeric = append(db.Numeric, o)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("read numeric observations: %w", err)
		}
	}
	if present["categorical"] {
		db.Categorical = []domain.Categorical{}
		rows, err := s.db.QueryContext(ctx, `
			SELECT species, variable, value, units, metadata, dataset
			FROM categorical_observations ORDER BY id`)
		if err != nil {
			return nil, fmt.Errorf("query categorical observations: %w", err)
		}
		for rows.Next() {
			var o domain.Categorical
			if err := rows.Scan(&o.Species, &o.Variable, &o.Value, &o.Units, &o.Metadata, &o.Dataset); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan categorical observation: %w", err)
			}
			db.Categorical = append(db.Categorical, o)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("read categorical observations: %w", err)
		}
	}
	return db, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

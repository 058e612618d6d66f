package provider

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"traitbase/internal/domain"
)

// FromCSV builds a provider that reads a local long-format CSV file
// instead of downloading anything. The file needs a header with at least
// species, variable, kind and value columns; units and metadata columns
// are optional. kind is "numeric" or "categorical" per row.
//
// This lets callers mix their own measurements into the database next to
// the published sources.
func FromCSV(path string) Func {
	return func(ctx context.Context) (*domain.Result, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		res, err := parseLongCSV(f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return res, nil
	}
}

func parseLongCSV(r io.Reader) (*domain.Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"species", "variable", "kind", "value"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	optional := func(row []string, name string) string {
		i, ok := index[name]
		if !ok {
			return ""
		}
		return cell(row, i)
	}

	res := &domain.Result{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		species := NormalizeSpecies(cell(row, index["species"]))
		variable := cell(row, index["variable"])
		raw := cell(row, index["value"])
		if species == "" || variable == "" || missing(raw) {
			continue
		}
		units := optional(row, "units")
		metadata := optional(row, "metadata")

		switch kind := strings.ToLower(cell(row, index["kind"])); kind {
		case "numeric":
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: numeric value %q: %w", line, raw, err)
			}
			res.Numeric = append(res.Numeric, domain.Numeric{
				Species:  species,
				Variable: variable,
				Value:    v,
				Units:    units,
				Metadata: metadata,
			})
		case "categorical":
			res.Categorical = append(res.Categorical, domain.Categorical{
				Species:  species,
				Variable: variable,
				Value:    raw,
				Units:    units,
				Metadata: metadata,
			})
		default:
			return nil, fmt.Errorf("line %d: unknown kind %q", line, kind)
		}
	}
	return res, nil
}

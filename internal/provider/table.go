package provider

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"traitbase/internal/domain"
)

// column maps a numeric source column onto a trait name with its units.
type column struct {
	name  string
	trait string
	units string
}

// factor maps a categorical source column onto a trait name. When levels
// is set, raw cell values are recoded through it and unrecognized codes
// are dropped; otherwise the raw token is kept, lowercased.
type factor struct {
	name   string
	trait  string
	levels map[string]string
}

// tableSpec describes how to turn one delimited source file into a
// long-format result.
type tableSpec struct {
	species  []string // columns joined with a space to form the taxon name
	comma    rune     // field delimiter, ',' when zero
	numeric  []column
	factors  []factor
	sentinel string // numeric missing-value marker, e.g. "-999"
}

// parseTable reads a delimited dataset and extracts the configured
// numeric and categorical observations. Cells that are empty, "NA", or
// equal to the numeric sentinel are dropped. Rows with an empty species
// name are skipped entirely.
func parseTable(r io.Reader, spec tableSpec) (*domain.Result, error) {
	reader := csv.NewReader(r)
	if spec.comma != 0 {
		reader.Comma = spec.comma
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	at := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}
	for _, col := range spec.species {
		if at(col) < 0 {
			return nil, fmt.Errorf("species column %q not found", col)
		}
	}

	var sentinel float64
	hasSentinel := spec.sentinel != ""
	if hasSentinel {
		if sentinel, err = strconv.ParseFloat(spec.sentinel, 64); err != nil {
			return nil, fmt.Errorf("bad sentinel %q: %w", spec.sentinel, err)
		}
	}

	res := &domain.Result{}
	if len(spec.numeric) > 0 {
		res.Numeric = []domain.Numeric{}
	}
	if len(spec.factors) > 0 {
		res.Categorical = []domain.Categorical{}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		var nameParts []string
		for _, col := range spec.species {
			nameParts = append(nameParts, cell(row, at(col)))
		}
		species := NormalizeSpecies(strings.Join(nameParts, " "))
		if species == "" {
			continue
		}

		for _, col := range spec.numeric {
			raw := cell(row, at(col.name))
			if missing(raw) {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			if hasSentinel && v == sentinel {
				continue
			}
			res.Numeric = append(res.Numeric, domain.Numeric{
				Species:  species,
				Variable: col.trait,
				Value:    v,
				Units:    col.units,
			})
		}

		for _, f := range spec.factors {
			raw := cell(row, at(f.name))
			if missing(raw) || raw == spec.sentinel {
				continue
			}
			value := strings.ToLower(raw)
			if f.levels != nil {
				recoded, ok := f.levels[raw]
				if !ok {
					continue
				}
				value = recoded
			}
			res.Categorical = append(res.Categorical, domain.Categorical{
				Species:  species,
				Variable: f.trait,
				Value:    value,
			})
		}
	}
	return res, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func missing(raw string) bool {
	return raw == "" || raw == "NA" || raw == "NaN"
}

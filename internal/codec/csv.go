package codec

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"traitbase/internal/domain"
)

// WriteWideCSV renders a wide table as CSV: a species column followed by
// one column per numeric trait and one per categorical trait. Cells with
// no aggregated value are left empty, preserving the outer-join shape.
func WriteWideCSV(w io.Writer, table *domain.WideTable) error {
	writer := csv.NewWriter(w)

	header := append([]string{"species"}, table.NumericTraits...)
	header = append(header, table.CategoricalTraits...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range table.Rows {
		record := make([]string, 0, len(header))
		record = append(record, row.Species)
		for _, trait := range table.NumericTraits {
			if v, ok := row.Numeric[trait]; ok {
				record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
			} else {
				record = append(record, "")
			}
		}
		for _, trait := range table.CategoricalTraits {
			record = append(record, row.Categorical[trait])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", row.Species, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

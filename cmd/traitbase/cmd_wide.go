package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"traitbase/internal/codec"
	"traitbase/internal/domain"
)

var (
	wideTraits  []string
	wideTop     int
	wideNumAgg  string
	wideSpecies []string
	wideOut     string
)

var numericAggs = map[string]domain.NumericAgg{
	"mean":   domain.Mean,
	"median": domain.Median,
	"min":    domain.Min,
	"max":    domain.Max,
}

var wideCmd = &cobra.Command{
	Use:   "wide",
	Short: "Reshape the database into a wide species-by-trait CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		agg, ok := numericAggs[wideNumAgg]
		if !ok {
			return fmt.Errorf("unknown aggregation %q (want mean, median, min or max)", wideNumAgg)
		}

		var sel domain.TraitSelection
		switch {
		case len(wideTraits) > 0 && wideTop > 0:
			return fmt.Errorf("--traits and --top are mutually exclusive")
		case len(wideTraits) > 0:
			sel = domain.NamedTraits(wideTraits...)
		case wideTop > 0:
			sel = domain.TopTraits(wideTop)
		default:
			return fmt.Errorf("one of --traits or --top is required")
		}

		db, _, err := assemble(cmd.Context())
		if err != nil {
			return err
		}
		if len(wideSpecies) > 0 {
			if db, err = db.Apply(domain.Filter{Species: wideSpecies}); err != nil {
				return err
			}
		}

		wide, err := db.ToWide(sel, domain.WithNumericAgg(agg))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if wideOut != "" {
			f, err := os.Create(wideOut)
			if err != nil {
				return fmt.Errorf("create %s: %w", wideOut, err)
			}
			defer f.Close()
			out = f
		}
		return codec.WriteWideCSV(out, wide)
	},
}

func init() {
	wideCmd.Flags().StringSliceVar(&wideTraits, "traits", nil, "explicit trait names to include")
	wideCmd.Flags().IntVar(&wideTop, "top", 0, "include the k most-recorded traits")
	wideCmd.Flags().StringVar(&wideNumAgg, "agg", "mean", "numeric aggregation: mean, median, min, max")
	wideCmd.Flags().StringSliceVar(&wideSpecies, "species", nil, "restrict to these species")
	wideCmd.Flags().StringVar(&wideOut, "out", "", "write CSV to a file instead of stdout")
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"traitbase/internal/collector"
	"traitbase/internal/domain"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the registered dataset providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry()
		if err != nil {
			return err
		}
		for _, name := range registry.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download (or load from cache) all datasets and report the run",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, report, err := assemble(cmd.Context())
		if err != nil {
			return err
		}
		printReport(cmd, report)
		return printSummary(cmd, db)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the aggregated trait database",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := assemble(cmd.Context())
		if err != nil {
			return err
		}
		return printSummary(cmd, db)
	},
}

// assemble runs the full collection pipeline with the merged options.
func assemble(ctx context.Context) (*domain.Database, *collector.Report, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	registry, err := buildRegistry()
	if err != nil {
		return nil, nil, err
	}
	opts, err := fetchOptions(cfg, registry)
	if err != nil {
		return nil, nil, err
	}
	return collector.Fetch(ctx, opts)
}

func printReport(cmd *cobra.Command, report *collector.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s)\n", report.RunID, report.Finished.Sub(report.Started).Round(1e6))
	for _, p := range report.Providers {
		switch {
		case p.Failed:
			fmt.Fprintf(out, "  %-16s FAILED: %s\n", p.Name, p.Err)
		case p.FromCache:
			fmt.Fprintf(out, "  %-16s cached (%d numeric, %d categorical)\n",
				p.Name, p.NumericRecords, p.CategoricalRecords)
		default:
			fmt.Fprintf(out, "  %-16s fetched (%d numeric, %d categorical)\n",
				p.Name, p.NumericRecords, p.CategoricalRecords)
		}
	}
}

func printSummary(cmd *cobra.Command, db *domain.Database) error {
	s, err := db.Summarize()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Numeric:     %d records, %d species, %d traits\n",
		s.Numeric.Records, s.Numeric.Species, s.Numeric.Traits)
	fmt.Fprintf(out, "Categorical: %d records, %d species, %d traits\n",
		s.Categorical.Records, s.Categorical.Species, s.Categorical.Traits)
	fmt.Fprintf(out, "Combined:    %d records, %d species, %d traits\n",
		s.Records, s.Species, s.Traits)
	return nil
}

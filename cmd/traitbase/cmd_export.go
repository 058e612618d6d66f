package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"traitbase/internal/repository/sqlite"
)

var exportPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the aggregated database to a SQLite file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := exportPath
		if path == "" {
			path = cfg.Database
		}

		db, report, err := assemble(cmd.Context())
		if err != nil {
			return err
		}

		store, err := sqlite.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Export(cmd.Context(), db, report); err != nil {
			return fmt.Errorf("export to %s: %w", path, err)
		}
		log.Printf("Exported database: %s", path)
		return printSummary(cmd, db)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPath, "db", "", "SQLite file path (default: config database path)")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propchat/propchat/config"
	"github.com/propchat/propchat/store"
)

var importCmd = &cobra.Command{
	Use:   "import <table> <file.csv>",
	Short: "Import a CSV file into the projects or project_units table",
	Long: `Imports rows from a CSV file. The header row must match the table's
columns (any order); empty cells become NULL. Rows with an existing
primary key are replaced.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, path := args[0], args[1]

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		st, err := store.OpenSQLite(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := store.ImportCSV(cmd.Context(), st.DB(), table, path)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d rows into %s\n", n, table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

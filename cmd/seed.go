package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propchat/propchat/config"
	"github.com/propchat/propchat/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the database and load sample projects",
	Long: `Creates the SQLite database (schema included) and loads a small
set of sample projects and units so the chatbot has something to
answer questions about. Safe to re-run; existing sample rows are
replaced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		st, err := store.OpenSQLite(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := store.Seed(cmd.Context(), st.DB()); err != nil {
			return err
		}

		counts, err := st.TableCounts(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("seeded %s: %d projects, %d units\n",
			cfg.Database.Path, counts["projects"], counts["project_units"])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daiict/faculty-finder/internal/store"
)

var schemaPath string

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&schemaPath, "schema", "", "SQL file to execute instead of the built-in schema")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Creates the faculty table, or runs the given schema file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if schemaPath == "" {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		}

		st, err := store.NewStore(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.RunMigrations(schemaPath); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations executed successfully")
		return nil
	},
}

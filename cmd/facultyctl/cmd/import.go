package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/daiict/faculty-finder/internal/scraper"
	"github.com/daiict/faculty-finder/internal/store"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import [json-file]",
	Short: "Loads a JSON export into the store, normalizing every record again.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.JSONPath
		if len(args) == 1 {
			path = args[0]
		}

		profiles, err := store.LoadJSON(path)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		imported, skipped := 0, 0
		for _, p := range profiles {
			if err := st.Upsert(ctx, scraper.CleanProfile(scraper.FromStored(p))); err != nil {
				skipped++
				slog.Warn("record skipped", "name", p.Name, "error", err)
				continue
			}
			imported++
		}
		slog.Info("import finished", "file", path, "imported", imported, "skipped", skipped)
		return nil
	},
}

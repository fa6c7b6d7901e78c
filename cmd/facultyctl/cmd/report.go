package cmd

import (
	"github.com/spf13/cobra"

	"github.com/daiict/faculty-finder/internal/report"
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&cfg.CSVPath, "csv", cfg.CSVPath, "CSV export to analyse")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Prints completeness statistics, content samples and duplicates of the CSV export.",
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := report.Load(cfg.CSVPath)
		if err != nil {
			return err
		}
		report.Render(cmd.OutOrStdout(), report.Build(tbl))
		return nil
	},
}

package cmd

import (
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/daiict/faculty-finder/internal/browser"
	"github.com/daiict/faculty-finder/internal/core"
)

var every time.Duration

func init() {
	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.Flags().DurationVar(&every, "every", 0, "repeat the run on this interval (e.g. 24h); 0 runs once")
	scrapeCmd.Flags().StringVar(&cfg.Browser, "browser", cfg.Browser, "page driver: chrome or static")
	scrapeCmd.Flags().BoolVar(&cfg.Headless, "headless", cfg.Headless, "run chrome headless")
	scrapeCmd.Flags().StringSliceVar(&cfg.ListingURLs, "listing", cfg.ListingURLs, "listing page URL (repeatable)")
	scrapeCmd.Flags().BoolVar(&cfg.RespectRobots, "respect-robots", cfg.RespectRobots, "skip pages disallowed by robots.txt")
	scrapeCmd.Flags().DurationVar(&cfg.SettleDelay, "settle", cfg.SettleDelay, "pause after opening each profile page")
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Harvests the listing pages, deep scrapes every profile and exports CSV/JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		factory, err := browser.NewFactory(cfg.Browser, browser.Options{
			Headless:  cfg.Headless,
			UserAgent: cfg.UserAgent,
		})
		if err != nil {
			return err
		}

		ingestion := core.NewIngestionService(cfg, st, factory, slog.Default())
		err = core.NewSchedulerService(ingestion, slog.Default()).Run(ctx, every)
		if errors.Is(err, ctx.Err()) && every > 0 {
			return nil
		}
		return err
	},
}

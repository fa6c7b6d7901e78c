package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/daiict/faculty-finder/internal/ai"
	"github.com/daiict/faculty-finder/internal/api"
	"github.com/daiict/faculty-finder/internal/core"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the faculty search and recommendation API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		aiClient := ai.NewClient(cfg.AIProvider, cfg.GeminiAPIKey, cfg.GeminiModel, slog.Default())
		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           api.NewServer(st, core.NewRecommenderService(st, aiClient)).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("starting server", "port", cfg.Port)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		slog.Info("server stopped")
		return nil
	},
}

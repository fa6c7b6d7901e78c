package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/daiict/faculty-finder/internal/ai"
	"github.com/daiict/faculty-finder/internal/api"
	"github.com/daiict/faculty-finder/internal/config"
	"github.com/daiict/faculty-finder/internal/core"
	"github.com/daiict/faculty-finder/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.EnsureDataDir(); err != nil {
		slog.Error("failed to create data dir", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	dbStore, err := store.NewStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	defer dbStore.Close()

	if err := dbStore.Init(context.Background()); err != nil {
		slog.Error("failed to create schema", "error", err)
		os.Exit(1)
	}

	// Gemini when GEMINI_API_KEY is set, mock otherwise
	aiClient := ai.NewClient(cfg.AIProvider, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	recommender := core.NewRecommenderService(dbStore, aiClient)

	srv := api.NewServer(dbStore, recommender)

	slog.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"RepoScout/internal/app"
	"RepoScout/internal/config"
	"RepoScout/internal/logging"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)

	if err := application.Run(ctx); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

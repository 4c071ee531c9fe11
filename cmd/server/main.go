// Package main implements the entry point for the simverse API server,
// which serves voice-narrated 3D simulation lessons with per-account
// progress tracking.
package main

import (
	"context"
	"log"
	"os"

	"github.com/simverse/simverse-api/internal/config"
	"github.com/simverse/simverse-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage_backend", cfg.Storage.Backend,
		"external_generation", cfg.LLM.GeminiAPIKey != "")

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

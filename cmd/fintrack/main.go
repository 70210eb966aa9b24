package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/chart"
	"fintrack/internal/config"
	"fintrack/internal/ledger"
	"fintrack/internal/menu"
	"fintrack/internal/storage"
	"fintrack/internal/storage/memory"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var store ledger.Store
	switch cfg.DataBackend {
	case "memory":
		store = memory.New()
	default:
		repo, err := storage.NewSQLiteRepository(cfg.DBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.DBPath)
			os.Exit(1)
		}
		defer repo.Close()
		store = repo
	}

	// Added-transaction events are optional; without AMQP the ledger
	// works standalone.
	var events ledger.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		events = client
	}

	svc := ledger.NewService(store, events)
	session := menu.NewSession(svc, chart.NewRenderer(cfg.ExportDir), cfg.ExportDir, os.Stdin, os.Stdout)

	if err := session.Run(context.Background()); err != nil {
		logger.Error("Session ended with error", "error", err)
		os.Exit(1)
	}
}

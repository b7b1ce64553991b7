package main

import (
	"log/slog"
	"os"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func main() {
	cli.LoadEnvFile()

	// Warnings only; the menu owns the terminal.
	logger := log.New(log.ComponentCLI, slog.LevelWarn)

	cfg := config.Load()
	store, err := backend.Open(cfg, logger)
	if err != nil {
		logger.Error("failed to open transaction store", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer store.Close()

	categoryStore, err := storage.NewCategoryStore(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open category store", log.FieldError, err.Error())
		os.Exit(1)
	}

	app := cli.NewApp(
		services.NewFinanceService(store, logger),
		services.NewReportService(store, logger),
		services.NewSimulationService(logger),
		categoryStore,
		os.Stdin,
		os.Stdout,
	)

	ctx, stop := cli.SignalContext()
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.Error("cli error", log.FieldError, err.Error())
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/auth"
	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/export/gsheet"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func main() {
	cli.LoadEnvFile()

	bootLog := log.New(log.ComponentApp, slog.LevelInfo)
	cfg := cli.LoadAndValidateConfig(bootLog)

	logger := log.New(log.ComponentApp, cfg.LogLevel)
	log.SetDefault(logger)

	txStore, err := backend.Open(cfg, logger)
	if err != nil {
		logger.Error("failed to open transaction store", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer txStore.Close()

	userStore, err := storage.NewUserStore(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open user store", log.FieldError, err.Error())
		os.Exit(1)
	}
	investmentStore, err := storage.NewInvestmentStore(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open investment store", log.FieldError, err.Error())
		os.Exit(1)
	}
	categoryStore, err := storage.NewCategoryStore(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open category store", log.FieldError, err.Error())
		os.Exit(1)
	}
	assetStore, err := storage.NewAssetStore(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open asset store", log.FieldError, err.Error())
		os.Exit(1)
	}

	// Quote refreshes go through AMQP when configured, inline otherwise.
	var publisher services.QuotePublisher
	if cfg.QuotePipelineEnabled() {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("failed to connect to AMQP", log.FieldError, err.Error())
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("quote pipeline enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	deps := apphttp.Deps{
		Finance:     services.NewFinanceService(txStore, logger),
		Reports:     services.NewReportService(txStore, logger),
		Simulations: services.NewSimulationService(logger),
		Investments: services.NewInvestmentService(investmentStore, logger),
		Assets:      services.NewAssetService(assetStore, services.NewMockQuoter(), publisher, logger),
		Auth:        services.NewAuthService(userStore, logger),
		Categories:  categoryStore,
		Tokens:      auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL),
		Sessions:    auth.NewSessionStore(cfg.SessionTTL),
	}

	if cfg.SheetsExportEnabled() {
		exporter, err := gsheet.New(context.Background(), cfg, logger)
		if err != nil {
			logger.Error("failed to initialize sheets export", log.FieldError, err.Error())
			os.Exit(1)
		}
		deps.Exporter = exporter
		logger.Info("sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	}

	srv, err := apphttp.NewServer(":"+cfg.Port, deps, logger)
	if err != nil {
		logger.Error("failed to build server", log.FieldError, err.Error())
		os.Exit(1)
	}
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, stop := cli.SignalContext()
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", log.FieldError, err.Error())
		}
	}()

	logger.Info("starting server", "port", cfg.Port, log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("server stopped")
}

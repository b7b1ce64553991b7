package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"fintrack/internal/amqp"
	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
	"fintrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	bootLog := log.New(log.ComponentWorker, slog.LevelInfo)
	cfg := cli.LoadAndValidateConfig(bootLog)

	logger := log.New(log.ComponentWorker, cfg.LogLevel)
	log.SetDefault(logger)

	assetStore, err := storage.NewAssetStore(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open asset store", log.FieldError, err.Error())
		os.Exit(1)
	}

	// The worker refreshes inline; only the API process publishes.
	assets := services.NewAssetService(assetStore, services.NewMockQuoter(), nil, logger)

	var amqpClient *amqp.Client
	if cfg.QuotePipelineEnabled() {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("failed to connect to AMQP", log.FieldError, err.Error())
			os.Exit(1)
		}
		defer amqpClient.Close()
		logger.Info("consuming refresh requests", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("no AMQP configured, running periodic sweep only")
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	w := worker.NewQuoteWorker(assets, amqpClient, cfg.QuoteRefreshInterval, logger)
	logger.Info("starting quote worker", "interval", cfg.QuoteRefreshInterval.String())
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped with error", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

// Package worker runs the quote refresh loop: it consumes on-demand refresh
// requests from AMQP and sweeps every tracked asset on a timer as a backstop
// for lost messages.
package worker

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

type QuoteWorker struct {
	assets   *services.AssetService
	client   *amqp.Client
	interval time.Duration
	logger   *log.Logger
}

// NewQuoteWorker builds the worker. client may be nil; the worker then runs
// the periodic sweep only.
func NewQuoteWorker(assets *services.AssetService, client *amqp.Client, interval time.Duration, logger *log.Logger) *QuoteWorker {
	return &QuoteWorker{
		assets:   assets,
		client:   client,
		interval: interval,
		logger:   logger.WithComponent(log.ComponentWorker),
	}
}

// Run blocks until the context is cancelled. Consumer and sweeper run in
// parallel; either failing stops both.
func (w *QuoteWorker) Run(ctx context.Context) error {
	// Refresh everything once at startup so a restarted worker does not
	// wait a full interval before the first sweep.
	if err := w.assets.RefreshAll(ctx); err != nil {
		w.logger.ErrorContext(ctx, "startup sweep failed", log.FieldError, err.Error())
	}

	g, ctx := errgroup.WithContext(ctx)

	if w.client != nil {
		g.Go(func() error {
			return w.client.ConsumeQuoteRefresh(ctx, func(msg *amqp.QuoteRefreshMessage) error {
				return w.assets.Refresh(ctx, msg.Symbol, msg.Type)
			})
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.assets.RefreshAll(ctx); err != nil {
					w.logger.ErrorContext(ctx, "periodic sweep failed", log.FieldError, err.Error())
				}
			}
		}
	})

	return g.Wait()
}

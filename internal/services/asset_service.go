package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// AssetService tracks quotable instruments and keeps their prices fresh,
// either synchronously or through the AMQP refresh pipeline.
type AssetService struct {
	store     AssetStore
	quoter    Quoter
	publisher QuotePublisher
	logger    *log.Logger
}

// NewAssetService builds the service. publisher may be nil; refreshes then
// run inline instead of going through the queue.
func NewAssetService(store AssetStore, quoter Quoter, publisher QuotePublisher, logger *log.Logger) *AssetService {
	return &AssetService{
		store:     store,
		quoter:    quoter,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentFinance),
	}
}

// Track registers a new asset, priced immediately via the quoter.
func (s *AssetService) Track(ctx context.Context, userID, symbol, name string, typ core.AssetType, currency string) (core.Asset, error) {
	price, err := s.quoter.Quote(ctx, symbol, typ)
	if err != nil {
		return core.Asset{}, fmt.Errorf("quote %s: %w", symbol, err)
	}
	asset, err := core.NewAsset(symbol, name, typ, price, currency, userID)
	if err != nil {
		return core.Asset{}, err
	}
	if err := s.store.Add(ctx, asset); err != nil {
		return core.Asset{}, fmt.Errorf("persist asset: %w", err)
	}
	s.logger.InfoContext(ctx, "asset tracked",
		log.FieldUserID, userID, log.FieldSymbol, asset.Symbol, "price", price.String())
	return asset, nil
}

func (s *AssetService) List(ctx context.Context, userID string) ([]core.Asset, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *AssetService) Untrack(ctx context.Context, id, userID string) error {
	return s.store.Delete(ctx, id, userID)
}

// RequestRefresh asks for a new quote. With a publisher configured the
// request is queued for the worker; otherwise it runs inline.
func (s *AssetService) RequestRefresh(ctx context.Context, symbol string, typ core.AssetType) error {
	if s.publisher != nil {
		if err := s.publisher.PublishQuoteRefresh(ctx, symbol, typ); err != nil {
			return fmt.Errorf("publish refresh for %s: %w", symbol, err)
		}
		return nil
	}
	return s.Refresh(ctx, symbol, typ)
}

// Refresh fetches a quote and stores it on every asset with the symbol.
func (s *AssetService) Refresh(ctx context.Context, symbol string, typ core.AssetType) error {
	price, err := s.quoter.Quote(ctx, symbol, typ)
	if err != nil {
		return fmt.Errorf("quote %s: %w", symbol, err)
	}
	if err := s.store.UpdatePrice(ctx, symbol, price, time.Now().UTC()); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "quote refreshed", log.FieldSymbol, symbol, "price", price.String())
	return nil
}

// RefreshAll sweeps every tracked asset. Used by the worker's periodic tick.
func (s *AssetService) RefreshAll(ctx context.Context) error {
	assets, err := s.store.ListAll(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(assets))
	for _, asset := range assets {
		if _, ok := seen[asset.Symbol]; ok {
			continue
		}
		seen[asset.Symbol] = struct{}{}
		if err := s.Refresh(ctx, asset.Symbol, asset.Type); err != nil {
			s.logger.ErrorContext(ctx, "refresh failed",
				log.FieldSymbol, asset.Symbol, log.FieldError, err.Error())
		}
	}
	return nil
}

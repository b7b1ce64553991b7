// Package services orchestrates domain operations over the storage layer.
package services

import (
	"context"
	"time"

	"fintrack/internal/core"
)

// LocalUserID owns every record created through the unauthenticated
// surfaces (the plain API and the terminal client).
const LocalUserID = "local"

// Ports for outbound adapters. Storage implementations satisfy these; the
// services never see a concrete store type.
type (
	TransactionStore interface {
		Add(ctx context.Context, tx core.Transaction) error
		Get(ctx context.Context, id, userID string) (core.Transaction, error)
		ListByUser(ctx context.Context, userID string) ([]core.Transaction, error)
		Delete(ctx context.Context, id, userID string) error
	}

	InvestmentStore interface {
		Add(ctx context.Context, inv core.Investment) error
		Get(ctx context.Context, id, userID string) (core.Investment, error)
		ListByUser(ctx context.Context, userID string) ([]core.Investment, error)
		Replace(ctx context.Context, inv core.Investment) error
		Delete(ctx context.Context, id, userID string) error
	}

	UserStore interface {
		Create(ctx context.Context, user core.User) error
		GetByEmail(ctx context.Context, email string) (core.User, error)
		GetByUsername(ctx context.Context, username string) (core.User, error)
		GetByID(ctx context.Context, id string) (core.User, error)
	}

	CategoryStore interface {
		List(ctx context.Context) ([]core.Category, error)
		Add(ctx context.Context, category core.Category) error
		Remove(ctx context.Context, name string) error
	}

	AssetStore interface {
		Add(ctx context.Context, asset core.Asset) error
		ListByUser(ctx context.Context, userID string) ([]core.Asset, error)
		ListAll(ctx context.Context) ([]core.Asset, error)
		UpdatePrice(ctx context.Context, symbol string, price core.Money, at time.Time) error
		Delete(ctx context.Context, id, userID string) error
	}

	// Quoter fetches the current price for a symbol.
	Quoter interface {
		Quote(ctx context.Context, symbol string, typ core.AssetType) (core.Money, error)
	}

	// QuotePublisher hands refresh requests to the async pipeline.
	QuotePublisher interface {
		PublishQuoteRefresh(ctx context.Context, symbol string, typ core.AssetType) error
	}
)

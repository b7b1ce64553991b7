package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	AssetStock  AssetType = "stock"
	AssetCrypto AssetType = "crypto"
)

type (
	AssetType string

	// Asset is a quotable instrument (a stock ticker or a crypto pair) whose
	// price is refreshed by the quote worker. Price is a display value in the
	// configured currency, not a market-data-grade figure.
	Asset struct {
		ID        string    `json:"id"`
		Symbol    string    `json:"symbol"`
		Name      string    `json:"name"`
		Type      AssetType `json:"type"`
		Price     Money     `json:"price"`
		Currency  string    `json:"currency"`
		UserID    string    `json:"user_id"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}
)

func (t AssetType) Valid() bool {
	return t == AssetStock || t == AssetCrypto
}

// NewAsset validates and builds an asset. Symbols are upper-cased so lookups
// are case-insensitive.
func NewAsset(symbol, name string, typ AssetType, price Money, currency, userID string) (Asset, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	name = strings.TrimSpace(name)
	if symbol == "" || name == "" {
		return Asset{}, ErrEmptyField
	}
	if !typ.Valid() {
		return Asset{}, ErrInvalidCategory
	}
	if price.IsNegative() {
		return Asset{}, ErrNegativeAmount
	}
	if strings.TrimSpace(userID) == "" {
		return Asset{}, ErrEmptyOwner
	}
	if currency == "" {
		currency = "BRL"
	}
	now := time.Now().UTC()
	return Asset{
		ID:        uuid.New().String(),
		Symbol:    symbol,
		Name:      name,
		Type:      typ,
		Price:     price,
		Currency:  currency,
		UserID:    strings.TrimSpace(userID),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// WithPrice returns a copy carrying the new price and refresh time.
func (a Asset) WithPrice(price Money, at time.Time) Asset {
	a.Price = price
	a.UpdatedAt = at.UTC()
	return a
}

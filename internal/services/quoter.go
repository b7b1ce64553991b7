package services

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// MockQuoter produces deterministic pseudo-quotes without talking to any
// market data provider. The base price is derived from the symbol, with a
// small wobble that changes every minute so refreshes are visible.
type MockQuoter struct {
	now func() time.Time
}

func NewMockQuoter() *MockQuoter {
	return &MockQuoter{now: time.Now}
}

func (q *MockQuoter) Quote(ctx context.Context, symbol string, typ core.AssetType) (core.Money, error) {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	seed := h.Sum64()

	// Stocks land in 5.00..205.00, crypto in 100.00..50100.00.
	var base int64
	switch typ {
	case core.AssetCrypto:
		base = 10000 + int64(seed%5000000)
	default:
		base = 500 + int64(seed%20000)
	}

	// Wobble of up to +-2% of the base, stepping each minute.
	minute := q.now().UTC().Unix() / 60
	wobble := int64((seed^uint64(minute))%400) - 200
	cents := base + base*wobble/10000

	price := decimal.New(cents, -2)
	return core.NewMoneyFromDecimal(price), nil
}

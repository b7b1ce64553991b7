package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type recordingPublisher struct {
	symbols []string
}

func (p *recordingPublisher) PublishQuoteRefresh(ctx context.Context, symbol string, typ core.AssetType) error {
	p.symbols = append(p.symbols, symbol)
	return nil
}

func TestMockQuoterIsDeterministic(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	q := &MockQuoter{now: func() time.Time { return at }}

	a, err := q.Quote(ctx, "PETR4", core.AssetStock)
	require.NoError(t, err)
	b, err := q.Quote(ctx, "PETR4", core.AssetStock)
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "same symbol and minute must quote identically")
	assert.True(t, a.IsPositive())

	other, err := q.Quote(ctx, "VALE3", core.AssetStock)
	require.NoError(t, err)
	assert.False(t, a.Equal(other), "different symbols should differ")
}

func TestAssetServiceTrackAndRefresh(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewAssetStore(t.TempDir())
	require.NoError(t, err)
	svc := NewAssetService(store, NewMockQuoter(), nil, testLogger())

	asset, err := svc.Track(ctx, "u1", "petr4", "Petrobras", core.AssetStock, "")
	require.NoError(t, err)
	assert.Equal(t, "PETR4", asset.Symbol)
	assert.Equal(t, "BRL", asset.Currency)
	assert.True(t, asset.Price.IsPositive())

	// Without a publisher the refresh runs inline.
	require.NoError(t, svc.RequestRefresh(ctx, "PETR4", core.AssetStock))

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Price.IsPositive())
}

func TestAssetServicePublishesWhenPipelineConfigured(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewAssetStore(t.TempDir())
	require.NoError(t, err)
	pub := &recordingPublisher{}
	svc := NewAssetService(store, NewMockQuoter(), pub, testLogger())

	require.NoError(t, svc.RequestRefresh(ctx, "BTC-BRL", core.AssetCrypto))
	assert.Equal(t, []string{"BTC-BRL"}, pub.symbols)
}

func TestAssetServiceRefreshAll(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewAssetStore(t.TempDir())
	require.NoError(t, err)
	svc := NewAssetService(store, NewMockQuoter(), nil, testLogger())

	_, err = svc.Track(ctx, "u1", "PETR4", "Petrobras", core.AssetStock, "BRL")
	require.NoError(t, err)
	_, err = svc.Track(ctx, "u2", "VALE3", "Vale", core.AssetStock, "BRL")
	require.NoError(t, err)

	require.NoError(t, svc.RefreshAll(ctx))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	for _, a := range all {
		assert.False(t, a.UpdatedAt.IsZero())
	}
}

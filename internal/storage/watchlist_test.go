package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/models"
)

func TestWatchlistStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "watchlist.json")
	store := NewWatchlistStore(path, common.NewSilentLogger())

	wl, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, wl.Tickers)

	wl.Add("aapl")
	wl.Add("MSFT")
	require.NoError(t, store.Save(ctx, wl))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, got.Tickers)
}

func TestWatchlistStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	require.NoError(t, os.WriteFile(path, []byte("]["), 0644))

	store := NewWatchlistStore(path, common.NewSilentLogger())
	wl, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, wl.Tickers)
}

func TestPortfolioStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "portfolio.json")
	store := NewPortfolioStore(path, common.NewSilentLogger())

	pf, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, pf.Positions)

	pf.Upsert(models.Position{Ticker: "aapl", Quantity: 10, PurchasePrice: 150})
	require.NoError(t, store.Save(ctx, pf))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got.Positions, 1)
	assert.Equal(t, "AAPL", got.Positions[0].Ticker)
	assert.Equal(t, 10.0, got.Positions[0].Quantity)
}

func TestManagerWiresStores(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(common.NewSilentLogger(), dir)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, dir, m.DataPath())
	assert.NotNil(t, m.ConversationStore())
	assert.NotNil(t, m.WatchlistStore())
	assert.NotNil(t, m.PortfolioStore())
}

package tools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santisabra00/finagent/internal/models"
)

func ptr(v float64) *float64 { return &v }

type fakeMarket struct {
	quotes map[string]*models.Quote
	closes map[string][]models.DailyClose
}

func (m *fakeMarket) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	q, ok := m.quotes[ticker]
	if !ok {
		return nil, errors.New("no data")
	}
	return q, nil
}

func (m *fakeMarket) GetHistory(ctx context.Context, ticker string, lookbackDays int) ([]models.DailyClose, error) {
	closes, ok := m.closes[ticker]
	if !ok {
		return nil, errors.New("no data")
	}
	return closes, nil
}

func appleQuote() *models.Quote {
	vol := int64(52_000_000)
	return &models.Quote{
		Ticker:       "AAPL",
		Currency:     "USD",
		LongName:     "Apple Inc.",
		CurrentPrice: ptr(185.20),
		Open:         ptr(183.00),
		DayHigh:      ptr(186.10),
		DayLow:       ptr(182.40),
		Volume:       &vol,
		MarketCap:    ptr(2.9e12),
		PERatio:      ptr(30.5),
		Sector:       "Technology",
		Industry:     "Consumer Electronics",
	}
}

func history(n int, start float64) []models.DailyClose {
	out := make([]models.DailyClose, n)
	for i := range out {
		out[i] = models.DailyClose{
			Date:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Close: start + float64(i),
		}
	}
	return out
}

func TestGetPrice(t *testing.T) {
	mt := NewMarketTools(&fakeMarket{quotes: map[string]*models.Quote{"AAPL": appleQuote()}}, 120, nil)

	out, err := mt.GetPrice(context.Background(), map[string]any{"ticker": "aapl"})
	require.NoError(t, err)
	assert.Contains(t, out, "Apple Inc. (AAPL)")
	assert.Contains(t, out, "185.20 USD")
	assert.Contains(t, out, "+1.20% today")
	assert.Contains(t, out, "52.00M")
}

func TestGetPriceUnknownTicker(t *testing.T) {
	mt := NewMarketTools(&fakeMarket{}, 120, nil)

	out, err := mt.GetPrice(context.Background(), map[string]any{"ticker": "ZZZZ"})
	require.NoError(t, err)
	assert.Equal(t, "No data available for ZZZZ.", out)
}

func TestGetPriceMissingTicker(t *testing.T) {
	mt := NewMarketTools(&fakeMarket{}, 120, nil)

	_, err := mt.GetPrice(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ticker")
}

func TestGetFundamentals(t *testing.T) {
	mt := NewMarketTools(&fakeMarket{quotes: map[string]*models.Quote{"AAPL": appleQuote()}}, 120, nil)

	out, err := mt.GetFundamentals(context.Background(), map[string]any{"ticker": "AAPL"})
	require.NoError(t, err)
	assert.Contains(t, out, "Sector: Technology")
	assert.Contains(t, out, "2.90T")
	assert.Contains(t, out, "P/E ratio: 30.50")
	assert.Contains(t, out, "Dividend yield: n/a")
}

func TestCompareAssets(t *testing.T) {
	msft := &models.Quote{Ticker: "MSFT", Currency: "USD", ShortName: "Microsoft", CurrentPrice: ptr(402.0), Open: ptr(404.0)}
	mt := NewMarketTools(&fakeMarket{quotes: map[string]*models.Quote{"AAPL": appleQuote(), "MSFT": msft}}, 120, nil)

	out, err := mt.CompareAssets(context.Background(), map[string]any{"ticker1": "AAPL", "ticker2": "MSFT"})
	require.NoError(t, err)
	assert.Contains(t, out, "Apple Inc. (AAPL)")
	assert.Contains(t, out, "Microsoft (MSFT)")
	assert.Contains(t, out, "AAPL is having the better day.")
}

func TestCompareAssetsOneUnknown(t *testing.T) {
	mt := NewMarketTools(&fakeMarket{quotes: map[string]*models.Quote{"AAPL": appleQuote()}}, 120, nil)

	out, err := mt.CompareAssets(context.Background(), map[string]any{"ticker1": "AAPL", "ticker2": "ZZZZ"})
	require.NoError(t, err)
	assert.Contains(t, out, "ZZZZ: no data available")
	assert.NotContains(t, out, "better day")
}

func TestGetTechnicalIndicators(t *testing.T) {
	market := &fakeMarket{closes: map[string][]models.DailyClose{"AAPL": history(60, 100)}}
	mt := NewMarketTools(market, 120, nil)

	out, err := mt.GetTechnicalIndicators(context.Background(), map[string]any{"ticker": "AAPL"})
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL technical indicators (60 daily closes)")
	assert.Contains(t, out, "Current price: 159.00")
	assert.Contains(t, out, "RSI-14: 100.00 (overbought)")
	assert.Contains(t, out, "SMA20: 149.50 (price above)")
	assert.Contains(t, out, "SMA50: 134.50 (price above)")
}

func TestGetTechnicalIndicatorsNoSMA50(t *testing.T) {
	market := &fakeMarket{closes: map[string][]models.DailyClose{"AAPL": history(30, 100)}}
	mt := NewMarketTools(market, 120, nil)

	out, err := mt.GetTechnicalIndicators(context.Background(), map[string]any{"ticker": "AAPL"})
	require.NoError(t, err)
	assert.Contains(t, out, "SMA20")
	assert.NotContains(t, out, "SMA50")
}

func TestGetTechnicalIndicatorsInsufficientHistory(t *testing.T) {
	market := &fakeMarket{closes: map[string][]models.DailyClose{"NEW": history(7, 10)}}
	mt := NewMarketTools(market, 120, nil)

	out, err := mt.GetTechnicalIndicators(context.Background(), map[string]any{"ticker": "NEW"})
	require.NoError(t, err)
	assert.Contains(t, out, "Insufficient history for NEW")
	assert.Contains(t, out, "got 7")
}

func TestCurrentTime(t *testing.T) {
	out, err := CurrentTime(context.Background(), nil)
	require.NoError(t, err)
	parsed, err := time.Parse("Monday, 02 January 2006 15:04 MST", out)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, 26*time.Hour)
}

func TestRequiredNumber(t *testing.T) {
	got, err := requiredNumber(map[string]any{"qty": 2.5}, "qty")
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)

	got, err = requiredNumber(map[string]any{"qty": "3"}, "qty")
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	_, err = requiredNumber(map[string]any{}, "qty")
	assert.Error(t, err)

	_, err = requiredNumber(map[string]any{"qty": true}, "qty")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	long := truncate("aaaaaaaaaa bbbb", 10)
	assert.Contains(t, long, "...")
	assert.LessOrEqual(t, len(long), 14)
}

package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santisabra00/finagent/internal/common"
)

const quoteBody = `{
  "quoteResponse": {
    "result": [{
      "symbol": "AAPL",
      "currency": "USD",
      "shortName": "Apple Inc.",
      "longName": "Apple Inc.",
      "regularMarketPrice": 185.2,
      "regularMarketOpen": 183.0,
      "regularMarketDayHigh": 186.1,
      "regularMarketDayLow": 182.4,
      "regularMarketVolume": 51234567,
      "marketCap": 2890000000000,
      "trailingPE": 29.4,
      "fiftyTwoWeekHigh": 199.6,
      "fiftyTwoWeekLow": 143.9
    }],
    "error": null
  }
}`

const emptyQuoteBody = `{"quoteResponse": {"result": [], "error": null}}`

const chartBody = `{
  "chart": {
    "result": [{
      "timestamp": [1700000000, 1700086400, 1700172800],
      "indicators": {"quote": [{"close": [100.0, null, 102.5]}]}
    }],
    "error": null
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(
		WithBaseURL(srv.URL),
		WithLogger(common.NewSilentLogger()),
		WithRateLimit(100),
	)
}

func TestGetQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v7/finance/quote":
			assert.Equal(t, "AAPL", r.URL.Query().Get("symbols"))
			w.Write([]byte(quoteBody))
		case "/v10/finance/quoteSummary/AAPL":
			w.Write([]byte(`{"quoteSummary":{"result":[{"assetProfile":{"sector":"Technology","industry":"Consumer Electronics","longBusinessSummary":"Apple designs smartphones."}}]}}`))
		default:
			http.NotFound(w, r)
		}
	})

	quote, err := client.GetQuote(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Ticker)
	assert.Equal(t, "Apple Inc.", quote.Name())
	require.NotNil(t, quote.CurrentPrice)
	assert.Equal(t, 185.2, *quote.CurrentPrice)
	assert.Equal(t, "Technology", quote.Sector)
	// Absent field stays nil, not zero.
	assert.Nil(t, quote.DividendYield)
}

func TestGetQuote_UnknownTicker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(emptyQuoteBody))
	})

	_, err := client.GetQuote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestGetQuote_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	})

	_, err := client.GetQuote(context.Background(), "AAPL")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestGetHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.Write([]byte(chartBody))
	})

	closes, err := client.GetHistory(context.Background(), "AAPL", 30)
	require.NoError(t, err)
	// The null close is skipped.
	require.Len(t, closes, 2)
	assert.Equal(t, 100.0, closes[0].Close)
	assert.Equal(t, 102.5, closes[1].Close)
	assert.True(t, closes[0].Date.Before(closes[1].Date))
}

func TestGetHistory_ProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	})

	_, err := client.GetHistory(context.Background(), "NOPE", 30)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestDayVariationPct(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v7/finance/quote" {
			w.Write([]byte(quoteBody))
			return
		}
		http.NotFound(w, r)
	})

	quote, err := client.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	variation := quote.DayVariationPct()
	require.NotNil(t, variation)
	assert.InDelta(t, (185.2-183.0)/183.0*100, *variation, 1e-9)
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santisabra00/finagent/internal/app"
	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/models"
	"github.com/santisabra00/finagent/internal/services/portfolio"
	"github.com/santisabra00/finagent/internal/services/watchlist"
	"github.com/santisabra00/finagent/internal/storage"
)

type fakeChat struct {
	reply string
	err   error
}

func (c *fakeChat) Chat(ctx context.Context, text string) (string, error) {
	return c.reply, c.err
}

func (c *fakeChat) Reset(ctx context.Context) error {
	return nil
}

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

func testServer(t *testing.T, chat *fakeChat, market *fakeMarket) *Server {
	t.Helper()

	logger := common.NewSilentLogger()
	store, err := storage.NewManager(logger, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	if market == nil {
		market = &fakeMarket{}
	}
	if chat == nil {
		chat = &fakeChat{reply: "ok"}
	}

	a := &app.App{
		Config:           common.NewDefaultConfig(),
		Logger:           logger,
		Storage:          store,
		MarketClient:     market,
		ChatService:      chat,
		WatchlistService: watchlist.NewService(store.WatchlistStore(), logger),
		PortfolioService: portfolio.NewService(store.PortfolioStore(), market, logger),
		MCPServer:        mcpserver.NewMCPServer("finagent-test", "0.0.0", mcpserver.WithToolCapabilities(true)),
		StartupTime:      time.Now(),
	}
	return NewServer(a)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := testServer(t, nil, nil)
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestChat(t *testing.T) {
	s := testServer(t, &fakeChat{reply: "AAPL trades at 185.20 USD."}, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/chat", map[string]string{"text": "price of AAPL?"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["reply"], "185.20")
}

func TestChatEmptyText(t *testing.T) {
	s := testServer(t, nil, nil)
	w := doJSON(t, s.Handler(), http.MethodPost, "/api/chat", map[string]string{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatModelFailure(t *testing.T) {
	s := testServer(t, &fakeChat{err: errors.New("quota exceeded")}, nil)
	w := doJSON(t, s.Handler(), http.MethodPost, "/api/chat", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestChatMethodNotAllowed(t *testing.T) {
	s := testServer(t, nil, nil)
	w := doJSON(t, s.Handler(), http.MethodGet, "/api/chat", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestChatReset(t *testing.T) {
	s := testServer(t, nil, nil)
	w := doJSON(t, s.Handler(), http.MethodPost, "/api/chat/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWatchlistCRUD(t *testing.T) {
	s := testServer(t, nil, nil)
	h := s.Handler()

	w := doJSON(t, h, http.MethodGet, "/api/watchlist", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/watchlist", map[string]string{"ticker": "aapl"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate add returns 200 with added=false.
	w = doJSON(t, h, http.MethodPost, "/api/watchlist", map[string]string{"ticker": "AAPL"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Added     bool              `json:"added"`
		Watchlist *models.Watchlist `json:"watchlist"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Added)
	assert.Equal(t, []string{"AAPL"}, resp.Watchlist.Tickers)

	w = doJSON(t, h, http.MethodDelete, "/api/watchlist/AAPL", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodDelete, "/api/watchlist/AAPL", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPortfolioCRUD(t *testing.T) {
	price := 150.0
	market := &fakeMarket{quotes: map[string]*models.Quote{
		"AAPL": {Ticker: "AAPL", Currency: "USD", CurrentPrice: &price},
	}}
	s := testServer(t, nil, market)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/portfolio", map[string]interface{}{
		"ticker": "aapl", "quantity": 10, "purchase_price": 100,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/portfolio", map[string]interface{}{
		"ticker": "AAPL", "quantity": 0, "purchase_price": 100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/portfolio/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sum models.PortfolioSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	require.Len(t, sum.Positions, 1)
	assert.Equal(t, 1000.0, sum.TotalInvested)
	assert.Equal(t, 1500.0, sum.TotalCurrent)

	w = doJSON(t, h, http.MethodDelete, "/api/portfolio/AAPL", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodDelete, "/api/portfolio/AAPL", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarketQuote(t *testing.T) {
	price := 185.2
	market := &fakeMarket{quotes: map[string]*models.Quote{
		"AAPL": {Ticker: "AAPL", Currency: "USD", CurrentPrice: &price},
	}}
	s := testServer(t, nil, market)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/market/quote/aapl", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var q models.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, "AAPL", q.Ticker)

	w = doJSON(t, s.Handler(), http.MethodGet, "/api/market/quote/ZZZZ", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestMarketIndicators(t *testing.T) {
	closes := make([]models.DailyClose, 60)
	for i := range closes {
		closes[i] = models.DailyClose{
			Date:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Close: 100 + float64(i),
		}
	}
	market := &fakeMarket{closes: map[string][]models.DailyClose{"AAPL": closes}}
	s := testServer(t, nil, market)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/market/indicators/AAPL", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report models.IndicatorReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 159.0, report.CurrentPrice)
	assert.Equal(t, "overbought", report.RSISignal)
	require.NotNil(t, report.SMA50)
}

func TestMarketIndicatorsInsufficientHistory(t *testing.T) {
	market := &fakeMarket{closes: map[string][]models.DailyClose{
		"NEW": {{Date: time.Now(), Close: 10}},
	}}
	s := testServer(t, nil, market)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/market/indicators/NEW", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMarketChart(t *testing.T) {
	closes := make([]models.DailyClose, 30)
	for i := range closes {
		closes[i] = models.DailyClose{
			Date:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Close: 100 + float64(i%5),
		}
	}
	market := &fakeMarket{closes: map[string][]models.DailyClose{"AAPL": closes}}
	s := testServer(t, nil, market)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/market/chart/AAPL", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, w.Body.Bytes()[:4])
}

func TestCORSPreflight(t *testing.T) {
	s := testServer(t, nil, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorrelationIDPropagated(t *testing.T) {
	s := testServer(t, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "abc123", w.Header().Get("X-Correlation-ID"))
}

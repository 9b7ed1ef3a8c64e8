// Package yahoo provides a client for the Yahoo Finance API
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/interfaces"
	"github.com/santisabra00/finagent/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// Yahoo rejects requests without a browser-ish user agent.
	userAgent = "Mozilla/5.0 (compatible; finagent/1.0)"
)

// ErrNoData indicates the provider returned nothing usable for the ticker.
var ErrNoData = errors.New("no data for ticker")

// Compile-time interface check
var _ interfaces.MarketDataClient = (*Client)(nil)

// Client implements the MarketDataClient interface against the public
// Yahoo Finance quote and chart endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a provider error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Yahoo request")

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// quoteResponse mirrors the v7 quote endpoint payload. Fields absent for an
// asset class stay nil.
type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                      string   `json:"symbol"`
	Currency                    string   `json:"currency"`
	ShortName                   string   `json:"shortName"`
	LongName                    string   `json:"longName"`
	RegularMarketPrice          *float64 `json:"regularMarketPrice"`
	RegularMarketOpen           *float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh        *float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow         *float64 `json:"regularMarketDayLow"`
	RegularMarketVolume         *int64   `json:"regularMarketVolume"`
	MarketCap                   *float64 `json:"marketCap"`
	TrailingPE                  *float64 `json:"trailingPE"`
	TrailingAnnualDividendYield *float64 `json:"trailingAnnualDividendYield"`
	FiftyTwoWeekHigh            *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow             *float64 `json:"fiftyTwoWeekLow"`
}

// profileResponse mirrors the v10 quoteSummary assetProfile module.
type profileResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector             string `json:"sector"`
				Industry           string `json:"industry"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// GetQuote retrieves the current quote plus fundamentals for a ticker.
// The company profile is best-effort: quote data alone is a valid result.
func (c *Client) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrNoData
	}

	params := url.Values{}
	params.Set("symbols", ticker)

	var qr quoteResponse
	if err := c.get(ctx, "/v7/finance/quote", params, &qr); err != nil {
		return nil, err
	}
	if len(qr.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	r := qr.QuoteResponse.Result[0]
	quote := &models.Quote{
		Ticker:        ticker,
		Currency:      r.Currency,
		ShortName:     r.ShortName,
		LongName:      r.LongName,
		CurrentPrice:  r.RegularMarketPrice,
		Open:          r.RegularMarketOpen,
		DayHigh:       r.RegularMarketDayHigh,
		DayLow:        r.RegularMarketDayLow,
		Volume:        r.RegularMarketVolume,
		MarketCap:     r.MarketCap,
		PERatio:       r.TrailingPE,
		DividendYield: r.TrailingAnnualDividendYield,
		High52Week:    r.FiftyTwoWeekHigh,
		Low52Week:     r.FiftyTwoWeekLow,
	}
	if quote.Currency == "" {
		quote.Currency = "USD"
	}

	// Sector/industry/description live in a separate module endpoint and are
	// missing entirely for ETFs and crypto.
	profileParams := url.Values{}
	profileParams.Set("modules", "assetProfile")
	var pr profileResponse
	if err := c.get(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(ticker), profileParams, &pr); err == nil {
		if len(pr.QuoteSummary.Result) > 0 {
			p := pr.QuoteSummary.Result[0].AssetProfile
			quote.Sector = p.Sector
			quote.Industry = p.Industry
			quote.LongDescription = p.LongBusinessSummary
		}
	} else {
		c.logger.Debug().Err(err).Str("ticker", ticker).Msg("Asset profile unavailable")
	}

	return quote, nil
}

// chartResponse mirrors the v8 chart endpoint payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetHistory retrieves daily closes for the lookback window, oldest first.
// Sessions the provider reports with a null close (halts, partial days) are
// skipped.
func (c *Client) GetHistory(ctx context.Context, ticker string, lookbackDays int) ([]models.DailyClose, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrNoData
	}
	if lookbackDays <= 0 {
		lookbackDays = 120
	}

	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("range", fmt.Sprintf("%dd", lookbackDays))

	var cr chartResponse
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(ticker), params, &cr); err != nil {
		return nil, err
	}
	if cr.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNoData, ticker, cr.Chart.Error.Code)
	}
	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	result := cr.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	series := make([]models.DailyClose, 0, len(closes))
	for i, close := range closes {
		if close == nil || i >= len(result.Timestamp) {
			continue
		}
		series = append(series, models.DailyClose{
			Date:  time.Unix(result.Timestamp[i], 0).UTC(),
			Close: *close,
		})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}
	return series, nil
}

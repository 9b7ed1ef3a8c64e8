package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/interfaces"
	"github.com/santisabra00/finagent/internal/models"
	"github.com/santisabra00/finagent/internal/signals"
)

const summaryMaxRunes = 600

// MarketTools exposes quote, fundamentals, comparison and indicator tools
// over the market-data client.
type MarketTools struct {
	market       interfaces.MarketDataClient
	lookbackDays int
	logger       *common.Logger
}

// NewMarketTools creates the market tool set. lookbackDays bounds the
// history window used for indicators.
func NewMarketTools(market interfaces.MarketDataClient, lookbackDays int, logger *common.Logger) *MarketTools {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &MarketTools{market: market, lookbackDays: lookbackDays, logger: logger}
}

func tickerSchema() *models.Schema {
	return models.ObjectSchema(map[string]*models.Schema{
		"ticker": models.StringProp("Asset symbol, e.g. AAPL, BTC-USD, SPY."),
	}, "ticker")
}

// GetPriceDefinition describes the get_price tool.
func (t *MarketTools) GetPriceDefinition() models.ToolDefinition {
	return models.ToolDefinition{
		Name:        "get_price",
		Description: "Get the current price, day range and volume of a stock, ETF or crypto asset.",
		InputSchema: tickerSchema(),
	}
}

// GetPrice returns a formatted snapshot of the current quote.
func (t *MarketTools) GetPrice(ctx context.Context, input map[string]any) (string, error) {
	ticker, err := requiredString(input, "ticker")
	if err != nil {
		return "", err
	}
	ticker = models.NormalizeTicker(ticker)

	quote, err := t.market.GetQuote(ctx, ticker)
	if err != nil {
		return fmt.Sprintf("No data available for %s.", ticker), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", quote.Name(), quote.Ticker)
	fmt.Fprintf(&b, "Price: %s %s (%s today)\n", fmtPrice(quote.CurrentPrice), quote.Currency, fmtPct(quote.DayVariationPct()))
	fmt.Fprintf(&b, "Open: %s | Day range: %s - %s\n", fmtPrice(quote.Open), fmtPrice(quote.DayLow), fmtPrice(quote.DayHigh))
	fmt.Fprintf(&b, "Volume: %s", fmtVolume(quote.Volume))
	return b.String(), nil
}

// GetFundamentalsDefinition describes the get_fundamentals tool.
func (t *MarketTools) GetFundamentalsDefinition() models.ToolDefinition {
	return models.ToolDefinition{
		Name:        "get_fundamentals",
		Description: "Get fundamental data for an asset: sector, market cap, P/E ratio, dividend yield, 52-week range and a business summary.",
		InputSchema: tickerSchema(),
	}
}

// GetFundamentals returns a formatted fundamentals report.
func (t *MarketTools) GetFundamentals(ctx context.Context, input map[string]any) (string, error) {
	ticker, err := requiredString(input, "ticker")
	if err != nil {
		return "", err
	}
	ticker = models.NormalizeTicker(ticker)

	quote, err := t.market.GetQuote(ctx, ticker)
	if err != nil {
		return fmt.Sprintf("No data available for %s.", ticker), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", quote.Name(), quote.Ticker)
	if quote.Sector != "" {
		fmt.Fprintf(&b, "Sector: %s | Industry: %s\n", quote.Sector, quote.Industry)
	}
	fmt.Fprintf(&b, "Market cap: %s %s\n", fmtLarge(quote.MarketCap), quote.Currency)
	fmt.Fprintf(&b, "P/E ratio: %s | Dividend yield: %s\n", fmtPrice(quote.PERatio), fmtPct(quote.DividendYield))
	fmt.Fprintf(&b, "52-week range: %s - %s", fmtPrice(quote.Low52Week), fmtPrice(quote.High52Week))
	if quote.LongDescription != "" {
		fmt.Fprintf(&b, "\n\n%s", truncate(quote.LongDescription, summaryMaxRunes))
	}
	return b.String(), nil
}

// CompareAssetsDefinition describes the compare_assets tool.
func (t *MarketTools) CompareAssetsDefinition() models.ToolDefinition {
	return models.ToolDefinition{
		Name:        "compare_assets",
		Description: "Compare the current price and intraday performance of two assets.",
		InputSchema: models.ObjectSchema(map[string]*models.Schema{
			"ticker1": models.StringProp("First asset symbol."),
			"ticker2": models.StringProp("Second asset symbol."),
		}, "ticker1", "ticker2"),
	}
}

// CompareAssets reports both quotes and which asset is having the better day.
func (t *MarketTools) CompareAssets(ctx context.Context, input map[string]any) (string, error) {
	t1, err := requiredString(input, "ticker1")
	if err != nil {
		return "", err
	}
	t2, err := requiredString(input, "ticker2")
	if err != nil {
		return "", err
	}
	t1, t2 = models.NormalizeTicker(t1), models.NormalizeTicker(t2)

	q1, err1 := t.market.GetQuote(ctx, t1)
	q2, err2 := t.market.GetQuote(ctx, t2)
	if err1 != nil && err2 != nil {
		return fmt.Sprintf("No data available for %s or %s.", t1, t2), nil
	}

	var b strings.Builder
	line := func(ticker string, q *models.Quote, err error) {
		if err != nil {
			fmt.Fprintf(&b, "%s: no data available\n", ticker)
			return
		}
		fmt.Fprintf(&b, "%s (%s): %s %s (%s today)\n", q.Name(), q.Ticker, fmtPrice(q.CurrentPrice), q.Currency, fmtPct(q.DayVariationPct()))
	}
	line(t1, q1, err1)
	line(t2, q2, err2)

	if err1 == nil && err2 == nil {
		v1, v2 := q1.DayVariationPct(), q2.DayVariationPct()
		switch {
		case v1 == nil || v2 == nil:
		case *v1 > *v2:
			fmt.Fprintf(&b, "%s is having the better day.", t1)
		case *v2 > *v1:
			fmt.Fprintf(&b, "%s is having the better day.", t2)
		default:
			fmt.Fprintf(&b, "Both are flat against each other today.")
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// GetTechnicalIndicatorsDefinition describes the get_technical_indicators tool.
func (t *MarketTools) GetTechnicalIndicatorsDefinition() models.ToolDefinition {
	return models.ToolDefinition{
		Name:        "get_technical_indicators",
		Description: "Compute RSI-14 and simple moving averages (SMA20, SMA50) from recent daily closes.",
		InputSchema: tickerSchema(),
	}
}

// GetTechnicalIndicators fetches history and formats the indicator report.
func (t *MarketTools) GetTechnicalIndicators(ctx context.Context, input map[string]any) (string, error) {
	ticker, err := requiredString(input, "ticker")
	if err != nil {
		return "", err
	}
	ticker = models.NormalizeTicker(ticker)

	history, err := t.market.GetHistory(ctx, ticker, t.lookbackDays)
	if err != nil {
		return fmt.Sprintf("No data available for %s.", ticker), nil
	}
	closes := make([]float64, len(history))
	for i, c := range history {
		closes[i] = c.Close
	}

	report, err := signals.ComputeReport(ticker, closes)
	if err != nil {
		if errors.Is(err, signals.ErrInsufficientHistory) {
			return fmt.Sprintf("Insufficient history for %s: need at least %d daily closes, got %d.", ticker, signals.MinCloses, len(closes)), nil
		}
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s technical indicators (%d daily closes)\n", report.Ticker, report.Closes)
	fmt.Fprintf(&b, "Current price: %.2f\n", report.CurrentPrice)
	fmt.Fprintf(&b, "RSI-14: %.2f (%s)\n", report.RSI14, report.RSISignal)
	fmt.Fprintf(&b, "SMA20: %.2f (price %s)", report.SMA20, report.PriceVsSMA20)
	if report.SMA50 != nil {
		fmt.Fprintf(&b, "\nSMA50: %.2f (price %s)", *report.SMA50, report.PriceVsSMA50)
	}
	return b.String(), nil
}

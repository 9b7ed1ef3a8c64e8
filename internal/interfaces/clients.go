// Package interfaces defines service contracts for Finagent
package interfaces

import (
	"context"

	"github.com/santisabra00/finagent/internal/models"
)

// LLMClient invokes the language model. A ChatRequest carries the fixed
// system prompt, the fixed tool definitions, and the full turn sequence;
// the response is either plain text (FinishStop) or tool calls to execute
// (FinishToolRequested). Invocation failures (network/auth/quota) return an
// error and are fatal for the current turn.
type LLMClient interface {
	Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
}

// MarketDataClient provides access to the market-data provider.
type MarketDataClient interface {
	// GetQuote retrieves current price and fundamentals for a ticker.
	// Unknown tickers and provider failures surface as errors.
	GetQuote(ctx context.Context, ticker string) (*models.Quote, error)

	// GetHistory retrieves up to lookbackDays of daily closes, oldest first.
	GetHistory(ctx context.Context, ticker string, lookbackDays int) ([]models.DailyClose, error)
}

// Package interfaces defines service contracts for Finagent
package interfaces

import (
	"context"

	"github.com/santisabra00/finagent/internal/models"
)

// ChatService runs one user turn through the agent loop and returns the
// model's final plain-text answer.
type ChatService interface {
	Chat(ctx context.Context, userText string) (string, error)
	Reset(ctx context.Context) error
}

// ToolDispatcher exposes the registered tool definitions and dispatches an
// invocation by exact name. Dispatch never fails across the boundary: unknown
// names and handler errors come back as descriptive strings that flow into
// the conversation as tool results.
type ToolDispatcher interface {
	Definitions() []models.ToolDefinition
	Dispatch(ctx context.Context, name string, input map[string]any) string
}

// WatchlistService manages the watchlist.
type WatchlistService interface {
	Get(ctx context.Context) (*models.Watchlist, error)
	Add(ctx context.Context, ticker string) (*models.Watchlist, bool, error)
	Remove(ctx context.Context, ticker string) (*models.Watchlist, bool, error)
}

// PortfolioService manages positions and computes the valued summary.
type PortfolioService interface {
	Get(ctx context.Context) (*models.Portfolio, error)
	Upsert(ctx context.Context, pos models.Position) (*models.Portfolio, error)
	Remove(ctx context.Context, ticker string) (*models.Portfolio, bool, error)
	Summary(ctx context.Context) (*models.PortfolioSummary, error)
}

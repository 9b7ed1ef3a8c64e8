// Package interfaces defines service contracts for Finagent
package interfaces

import (
	"context"

	"github.com/santisabra00/finagent/internal/models"
)

// StorageManager coordinates the JSON document stores. Each store is a
// single document at a fixed path under the data directory, rewritten
// wholesale on mutation behind a single-writer mutex.
type StorageManager interface {
	ConversationStore() ConversationStore
	WatchlistStore() WatchlistStore
	PortfolioStore() PortfolioStore

	// DataPath returns the base data directory path.
	DataPath() string

	Close() error
}

// ConversationStore owns the ordered turn sequence for the conversation.
// Turns are append-only; only an explicit Reset truncates the sequence.
// Persistence covers plain-text turns only; tool-call and tool-result turns
// live in memory for the life of the process.
type ConversationStore interface {
	// Append adds a turn in chronological order. Persisting a text turn may
	// fail; the append is rolled back so memory and disk stay consistent.
	Append(ctx context.Context, turn models.Turn) error

	// History returns a copy of the full turn sequence.
	History(ctx context.Context) ([]models.Turn, error)

	// Reset truncates the conversation. Resetting an empty conversation is
	// not an error.
	Reset(ctx context.Context) error
}

// WatchlistStore persists the flat ticker list.
type WatchlistStore interface {
	Get(ctx context.Context) (*models.Watchlist, error)
	Save(ctx context.Context, w *models.Watchlist) error
}

// PortfolioStore persists the position list.
type PortfolioStore interface {
	Get(ctx context.Context) (*models.Portfolio, error)
	Save(ctx context.Context, p *models.Portfolio) error
}

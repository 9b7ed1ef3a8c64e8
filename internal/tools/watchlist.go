package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/santisabra00/finagent/internal/interfaces"
	"github.com/santisabra00/finagent/internal/models"
)

// WatchlistTools exposes the watchlist over the tool surface. Additions and
// removals persist immediately; the formatted reply tells the model whether
// anything actually changed.
type WatchlistTools struct {
	svc interfaces.WatchlistService
}

// NewWatchlistTools creates the watchlist tool set.
func NewWatchlistTools(svc interfaces.WatchlistService) *WatchlistTools {
	return &WatchlistTools{svc: svc}
}

// GetWatchlistDefinition describes the get_watchlist tool.
func (t *WatchlistTools) GetWatchlistDefinition() models.ToolDefinition {
	return models.ToolDefinition{
		Name:        "get_watchlist",
		Description: "List the tickers on the user's watchlist.",
		InputSchema: models.ObjectSchema(nil),
	}
}

// GetWatchlist lists the current tickers.
func (t *WatchlistTools) GetWatchlist(ctx context.Context, input map[string]any) (string, error) {
	w, err := t.svc.Get(ctx)
	if err != nil {
		return "", err
	}
	if len(w.Tickers) == 0 {
		return "The watchlist is empty.", nil
	}
	return fmt.Sprintf("Watchlist (%d): %s", len(w.Tickers), strings.Join(w.Tickers, ", ")), nil
}

// AddToWatchlistDefinition describes the add_to_watchlist tool.
func (t *WatchlistTools) AddToWatchlistDefinition() models.ToolDefinition {
	return models.ToolDefinition{
		Name:        "add_to_watchlist",
		Description: "Add a ticker to the user's watchlist.",
		InputSchema: tickerSchema(),
	}
}

// AddToWatchlist adds the ticker, reporting duplicates without failing.
func (t *WatchlistTools) AddToWatchlist(ctx context.Context, input map[string]any) (string, error) {
	ticker, err := requiredString(input, "ticker")
	if err != nil {
		return "", err
	}
	ticker = models.NormalizeTicker(ticker)

	w, added, err := t.svc.Add(ctx, ticker)
	if err != nil {
		return "", err
	}
	if !added {
		return fmt.Sprintf("%s is already on the watchlist.", ticker), nil
	}
	return fmt.Sprintf("Added %s to the watchlist (%d tickers).", ticker, len(w.Tickers)), nil
}

// RemoveFromWatchlistDefinition describes the remove_from_watchlist tool.
func (t *WatchlistTools) RemoveFromWatchlistDefinition() models.ToolDefinition {
	return models.ToolDefinition{
		Name:        "remove_from_watchlist",
		Description: "Remove a ticker from the user's watchlist.",
		InputSchema: tickerSchema(),
	}
}

// RemoveFromWatchlist removes the ticker, reporting absence without failing.
func (t *WatchlistTools) RemoveFromWatchlist(ctx context.Context, input map[string]any) (string, error) {
	ticker, err := requiredString(input, "ticker")
	if err != nil {
		return "", err
	}
	ticker = models.NormalizeTicker(ticker)

	w, removed, err := t.svc.Remove(ctx, ticker)
	if err != nil {
		return "", err
	}
	if !removed {
		return fmt.Sprintf("%s is not on the watchlist.", ticker), nil
	}
	return fmt.Sprintf("Removed %s from the watchlist (%d tickers left).", ticker, len(w.Tickers)), nil
}

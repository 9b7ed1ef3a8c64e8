// Package watchlist implements watchlist management on top of the JSON store.
package watchlist

import (
	"context"
	"fmt"

	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/interfaces"
	"github.com/santisabra00/finagent/internal/models"
)

// Service manages the flat ticker list. Tickers are normalized to uppercase
// on the way in; duplicates and absent removals report false rather than
// erroring.
type Service struct {
	store  interfaces.WatchlistStore
	logger *common.Logger
}

var _ interfaces.WatchlistService = (*Service)(nil)

// NewService creates a watchlist service backed by the given store.
func NewService(store interfaces.WatchlistStore, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{store: store, logger: logger}
}

// Get returns the current watchlist.
func (s *Service) Get(ctx context.Context) (*models.Watchlist, error) {
	return s.store.Get(ctx)
}

// Add inserts the ticker. The bool reports whether the list changed: false
// means the ticker was already present.
func (s *Service) Add(ctx context.Context, ticker string) (*models.Watchlist, bool, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, false, fmt.Errorf("ticker is required")
	}

	w, err := s.store.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	if !w.Add(ticker) {
		return w, false, nil
	}
	if err := s.store.Save(ctx, w); err != nil {
		return nil, false, fmt.Errorf("failed to save watchlist: %w", err)
	}

	s.logger.Debug().Str("ticker", ticker).Int("size", len(w.Tickers)).Msg("Watchlist ticker added")
	return w, true, nil
}

// Remove deletes the ticker. The bool reports whether the list changed:
// false means the ticker was not present.
func (s *Service) Remove(ctx context.Context, ticker string) (*models.Watchlist, bool, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, false, fmt.Errorf("ticker is required")
	}

	w, err := s.store.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	if !w.Remove(ticker) {
		return w, false, nil
	}
	if err := s.store.Save(ctx, w); err != nil {
		return nil, false, fmt.Errorf("failed to save watchlist: %w", err)
	}

	s.logger.Debug().Str("ticker", ticker).Int("size", len(w.Tickers)).Msg("Watchlist ticker removed")
	return w, true, nil
}

package storage

import (
	"context"
	"os"
	"sync"

	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/interfaces"
	"github.com/santisabra00/finagent/internal/models"
)

// Compile-time interface checks
var (
	_ interfaces.WatchlistStore = (*WatchlistStore)(nil)
	_ interfaces.PortfolioStore = (*PortfolioStore)(nil)
)

// WatchlistStore persists the ticker list as a JSON array at a fixed path.
type WatchlistStore struct {
	mu     sync.Mutex
	path   string
	logger *common.Logger
}

// NewWatchlistStore creates a watchlist store backed by the given path.
func NewWatchlistStore(path string, logger *common.Logger) *WatchlistStore {
	return &WatchlistStore{path: path, logger: logger}
}

// Get reads the watchlist. Missing or corrupt files yield an empty list.
func (s *WatchlistStore) Get(ctx context.Context) (*models.Watchlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tickers []string
	if err := readDoc(s.path, &tickers); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("Watchlist unreadable, starting empty")
		}
		return &models.Watchlist{}, nil
	}
	return &models.Watchlist{Tickers: tickers}, nil
}

// Save rewrites the watchlist document wholesale.
func (s *WatchlistStore) Save(ctx context.Context, w *models.Watchlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickers := w.Tickers
	if tickers == nil {
		tickers = []string{}
	}
	return writeDoc(s.path, tickers)
}

// PortfolioStore persists the position list as a JSON array at a fixed path.
type PortfolioStore struct {
	mu     sync.Mutex
	path   string
	logger *common.Logger
}

// NewPortfolioStore creates a portfolio store backed by the given path.
func NewPortfolioStore(path string, logger *common.Logger) *PortfolioStore {
	return &PortfolioStore{path: path, logger: logger}
}

// Get reads the portfolio. Missing or corrupt files yield an empty portfolio.
func (s *PortfolioStore) Get(ctx context.Context) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var positions []models.Position
	if err := readDoc(s.path, &positions); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("Portfolio unreadable, starting empty")
		}
		return &models.Portfolio{}, nil
	}
	return &models.Portfolio{Positions: positions}, nil
}

// Save rewrites the portfolio document wholesale.
func (s *PortfolioStore) Save(ctx context.Context, p *models.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := p.Positions
	if positions == nil {
		positions = []models.Position{}
	}
	return writeDoc(s.path, positions)
}

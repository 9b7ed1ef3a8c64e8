package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/interfaces"
)

// Compile-time interface check
var _ interfaces.StorageManager = (*Manager)(nil)

// Manager owns the three JSON document stores.
type Manager struct {
	basePath     string
	conversation *ConversationStore
	watchlist    *WatchlistStore
	portfolio    *PortfolioStore
	logger       *common.Logger
}

// NewManager opens the data directory and loads the conversation log.
func NewManager(logger *common.Logger, path string) (*Manager, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data path %s: %w", path, err)
	}

	m := &Manager{
		basePath:  path,
		watchlist: NewWatchlistStore(filepath.Join(path, "watchlist.json"), logger),
		portfolio: NewPortfolioStore(filepath.Join(path, "portfolio.json"), logger),
		logger:    logger,
	}
	m.conversation = NewConversationStore(filepath.Join(path, "conversations.json"), logger)

	logger.Info().Str("path", path).Msg("Storage opened")
	return m, nil
}

// ConversationStore returns the conversation store.
func (m *Manager) ConversationStore() interfaces.ConversationStore {
	return m.conversation
}

// WatchlistStore returns the watchlist store.
func (m *Manager) WatchlistStore() interfaces.WatchlistStore {
	return m.watchlist
}

// PortfolioStore returns the portfolio store.
func (m *Manager) PortfolioStore() interfaces.PortfolioStore {
	return m.portfolio
}

// DataPath returns the base data path.
func (m *Manager) DataPath() string {
	return m.basePath
}

// Close is a no-op for file-based storage.
func (m *Manager) Close() error {
	return nil
}

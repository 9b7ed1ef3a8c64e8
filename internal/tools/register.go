package tools

import (
	"github.com/santisabra00/finagent/internal/agent"
)

// RegisterAll wires every finance tool into the registry. Called once at
// startup; duplicate names panic via MustRegister.
func RegisterAll(reg *agent.Registry, market *MarketTools, watchlist *WatchlistTools, portfolio *PortfolioTools) {
	reg.MustRegister(market.GetPriceDefinition(), market.GetPrice)
	reg.MustRegister(market.GetFundamentalsDefinition(), market.GetFundamentals)
	reg.MustRegister(market.CompareAssetsDefinition(), market.CompareAssets)
	reg.MustRegister(market.GetTechnicalIndicatorsDefinition(), market.GetTechnicalIndicators)
	reg.MustRegister(CurrentTimeDefinition(), CurrentTime)
	reg.MustRegister(watchlist.GetWatchlistDefinition(), watchlist.GetWatchlist)
	reg.MustRegister(watchlist.AddToWatchlistDefinition(), watchlist.AddToWatchlist)
	reg.MustRegister(watchlist.RemoveFromWatchlistDefinition(), watchlist.RemoveFromWatchlist)
	reg.MustRegister(portfolio.GetPortfolioDefinition(), portfolio.GetPortfolio)
}

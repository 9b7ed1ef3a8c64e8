// Package portfolio implements position management and live valuation.
package portfolio

import (
	"context"
	"fmt"

	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/interfaces"
	"github.com/santisabra00/finagent/internal/models"
)

// Service manages portfolio positions. Valuation pulls live quotes from the
// market-data client; positions whose quote is unavailable stay in the
// summary with nil current values rather than failing the whole call.
type Service struct {
	store  interfaces.PortfolioStore
	market interfaces.MarketDataClient
	logger *common.Logger
}

var _ interfaces.PortfolioService = (*Service)(nil)

// NewService creates a portfolio service backed by the given store and
// market-data client.
func NewService(store interfaces.PortfolioStore, market interfaces.MarketDataClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{store: store, market: market, logger: logger}
}

// Get returns the current portfolio.
func (s *Service) Get(ctx context.Context) (*models.Portfolio, error) {
	return s.store.Get(ctx)
}

// Upsert inserts the position, or overwrites quantity and purchase price
// when the ticker already holds a position.
func (s *Service) Upsert(ctx context.Context, pos models.Position) (*models.Portfolio, error) {
	pos.Ticker = models.NormalizeTicker(pos.Ticker)
	if pos.Ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if pos.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %v", pos.Quantity)
	}
	if pos.PurchasePrice < 0 {
		return nil, fmt.Errorf("purchase price must not be negative, got %v", pos.PurchasePrice)
	}

	p, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	overwritten := p.Upsert(pos)
	if err := s.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	s.logger.Debug().
		Str("ticker", pos.Ticker).
		Float64("quantity", pos.Quantity).
		Bool("overwritten", overwritten).
		Msg("Portfolio position upserted")
	return p, nil
}

// Remove deletes the position by ticker. The bool reports whether anything
// was removed.
func (s *Service) Remove(ctx context.Context, ticker string) (*models.Portfolio, bool, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, false, fmt.Errorf("ticker is required")
	}

	p, err := s.store.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	if !p.Remove(ticker) {
		return p, false, nil
	}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, false, fmt.Errorf("failed to save portfolio: %w", err)
	}

	s.logger.Debug().Str("ticker", ticker).Msg("Portfolio position removed")
	return p, true, nil
}

// Summary values every position at its current price and aggregates totals.
// A quote failure marks that position's live fields nil; totals only count
// positions that priced.
func (s *Service) Summary(ctx context.Context) (*models.PortfolioSummary, error) {
	p, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.PortfolioSummary{Positions: make([]models.PositionValue, 0, len(p.Positions))}
	for _, pos := range p.Positions {
		pv := models.PositionValue{Position: pos}
		summary.TotalInvested += pos.Invested()

		quote, err := s.market.GetQuote(ctx, pos.Ticker)
		if err != nil || quote.CurrentPrice == nil {
			s.logger.Warn().Err(err).Str("ticker", pos.Ticker).Msg("Quote unavailable for position")
			summary.Positions = append(summary.Positions, pv)
			continue
		}

		price := *quote.CurrentPrice
		value := price * pos.Quantity
		pv.CurrentPrice = &price
		pv.CurrentValue = &value
		if invested := pos.Invested(); invested > 0 {
			gain := (value - invested) / invested * 100
			pv.GainPct = &gain
		}
		summary.TotalCurrent += value
		summary.Positions = append(summary.Positions, pv)
	}

	if summary.TotalInvested > 0 {
		summary.GainPct = (summary.TotalCurrent - summary.TotalInvested) / summary.TotalInvested * 100
	}
	return summary, nil
}

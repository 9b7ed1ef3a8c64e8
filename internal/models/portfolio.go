package models

// Position is a single portfolio holding, keyed by uppercase ticker.
type Position struct {
	Ticker        string  `json:"ticker"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
}

// Invested returns the total purchase cost of the position.
func (p *Position) Invested() float64 {
	return p.Quantity * p.PurchasePrice
}

// Portfolio is the flat list of positions.
type Portfolio struct {
	Positions []Position `json:"positions"`
}

// FindByTicker returns the position and its index, or (zero, -1).
func (p *Portfolio) FindByTicker(ticker string) (Position, int) {
	ticker = NormalizeTicker(ticker)
	for i, pos := range p.Positions {
		if pos.Ticker == ticker {
			return pos, i
		}
	}
	return Position{}, -1
}

// Upsert inserts the position or overwrites quantity and purchase price for
// an existing ticker. Returns true when an existing entry was overwritten.
func (p *Portfolio) Upsert(pos Position) bool {
	pos.Ticker = NormalizeTicker(pos.Ticker)
	if _, idx := p.FindByTicker(pos.Ticker); idx >= 0 {
		p.Positions[idx] = pos
		return true
	}
	p.Positions = append(p.Positions, pos)
	return false
}

// Remove deletes the position by ticker. Returns false when not present.
func (p *Portfolio) Remove(ticker string) bool {
	if _, idx := p.FindByTicker(ticker); idx >= 0 {
		p.Positions = append(p.Positions[:idx], p.Positions[idx+1:]...)
		return true
	}
	return false
}

// PositionValue is a position enriched with live market data.
type PositionValue struct {
	Position
	CurrentPrice *float64 `json:"current_price,omitempty"`
	CurrentValue *float64 `json:"current_value,omitempty"`
	GainPct      *float64 `json:"gain_pct,omitempty"`
}

// PortfolioSummary aggregates position values. GainPct is zero-guarded:
// it stays zero when nothing has been invested.
type PortfolioSummary struct {
	Positions     []PositionValue `json:"positions"`
	TotalInvested float64         `json:"total_invested"`
	TotalCurrent  float64         `json:"total_current"`
	GainPct       float64         `json:"gain_pct"`
}

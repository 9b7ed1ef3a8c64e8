package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/santisabra00/finagent/internal/interfaces"
	"github.com/santisabra00/finagent/internal/models"
)

// PortfolioTools exposes the valued portfolio over the tool surface.
type PortfolioTools struct {
	svc interfaces.PortfolioService
}

// NewPortfolioTools creates the portfolio tool set.
func NewPortfolioTools(svc interfaces.PortfolioService) *PortfolioTools {
	return &PortfolioTools{svc: svc}
}

// GetPortfolioDefinition describes the get_portfolio tool.
func (t *PortfolioTools) GetPortfolioDefinition() models.ToolDefinition {
	return models.ToolDefinition{
		Name:        "get_portfolio",
		Description: "Show the user's portfolio positions valued at current market prices, with totals and gain percent.",
		InputSchema: models.ObjectSchema(nil),
	}
}

// GetPortfolio formats the live valuation summary.
func (t *PortfolioTools) GetPortfolio(ctx context.Context, input map[string]any) (string, error) {
	sum, err := t.svc.Summary(ctx)
	if err != nil {
		return "", err
	}
	if len(sum.Positions) == 0 {
		return "The portfolio is empty.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Portfolio (%d positions)\n", len(sum.Positions))
	for _, pv := range sum.Positions {
		if pv.CurrentValue == nil {
			fmt.Fprintf(&b, "- %s: %.4g @ %.2f (no current price)\n", pv.Ticker, pv.Quantity, pv.PurchasePrice)
			continue
		}
		fmt.Fprintf(&b, "- %s: %.4g @ %.2f, now %s, value %s (%s)\n",
			pv.Ticker, pv.Quantity, pv.PurchasePrice, fmtPrice(pv.CurrentPrice), fmtPrice(pv.CurrentValue), fmtPct(pv.GainPct))
	}
	fmt.Fprintf(&b, "Invested: %.2f | Current: %.2f | Gain: %+.2f%%", sum.TotalInvested, sum.TotalCurrent, sum.GainPct)
	return b.String(), nil
}

// CurrentTimeDefinition describes the current_time tool.
func CurrentTimeDefinition() models.ToolDefinition {
	return models.ToolDefinition{
		Name:        "current_time",
		Description: "Get the current date and time.",
		InputSchema: models.ObjectSchema(nil),
	}
}

// CurrentTime reports wall-clock time so the model can anchor relative dates.
func CurrentTime(ctx context.Context, input map[string]any) (string, error) {
	return time.Now().Format("Monday, 02 January 2006 15:04 MST"), nil
}

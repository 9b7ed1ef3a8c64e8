package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/santisabra00/finagent/internal/models"
)

// handlePortfolio handles GET and POST /api/portfolio.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		p, err := s.app.PortfolioService.Get(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Portfolio error: %v", err))
			return
		}
		WriteJSON(w, http.StatusOK, p)

	case http.MethodPost:
		var req struct {
			Ticker        string  `json:"ticker"`
			Quantity      float64 `json:"quantity"`
			PurchasePrice float64 `json:"purchase_price"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Ticker) == "" {
			WriteError(w, http.StatusBadRequest, "Field 'ticker' is required")
			return
		}

		p, err := s.app.PortfolioService.Upsert(r.Context(), models.Position{
			Ticker:        req.Ticker,
			Quantity:      req.Quantity,
			PurchasePrice: req.PurchasePrice,
		})
		if err != nil {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("Portfolio error: %v", err))
			return
		}
		WriteJSON(w, http.StatusOK, p)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handlePortfolioSummary handles GET /api/portfolio/summary.
func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	sum, err := s.app.PortfolioService.Summary(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Summary error: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, sum)
}

// handlePortfolioTicker handles DELETE /api/portfolio/{ticker}.
func (s *Server) handlePortfolioTicker(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	ticker := PathParam(r, "/api/portfolio/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	p, removed, err := s.app.PortfolioService.Remove(r.Context(), ticker)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Portfolio error: %v", err))
		return
	}
	if !removed {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("No position in %s", models.NormalizeTicker(ticker)))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"portfolio": p,
		"removed":   true,
	})
}

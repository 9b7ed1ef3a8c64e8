package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/santisabra00/finagent/internal/clients/yahoo"
	"github.com/santisabra00/finagent/internal/models"
	"github.com/santisabra00/finagent/internal/services/portfolio"
	"github.com/santisabra00/finagent/internal/signals"
)

// lookbackDays reads the optional ?days= query parameter, falling back to
// the configured history window.
func (s *Server) lookbackDays(r *http.Request) int {
	if raw := r.URL.Query().Get("days"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days > 0 {
			return days
		}
	}
	return s.app.Config.Agent.HistoryDays
}

// handleMarketQuote handles GET /api/market/quote/{ticker}.
func (s *Server) handleMarketQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := models.NormalizeTicker(PathParam(r, "/api/market/quote/", ""))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	quote, err := s.app.MarketClient.GetQuote(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, yahoo.ErrNoData) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("No data available for %s", ticker))
			return
		}
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Quote error: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, quote)
}

// handleMarketHistory handles GET /api/market/history/{ticker}?days=N.
func (s *Server) handleMarketHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := models.NormalizeTicker(PathParam(r, "/api/market/history/", ""))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	closes, err := s.app.MarketClient.GetHistory(r.Context(), ticker, s.lookbackDays(r))
	if err != nil {
		if errors.Is(err, yahoo.ErrNoData) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("No data available for %s", ticker))
			return
		}
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("History error: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ticker": ticker,
		"closes": closes,
	})
}

// handleMarketIndicators handles GET /api/market/indicators/{ticker}?days=N.
func (s *Server) handleMarketIndicators(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := models.NormalizeTicker(PathParam(r, "/api/market/indicators/", ""))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	history, err := s.app.MarketClient.GetHistory(r.Context(), ticker, s.lookbackDays(r))
	if err != nil {
		if errors.Is(err, yahoo.ErrNoData) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("No data available for %s", ticker))
			return
		}
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("History error: %v", err))
		return
	}

	closes := make([]float64, len(history))
	for i, c := range history {
		closes[i] = c.Close
	}

	report, err := signals.ComputeReport(ticker, closes)
	if err != nil {
		if errors.Is(err, signals.ErrInsufficientHistory) {
			WriteError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("Insufficient history for %s: need at least %d closes, got %d", ticker, signals.MinCloses, len(closes)))
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Indicator error: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// handleMarketChart handles GET /api/market/chart/{ticker}?days=N, returning
// a PNG line chart of daily closes.
func (s *Server) handleMarketChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := models.NormalizeTicker(PathParam(r, "/api/market/chart/", ""))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	closes, err := s.app.MarketClient.GetHistory(r.Context(), ticker, s.lookbackDays(r))
	if err != nil {
		if errors.Is(err, yahoo.ErrNoData) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("No data available for %s", ticker))
			return
		}
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("History error: %v", err))
		return
	}

	png, err := portfolio.RenderPriceChart(ticker, closes)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Chart error: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

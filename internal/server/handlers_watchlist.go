package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/santisabra00/finagent/internal/models"
)

// handleWatchlist handles GET and POST /api/watchlist.
func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		wl, err := s.app.WatchlistService.Get(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Watchlist error: %v", err))
			return
		}
		WriteJSON(w, http.StatusOK, wl)

	case http.MethodPost:
		var req struct {
			Ticker string `json:"ticker"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Ticker) == "" {
			WriteError(w, http.StatusBadRequest, "Field 'ticker' is required")
			return
		}

		wl, added, err := s.app.WatchlistService.Add(r.Context(), req.Ticker)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Watchlist error: %v", err))
			return
		}
		status := http.StatusCreated
		if !added {
			status = http.StatusOK
		}
		WriteJSON(w, status, map[string]interface{}{
			"watchlist": wl,
			"added":     added,
		})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleWatchlistTicker handles DELETE /api/watchlist/{ticker}.
func (s *Server) handleWatchlistTicker(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	ticker := PathParam(r, "/api/watchlist/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	wl, removed, err := s.app.WatchlistService.Remove(r.Context(), ticker)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Watchlist error: %v", err))
		return
	}
	if !removed {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("%s is not on the watchlist", models.NormalizeTicker(ticker)))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"watchlist": wl,
		"removed":   true,
	})
}

package models

import "strings"

// Watchlist is a flat list of tickers, uppercase, unique.
type Watchlist struct {
	Tickers []string `json:"tickers"`
}

// NormalizeTicker uppercases and trims a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Contains reports whether the normalized ticker is present.
func (w *Watchlist) Contains(ticker string) bool {
	ticker = NormalizeTicker(ticker)
	for _, t := range w.Tickers {
		if t == ticker {
			return true
		}
	}
	return false
}

// Add appends the normalized ticker. Returns false when already present.
func (w *Watchlist) Add(ticker string) bool {
	ticker = NormalizeTicker(ticker)
	if ticker == "" || w.Contains(ticker) {
		return false
	}
	w.Tickers = append(w.Tickers, ticker)
	return true
}

// Remove deletes the normalized ticker. Returns false when not present.
func (w *Watchlist) Remove(ticker string) bool {
	ticker = NormalizeTicker(ticker)
	for i, t := range w.Tickers {
		if t == ticker {
			w.Tickers = append(w.Tickers[:i], w.Tickers[i+1:]...)
			return true
		}
	}
	return false
}

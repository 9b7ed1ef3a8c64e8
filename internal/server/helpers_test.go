package server

import (
	"net/http/httptest"
	"testing"
)

func TestPathParam(t *testing.T) {
	tests := []struct {
		path     string
		prefix   string
		suffix   string
		expected string
	}{
		{"/api/market/quote/AAPL", "/api/market/quote/", "", "AAPL"},
		{"/api/watchlist/BTC-USD", "/api/watchlist/", "", "BTC-USD"},
		{"/api/market/quote/AAPL/extra", "/api/market/quote/", "", "AAPL"},
		{"/api/portfolio/AAPL/history", "/api/portfolio/", "/history", "AAPL"},
		{"/other", "/api/watchlist/", "", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.path, nil)
		if got := PathParam(r, tt.prefix, tt.suffix); got != tt.expected {
			t.Errorf("PathParam(%q, %q, %q) = %q, want %q", tt.path, tt.prefix, tt.suffix, got, tt.expected)
		}
	}
}

func TestRequireMethod(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/chat", nil)
	w := httptest.NewRecorder()
	if !RequireMethod(w, r, "POST") {
		t.Error("RequireMethod should accept matching method")
	}

	w = httptest.NewRecorder()
	if RequireMethod(w, r, "GET", "DELETE") {
		t.Error("RequireMethod should reject non-matching method")
	}
	if w.Code != 405 {
		t.Errorf("expected 405, got %d", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != "GET, DELETE" {
		t.Errorf("unexpected Allow header %q", allow)
	}
}

package models

import "time"

// Quote carries current price and fundamental data for a ticker. Every
// numeric field is a pointer: the provider returns many of them only for
// some asset classes, and "no data" must stay distinct from a real zero.
type Quote struct {
	Ticker          string   `json:"ticker"`
	Currency        string   `json:"currency"`
	ShortName       string   `json:"short_name,omitempty"`
	LongName        string   `json:"long_name,omitempty"`
	CurrentPrice    *float64 `json:"current_price,omitempty"`
	Open            *float64 `json:"open,omitempty"`
	DayHigh         *float64 `json:"day_high,omitempty"`
	DayLow          *float64 `json:"day_low,omitempty"`
	Volume          *int64   `json:"volume,omitempty"`
	MarketCap       *float64 `json:"market_cap,omitempty"`
	PERatio         *float64 `json:"pe_ratio,omitempty"`
	DividendYield   *float64 `json:"dividend_yield,omitempty"`
	High52Week      *float64 `json:"high_52_week,omitempty"`
	Low52Week       *float64 `json:"low_52_week,omitempty"`
	Sector          string   `json:"sector,omitempty"`
	Industry        string   `json:"industry,omitempty"`
	LongDescription string   `json:"long_description,omitempty"`
}

// Name returns the best available display name for the quote.
func (q *Quote) Name() string {
	if q.LongName != "" {
		return q.LongName
	}
	if q.ShortName != "" {
		return q.ShortName
	}
	return q.Ticker
}

// DayVariationPct returns the intraday variation percent (price vs open),
// or nil when either value is missing or open is zero.
func (q *Quote) DayVariationPct() *float64 {
	if q.CurrentPrice == nil || q.Open == nil || *q.Open == 0 {
		return nil
	}
	v := (*q.CurrentPrice - *q.Open) / *q.Open * 100
	return &v
}

// DailyClose is one daily closing price.
type DailyClose struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// IndicatorReport is the computed technical-indicator summary for a ticker.
// SMA50 is nil when fewer than 50 closes are available.
type IndicatorReport struct {
	Ticker       string   `json:"ticker"`
	CurrentPrice float64  `json:"current_price"`
	RSI14        float64  `json:"rsi_14"`
	RSISignal    string   `json:"rsi_signal"`
	SMA20        float64  `json:"sma_20"`
	PriceVsSMA20 string   `json:"price_vs_sma_20"`
	SMA50        *float64 `json:"sma_50,omitempty"`
	PriceVsSMA50 string   `json:"price_vs_sma_50,omitempty"`
	Closes       int      `json:"closes"`
}

// Package signals provides technical indicator calculations
package signals

import (
	"errors"

	"github.com/santisabra00/finagent/internal/models"
)

// MinCloses is the minimum history needed to compute an indicator report.
const MinCloses = 20

// ErrInsufficientHistory is returned when fewer than MinCloses closes are
// available.
var ErrInsufficientHistory = errors.New("insufficient history")

// SMA calculates the Simple Moving Average over the last period closes.
// Closes are ordered oldest first. Returns 0 when there is not enough data.
func SMA(closes []float64, period int) float64 {
	if len(closes) < period || period <= 0 {
		return 0
	}

	sum := 0.0
	for _, c := range closes[len(closes)-period:] {
		sum += c
	}
	return sum / float64(period)
}

// RSI calculates the Relative Strength Index over the last period deltas.
// A window with zero average loss (including a flat series) yields 100.
func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 || period <= 0 {
		return 50 // Neutral default
	}

	var gains, losses float64
	window := closes[len(closes)-period-1:]
	for i := 1; i < len(window); i++ {
		change := window[i] - window[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// ClassifyRSI classifies an RSI value.
func ClassifyRSI(rsi float64) string {
	if rsi >= 70 {
		return "overbought"
	}
	if rsi <= 30 {
		return "oversold"
	}
	return "neutral"
}

// ClassifyVsSMA classifies price relative to a moving average.
func ClassifyVsSMA(price, sma float64) string {
	if price >= sma {
		return "above"
	}
	return "below"
}

// ComputeReport builds the indicator report for a ticker from daily closes
// ordered oldest first. Fails with ErrInsufficientHistory below MinCloses.
func ComputeReport(ticker string, closes []float64) (*models.IndicatorReport, error) {
	if len(closes) < MinCloses {
		return nil, ErrInsufficientHistory
	}

	current := closes[len(closes)-1]
	rsi := RSI(closes, 14)
	sma20 := SMA(closes, 20)

	report := &models.IndicatorReport{
		Ticker:       ticker,
		CurrentPrice: current,
		RSI14:        rsi,
		RSISignal:    ClassifyRSI(rsi),
		SMA20:        sma20,
		PriceVsSMA20: ClassifyVsSMA(current, sma20),
		Closes:       len(closes),
	}

	// SMA50 is reported absent, not zero, below 50 closes.
	if len(closes) >= 50 {
		sma50 := SMA(closes, 50)
		report.SMA50 = &sma50
		report.PriceVsSMA50 = ClassifyVsSMA(current, sma50)
	}

	return report, nil
}

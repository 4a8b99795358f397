package analytics

import "FinSight/internal/domain/models"

// DefaultSMAWindow and DefaultRSIWindow match the corpus conventions
// for short news-derived price lists.
const (
	DefaultSMAWindow = 3
	DefaultRSIWindow = 14
)

// SMA computes the simple moving average over the first window prices,
// rounded to two decimals. Returns false when there are fewer prices
// than the window.
func SMA(prices []float64, window int) (float64, bool) {
	if window <= 0 || len(prices) < window {
		return 0, false
	}
	sum := 0.0
	for _, p := range prices[:window] {
		sum += p
	}
	return round2(sum / float64(window)), true
}

// RSI computes the relative strength index over the given window.
// News snippets rarely carry enough consecutive prices, so false is
// the common outcome.
func RSI(prices []float64, window int) (float64, bool) {
	if window <= 0 || len(prices) < window+1 {
		return 0, false
	}

	var gains, losses float64
	for i := 1; i <= window; i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}

	if losses == 0 {
		return 100, true
	}
	rs := gains / losses
	return round2(100 - 100/(1+rs)), true
}

// ComputeIndicators evaluates SMA and RSI for one price list.
func ComputeIndicators(prices []float64, smaWindow, rsiWindow int) models.IndicatorResult {
	var ind models.IndicatorResult
	if len(prices) == 0 {
		ind.Status = "No price data found in this source."
		return ind
	}

	if sma, ok := SMA(prices, smaWindow); ok {
		ind.SMA = &sma
	}
	if rsi, ok := RSI(prices, rsiWindow); ok {
		ind.RSI = &rsi
	} else {
		ind.Status = "Insufficient data for RSI"
	}
	return ind
}

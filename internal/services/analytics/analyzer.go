package analytics

import (
	"math"

	"FinSight/internal/domain/models"
)

// Classification labels carried through to API responses.
const (
	RiskLow    = "[LOW RISK]"
	RiskMedium = "[MEDIUM RISK]"
	RiskHigh   = "[HIGH RISK]"

	TrendBullish = "[BULLISH TREND]"
	TrendBearish = "[BEARISH TREND]"

	SignalBuy  = "[BUY RECOMMENDED]"
	SignalSell = "[SELL RECOMMENDED]"

	StatusNoNumbers = "No numeric stock data found."
)

// Analyze pools every number across the retrieved documents in scan
// order and derives summary statistics plus risk, trend, and signal
// labels. The trend compares the last pooled number against the first,
// which tracks document order rather than time; callers rely on that
// behavior staying put.
func Analyze(documents []string) models.AnalysisResult {
	var prices []float64
	for _, doc := range documents {
		prices = append(prices, ExtractNumbers(doc)...)
	}

	if len(prices) == 0 {
		return models.AnalysisResult{Status: StatusNoNumbers}
	}

	mean := round2(mean(prices))
	max := round2(maxOf(prices))
	min := round2(minOf(prices))

	volatility := 0.0
	if len(prices) > 1 {
		volatility = round2(sampleStddev(prices))
	}

	risk := RiskLow
	switch {
	case volatility >= 50:
		risk = RiskHigh
	case volatility >= 20:
		risk = RiskMedium
	}

	trend := TrendBearish
	signal := SignalSell
	if prices[len(prices)-1] > prices[0] {
		trend = TrendBullish
		signal = SignalBuy
	}

	return models.AnalysisResult{
		AvgPrice:      &mean,
		MaxPrice:      &max,
		MinPrice:      &min,
		Volatility:    &volatility,
		RiskLevel:     risk,
		Trend:         trend,
		TradingSignal: signal,
	}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func sampleStddev(values []float64) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

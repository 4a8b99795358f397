package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNumbers(t *testing.T) {
	got := ExtractNumbers("NIFTY closed at 22,150.35 after gaining 50 points.")
	require.Len(t, got, 2)
	assert.Equal(t, 22150.35, got[0])
	assert.Equal(t, 50.0, got[1])
}

func TestExtractNumbersNone(t *testing.T) {
	assert.Empty(t, ExtractNumbers("markets were closed for the holiday"))
}

func TestAnalyzePooledStatistics(t *testing.T) {
	docs := []string{"Price 100", "Cost 200", "Value 150"}
	result := Analyze(docs)

	require.NotNil(t, result.AvgPrice)
	assert.Equal(t, 150.0, *result.AvgPrice)
	assert.Equal(t, 200.0, *result.MaxPrice)
	assert.Equal(t, 100.0, *result.MinPrice)
	assert.Equal(t, 50.0, *result.Volatility)
	assert.Equal(t, RiskHigh, result.RiskLevel)
	// Last pooled (150) beats first pooled (100).
	assert.Equal(t, TrendBullish, result.Trend)
	assert.Equal(t, SignalBuy, result.TradingSignal)
	assert.Empty(t, result.Status)
}

func TestAnalyzeNoNumbers(t *testing.T) {
	result := Analyze([]string{"markets were quiet today"})
	assert.Equal(t, StatusNoNumbers, result.Status)
	assert.Nil(t, result.AvgPrice)
	assert.Nil(t, result.MaxPrice)
	assert.Nil(t, result.MinPrice)
	assert.Nil(t, result.Volatility)
}

func TestAnalyzeSingleNumber(t *testing.T) {
	result := Analyze([]string{"Sensex at 74000"})
	require.NotNil(t, result.Volatility)
	assert.Equal(t, 0.0, *result.Volatility)
	assert.Equal(t, RiskLow, result.RiskLevel)
	assert.Equal(t, TrendBearish, result.Trend)
	assert.Equal(t, SignalSell, result.TradingSignal)
}

func TestAnalyzeRiskBands(t *testing.T) {
	// Stddev of {100, 110} is about 7.07.
	low := Analyze([]string{"from 100 to 110"})
	assert.Equal(t, RiskLow, low.RiskLevel)

	// Stddev of {100, 140} is about 28.28.
	medium := Analyze([]string{"from 100 to 140"})
	assert.Equal(t, RiskMedium, medium.RiskLevel)

	// Stddev of {100, 200} is about 70.71.
	high := Analyze([]string{"from 100 to 200"})
	assert.Equal(t, RiskHigh, high.RiskLevel)
}

func TestSMA(t *testing.T) {
	sma, ok := SMA([]float64{100, 200, 150, 999}, 3)
	require.True(t, ok)
	assert.Equal(t, 150.0, sma)

	_, ok = SMA([]float64{100, 200}, 3)
	assert.False(t, ok)
}

func TestRSIInsufficientData(t *testing.T) {
	_, ok := RSI([]float64{100, 105, 102}, DefaultRSIWindow)
	assert.False(t, ok)
}

func TestComputeIndicators(t *testing.T) {
	ind := ComputeIndicators([]float64{100, 200, 150}, DefaultSMAWindow, DefaultRSIWindow)
	require.NotNil(t, ind.SMA)
	assert.Equal(t, 150.0, *ind.SMA)
	assert.Nil(t, ind.RSI)
	assert.Equal(t, "Insufficient data for RSI", ind.Status)

	empty := ComputeIndicators(nil, DefaultSMAWindow, DefaultRSIWindow)
	assert.Equal(t, "No price data found in this source.", empty.Status)
}

package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

const maxPriceTokens = 10

var (
	urlPattern        = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	nonAlphaPattern   = regexp.MustCompile(`[^a-z\s]`)
	priceTokenPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})*(?:\.\d+)?`)
)

// CleanText normalizes raw article text: lowercase, URLs stripped,
// everything except letters and whitespace removed, runs of whitespace
// collapsed to single spaces.
func CleanText(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = nonAlphaPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// ExtractPriceTokens finds grouped-number tokens like 22,150.35 in raw
// article text, capped at the first ten.
func ExtractPriceTokens(text string) []string {
	tokens := priceTokenPattern.FindAllString(text, maxPriceTokens)
	return tokens
}

// CleanPrices converts price tokens to floats, dropping separators and
// anything unparseable.
func CleanPrices(tokens []string) []float64 {
	prices := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64)
		if err != nil {
			continue
		}
		prices = append(prices, v)
	}
	return prices
}

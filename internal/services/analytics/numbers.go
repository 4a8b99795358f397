package analytics

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern pools every decimal number in a document, with optional
// thousands separators. It is deliberately generic; see ExtractNumbers.
var numberPattern = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d+)?`)

// ExtractNumbers returns every number found in text, in scan order,
// with thousands separators stripped. The matcher is generic rather
// than currency-aware, so years and percentages pool together with
// prices. Swap this function for a currency-only matcher to change
// that for all callers at once.
func ExtractNumbers(text string) []float64 {
	tokens := numberPattern.FindAllString(text, -1)
	numbers := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64)
		if err != nil {
			continue
		}
		numbers = append(numbers, v)
	}
	return numbers
}

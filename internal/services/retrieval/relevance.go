package retrieval

import "math"

// DistanceThreshold is the cutoff applied to raw store distances.
// Matches at or above it are considered unrelated to the question.
const DistanceThreshold = 1.8

// RelevancePercent converts a raw distance into a percentage for
// display. Distance 0 maps to 100, distance 2 to 0, values past 2
// clamp at 0. Rounded to one decimal.
func RelevancePercent(distance float64) float64 {
	pct := (1 - distance/2.0) * 100
	pct = math.Round(pct*10) / 10
	if pct < 0 {
		return 0
	}
	return pct
}

package calculator

import (
	"math"

	"SmartWorth/internal/model"
)

// isPrice reports whether p is a usable observation: finite and above zero.
func isPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0)
}

// PositivePrices flattens all sources (in ascending source order) and keeps
// only finite prices above zero. When none remain it returns the sentinel [0].
func PositivePrices(bySource model.PricesBySource) []float64 {
	var out []float64
	for _, src := range bySource.Sources() {
		for _, p := range bySource[src] {
			if isPrice(p) {
				out = append(out, p)
			}
		}
	}
	if len(out) == 0 {
		return []float64{0}
	}
	return out
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PriceRange returns the average, minimum and maximum of prices.
// The sentinel [0] yields all zeros.
func PriceRange(prices []float64) (avg, low, high float64) {
	if len(prices) == 0 {
		return 0, 0, 0
	}
	low, high = prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < low {
			low = p
		}
		if p > high {
			high = p
		}
	}
	return Mean(prices), low, high
}

// SpreadRatio is (max-min)/avg, or 0 when avg is not positive.
func SpreadRatio(avg, low, high float64) float64 {
	if avg <= 0 {
		return 0
	}
	return (high - low) / avg
}

package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"SmartWorth/internal/model"
)

// ConsistencyScore measures agreement between sources on a 0..100 scale,
// rounded to two decimals. Each source contributes the mean of its positive
// prices; sources with none are ignored. With fewer than two contributing
// sources, or a zero overall average, the score is 100.
func ConsistencyScore(bySource model.PricesBySource) float64 {
	var means []float64
	for _, src := range bySource.Sources() {
		var valid []float64
		for _, p := range bySource[src] {
			if isPrice(p) {
				valid = append(valid, p)
			}
		}
		if len(valid) > 0 {
			means = append(means, Mean(valid))
		}
	}
	if len(means) < 2 {
		return 100
	}

	global := Mean(means)
	if global == 0 {
		return 100
	}

	maxDev := 0.0
	for _, m := range means {
		if d := math.Abs(m - global); d > maxDev {
			maxDev = d
		}
	}
	return Round2(math.Max(0, 100-maxDev/global*100))
}

// Round2 rounds half away from zero to two decimal places. NaN and
// infinities are returned unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

package strategy

import (
	"strings"

	"SmartWorth/internal/model"
)

var (
	urgentSupplyCues = []string{
		"limited stock", "selling fast", "few left", "almost gone",
		"high demand", "son ürünler", "tükenmek üzere", "sınırlı stok",
	}
	routineSupplyCues = []string{
		"in stock", "available", "ships today", "stokta var", "hızlı teslimat",
	}
	unavailableSupplyCues = []string{
		"out of stock", "sold out", "discontinued", "tükendi", "stokta yok",
	}
)

// SupplyScore sums +2 per urgent cue, +1 per routine cue and -2 per
// unavailability cue found in the lower-cased description.
func SupplyScore(description string) int {
	text := strings.ToLower(description)
	score := 0
	for _, kw := range urgentSupplyCues {
		if strings.Contains(text, kw) {
			score += 2
		}
	}
	for _, kw := range routineSupplyCues {
		if strings.Contains(text, kw) {
			score++
		}
	}
	for _, kw := range unavailableSupplyCues {
		if strings.Contains(text, kw) {
			score -= 2
		}
	}
	return score
}

// EstimateSupply maps SupplyScore to High (>=2), Low (<=-2) or Medium.
func EstimateSupply(description string) model.SupplyLevel {
	switch s := SupplyScore(description); {
	case s >= 2:
		return model.SupplyHigh
	case s <= -2:
		return model.SupplyLow
	default:
		return model.SupplyMedium
	}
}

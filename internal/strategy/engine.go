package strategy

import (
	"SmartWorth/internal/calculator"
	"SmartWorth/internal/model"
)

// Analyze runs the full pipeline for one product. It is pure and total:
// missing prices collapse to the zero sentinel and every field of the
// result is always set.
func Analyze(name string, bySource model.PricesBySource, description string) *model.AnalysisResult {
	prices := calculator.PositivePrices(bySource)
	avg, low, high := calculator.PriceRange(prices)

	product := model.Product{
		Name:        name,
		Category:    DetectCategory(description),
		Prices:      prices,
		AvgPrice:    avg,
		MinPrice:    low,
		MaxPrice:    high,
		Description: description,
	}

	analyzer := ChooseAnalyzer(product.Category, description)

	return &model.AnalysisResult{
		Product:     product,
		ValueScore:  analyzer.Score(&product),
		Trend:       analyzer.Trend(&product),
		SupplyLevel: EstimateSupply(description),
		Consistency: calculator.ConsistencyScore(bySource),
	}
}

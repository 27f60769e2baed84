package strategy

import (
	"strings"

	"SmartWorth/internal/calculator"
	"SmartWorth/internal/model"
)

// ValueAnalyzer scores a product's value for money and labels its price trend.
type ValueAnalyzer interface {
	Category() model.Category
	Score(p *model.Product) int
	Trend(p *model.Product) string
}

// cue adjusts the score by Points when any keyword appears in the description.
type cue struct {
	Keywords []string
	Points   int
}

// scoring holds the additive rules shared by every analyzer.
type scoring struct {
	Base          int
	SpreadLimit   float64 // spread/avg above this is penalized
	SpreadPenalty int
	Cues          []cue
	DiscountRatio float64 // min below avg*DiscountRatio earns DiscountBonus
	DiscountBonus int
}

func (s scoring) score(p *model.Product) int {
	total := s.Base
	if calculator.SpreadRatio(p.AvgPrice, p.MinPrice, p.MaxPrice) > s.SpreadLimit {
		total -= s.SpreadPenalty
	}
	desc := strings.ToLower(p.Description)
	for _, c := range s.Cues {
		if containsAny(desc, c.Keywords) {
			total += c.Points
		}
	}
	if p.MinPrice < p.AvgPrice*s.DiscountRatio {
		total += s.DiscountBonus
	}
	return clampScore(total)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func ratio(p *model.Product) float64 {
	return calculator.SpreadRatio(p.AvgPrice, p.MinPrice, p.MaxPrice)
}

// ElectronicsAnalyzer favors new models with warranty and penalizes wide spreads.
type ElectronicsAnalyzer struct{ rules scoring }

func NewElectronicsAnalyzer() *ElectronicsAnalyzer {
	return &ElectronicsAnalyzer{rules: scoring{
		Base:          55,
		SpreadLimit:   0.2,
		SpreadPenalty: 15,
		Cues: []cue{
			{[]string{"new", "yeni", "2024", "2025", "latest"}, 10},
			{[]string{"warranty", "garanti"}, 10},
			{[]string{"sealed", "original", "orijinal"}, 5},
			{[]string{"used", "second hand", "ikinci el"}, -15},
			{[]string{"refurbished", "yenilenmiş"}, -10},
			{[]string{"broken", "damaged", "faulty", "defect", "arızalı"}, -25},
		},
		DiscountRatio: 0.9,
		DiscountBonus: 5,
	}}
}

func (a *ElectronicsAnalyzer) Category() model.Category   { return model.CategoryElectronics }
func (a *ElectronicsAnalyzer) Score(p *model.Product) int { return a.rules.score(p) }

// Trend: Stable under 6% spread, May decrease under 15%, otherwise Uncertain.
func (a *ElectronicsAnalyzer) Trend(p *model.Product) string {
	if p.AvgPrice == 0 {
		return model.TrendUnknown
	}
	r := ratio(p)
	switch {
	case r < 0.06:
		return model.TrendStable
	case r < 0.15:
		return model.TrendMayDecrease
	default:
		return model.TrendUncertain
	}
}

// ClothingAnalyzer rewards sales and quality materials.
type ClothingAnalyzer struct{ rules scoring }

func NewClothingAnalyzer() *ClothingAnalyzer {
	return &ClothingAnalyzer{rules: scoring{
		Base:          50,
		SpreadLimit:   0.25,
		SpreadPenalty: 10,
		Cues: []cue{
			{[]string{"sale", "discount", "indirim", "kampanya"}, 10},
			{[]string{"cotton", "pamuk", "leather", "deri", "wool", "yün"}, 10},
			{[]string{"original", "orijinal", "brand"}, 5},
			{[]string{"used", "ikinci el"}, -15},
			{[]string{"stain", "torn", "damaged", "yırtık"}, -20},
		},
		DiscountRatio: 0.85,
		DiscountBonus: 10,
	}}
}

func (a *ClothingAnalyzer) Category() model.Category      { return model.CategoryClothing }
func (a *ClothingAnalyzer) Score(p *model.Product) int    { return a.rules.score(p) }
func (a *ClothingAnalyzer) Trend(_ *model.Product) string { return model.TrendSeasonal }

// BookAnalyzer rewards collectible editions; books hold their price.
type BookAnalyzer struct{ rules scoring }

func NewBookAnalyzer() *BookAnalyzer {
	return &BookAnalyzer{rules: scoring{
		Base:          60,
		SpreadLimit:   0.3,
		SpreadPenalty: 10,
		Cues: []cue{
			{[]string{"signed", "imzalı", "first edition", "ilk baskı"}, 20},
			{[]string{"collector", "koleksiyon", "rare", "nadir"}, 15},
			{[]string{"new", "yeni", "sealed"}, 10},
			{[]string{"good condition", "like new", "temiz"}, 5},
			{[]string{"used", "ikinci el"}, -5},
			{[]string{"torn", "damaged", "missing pages", "yırtık"}, -20},
		},
		DiscountRatio: 0.85,
		DiscountBonus: 10,
	}}
}

func (a *BookAnalyzer) Category() model.Category      { return model.CategoryBook }
func (a *BookAnalyzer) Score(p *model.Product) int    { return a.rules.score(p) }
func (a *BookAnalyzer) Trend(_ *model.Product) string { return model.TrendStable }

// GeneralAnalyzer is the fallback for uncategorized products.
type GeneralAnalyzer struct{ rules scoring }

func NewGeneralAnalyzer() *GeneralAnalyzer {
	return &GeneralAnalyzer{rules: scoring{
		Base:          50,
		SpreadLimit:   0.15,
		SpreadPenalty: 10,
		Cues: []cue{
			{[]string{"new", "yeni"}, 5},
			{[]string{"used", "ikinci el"}, -10},
			{[]string{"broken", "damaged", "arızalı"}, -20},
		},
		DiscountRatio: 0.9,
		DiscountBonus: 5,
	}}
}

func (a *GeneralAnalyzer) Category() model.Category   { return model.CategoryGeneral }
func (a *GeneralAnalyzer) Score(p *model.Product) int { return a.rules.score(p) }

func (a *GeneralAnalyzer) Trend(p *model.Product) string {
	if p.AvgPrice == 0 {
		return model.TrendUnknown
	}
	if ratio(p) < 0.05 {
		return model.TrendStable
	}
	return model.TrendUncertain
}

var analyzers = map[model.Category]ValueAnalyzer{
	model.CategoryElectronics: NewElectronicsAnalyzer(),
	model.CategoryClothing:    NewClothingAnalyzer(),
	model.CategoryBook:        NewBookAnalyzer(),
	model.CategoryGeneral:     NewGeneralAnalyzer(),
}

// ChooseAnalyzer dispatches on the detected category. When the detector
// returned General, the description gets a second, broader keyword pass
// that may still pick Electronics, Book or Clothing; both passes are part
// of the selection contract.
func ChooseAnalyzer(category model.Category, description string) ValueAnalyzer {
	if category == model.CategoryGeneral {
		category = matchRules(analyzerHints, strings.ToLower(description))
	}
	if a, ok := analyzers[category]; ok {
		return a
	}
	return analyzers[model.CategoryGeneral]
}

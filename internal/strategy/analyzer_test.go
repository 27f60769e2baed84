package strategy

import (
	"testing"

	"SmartWorth/internal/model"
)

func product(avg, low, high float64, desc string) *model.Product {
	return &model.Product{AvgPrice: avg, MinPrice: low, MaxPrice: high, Description: desc}
}

func TestElectronicsAnalyzer_NewModel(t *testing.T) {
	a := NewElectronicsAnalyzer()
	p := product(1000, 950, 1050, "new model 2024")
	if got := a.Score(p); got != 65 {
		t.Errorf("expected score 65, got %d", got)
	}
	if got := a.Trend(p); got != model.TrendMayDecrease {
		t.Errorf("expected %q, got %q", model.TrendMayDecrease, got)
	}
}

func TestElectronicsAnalyzer_ClampsToZero(t *testing.T) {
	a := NewElectronicsAnalyzer()
	p := product(100, 50, 150, "used refurbished broken screen")
	if got := a.Score(p); got != 0 {
		t.Errorf("expected clamped score 0, got %d", got)
	}
}

func TestBookAnalyzer_ClampsToHundred(t *testing.T) {
	a := NewBookAnalyzer()
	p := product(100, 50, 110, "signed first edition, collector copy, sealed, like new")
	if got := a.Score(p); got != 100 {
		t.Errorf("expected clamped score 100, got %d", got)
	}
}

func TestElectronicsAnalyzer_Trend(t *testing.T) {
	a := NewElectronicsAnalyzer()
	tests := []struct {
		avg, low, high float64
		want           string
	}{
		{0, 0, 0, model.TrendUnknown},
		{1000, 980, 1030, model.TrendStable},
		{1000, 940, 1060, model.TrendMayDecrease},
		{1000, 900, 1100, model.TrendUncertain},
	}
	for _, tt := range tests {
		if got := a.Trend(product(tt.avg, tt.low, tt.high, "")); got != tt.want {
			t.Errorf("avg=%v min=%v max=%v: expected %q, got %q", tt.avg, tt.low, tt.high, tt.want, got)
		}
	}
}

func TestGeneralAnalyzer_Trend(t *testing.T) {
	a := NewGeneralAnalyzer()
	if got := a.Trend(product(0, 0, 0, "")); got != model.TrendUnknown {
		t.Errorf("expected Unknown, got %q", got)
	}
	if got := a.Trend(product(100, 98, 102, "")); got != model.TrendStable {
		t.Errorf("expected Stable, got %q", got)
	}
	if got := a.Trend(product(100, 90, 110, "")); got != model.TrendUncertain {
		t.Errorf("expected Uncertain, got %q", got)
	}
}

func TestConstantTrends(t *testing.T) {
	for _, p := range []*model.Product{product(0, 0, 0, ""), product(100, 10, 500, "")} {
		if got := NewClothingAnalyzer().Trend(p); got != model.TrendSeasonal {
			t.Errorf("clothing: expected Seasonal, got %q", got)
		}
		if got := NewBookAnalyzer().Trend(p); got != model.TrendStable {
			t.Errorf("book: expected Stable, got %q", got)
		}
	}
}

func TestAnalyzers_SpreadPenaltyAndDiscount(t *testing.T) {
	g := NewGeneralAnalyzer()
	if got := g.Score(product(100, 100, 100, "")); got != 50 {
		t.Errorf("flat prices: expected base 50, got %d", got)
	}
	// spread 0.4 > 0.15 costs 10, min 80 < 90 earns 5
	if got := g.Score(product(100, 80, 120, "")); got != 45 {
		t.Errorf("expected 45, got %d", got)
	}

	c := NewClothingAnalyzer()
	// spread 0.2 stays under 0.25; min 90 is not below 85
	if got := c.Score(product(100, 90, 110, "cotton shirt on sale")); got != 70 {
		t.Errorf("expected 70, got %d", got)
	}
}

func TestAnalyzers_ZeroProduct(t *testing.T) {
	p := product(0, 0, 0, "")
	for _, a := range []ValueAnalyzer{NewElectronicsAnalyzer(), NewClothingAnalyzer(), NewBookAnalyzer(), NewGeneralAnalyzer()} {
		got := a.Score(p)
		if got < 0 || got > 100 {
			t.Errorf("%s: score out of range: %d", a.Category(), got)
		}
	}
}

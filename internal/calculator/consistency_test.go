package calculator

import (
	"math"
	"testing"

	"SmartWorth/internal/model"
)

func TestConsistencyScore(t *testing.T) {
	tests := []struct {
		name string
		in   model.PricesBySource
		want float64
	}{
		{"two sources", model.PricesBySource{"google": {100}, "trendyol": {120}}, 90.91},
		{"identical sources", model.PricesBySource{"google": {50, 150}, "trendyol": {100}}, 100},
		{"single source", model.PricesBySource{"google": {10, 20, 900}}, 100},
		{"one source empty", model.PricesBySource{"google": {100}, "trendyol": {0}}, 100},
		{"all sentinel", model.PricesBySource{"google": {0}, "trendyol": {0}}, 100},
		{"no sources", model.PricesBySource{}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConsistencyScore(tt.in); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestConsistencyScore_Bounds(t *testing.T) {
	got := ConsistencyScore(model.PricesBySource{"a": {1}, "b": {1000}, "c": {1}})
	if got < 0 || got > 100 {
		t.Errorf("score out of range: %v", got)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(90.909090); got != 90.91 {
		t.Errorf("expected 90.91, got %v", got)
	}
	if got := Round2(12.345); got != 12.35 {
		t.Errorf("expected 12.35, got %v", got)
	}
	if got := Round2(math.Inf(1)); !math.IsInf(got, 1) {
		t.Errorf("expected +Inf unchanged, got %v", got)
	}
	if got := Round2(math.NaN()); !math.IsNaN(got) {
		t.Errorf("expected NaN unchanged, got %v", got)
	}
}

func TestConsistencyScore_IgnoresInfinitePrices(t *testing.T) {
	got := ConsistencyScore(model.PricesBySource{
		"google":   {math.Inf(1)},
		"trendyol": {100},
	})
	if got != 100 {
		t.Errorf("expected 100 with one finite source, got %v", got)
	}
}

package calculator

import (
	"strings"
	"testing"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"turkish grouping", "1.234,56 TL", 1234.56},
		{"lira sign", "₺ 999", 999},
		{"lowercase suffix", "45,90tl", 45.90},
		{"plain integer", "250", 250},
		{"millions", "1.250.000 TL", 1250000},
		{"inner whitespace", " 12 345 ", 12345},
		{"dollar", "$10", 10 * DefaultUSDRate},
		{"usd word", "25 USD", 25 * DefaultUSDRate},
		{"empty", "", 0},
		{"garbage", "call for price", 0},
		{"only currency", "TL", 0},
		{"negative", "-15", 0},
		{"not a number", "NaN", 0},
		{"overflow", "1e400 TL", 0},
		{"exponent", "1,5e3", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePrice(tt.in); got != tt.want {
				t.Errorf("NormalizePrice(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizer_CustomRate(t *testing.T) {
	n := NewNormalizer(30)
	if got := n.Normalize("$2"); got != 60 {
		t.Errorf("expected 60, got %v", got)
	}
	if got := n.Normalize("2 TL"); got != 2 {
		t.Errorf("lira price should not be converted, got %v", got)
	}
}

func TestNewNormalizer_NonPositiveRate(t *testing.T) {
	n := NewNormalizer(0)
	if got := n.Normalize("$1"); got != DefaultUSDRate {
		t.Errorf("expected default rate %v, got %v", DefaultUSDRate, got)
	}
}

func TestNormalizePrice_BeyondFloatRange(t *testing.T) {
	if got := NormalizePrice(strings.Repeat("9", 400) + " TL"); got != 0 {
		t.Errorf("expected 0 for an amount beyond float64 range, got %v", got)
	}
	if got := NewNormalizer(1e300).Normalize("$" + strings.Repeat("9", 300)); got != 0 {
		t.Errorf("expected 0 when conversion overflows, got %v", got)
	}
}

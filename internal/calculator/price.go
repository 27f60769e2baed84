package calculator

import (
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// DefaultUSDRate is the fixed TRY-per-USD rate applied to dollar prices.
const DefaultUSDRate = 34.0

var defaultNormalizer = NewNormalizer(DefaultUSDRate)

// Normalizer turns scraped price text into a TRY amount.
type Normalizer struct {
	usdRate decimal.Decimal
}

// NewNormalizer creates a Normalizer with the given TRY-per-USD rate.
// A non-positive rate falls back to DefaultUSDRate.
func NewNormalizer(usdRate float64) *Normalizer {
	if usdRate <= 0 {
		usdRate = DefaultUSDRate
	}
	return &Normalizer{usdRate: decimal.NewFromFloat(usdRate)}
}

// NormalizePrice parses price text with the default USD rate.
func NormalizePrice(text string) float64 {
	return defaultNormalizer.Normalize(text)
}

// Normalize parses text such as "1.234,56 TL", "₺999" or "$12" into a
// non-negative amount. "." is a thousands separator and "," the decimal
// mark. Dollar amounts are converted with the normalizer's rate.
// Anything unparseable, including signs, exponents and amounts beyond
// float64 range, yields 0.
func (n *Normalizer) Normalize(text string) float64 {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "tl", "")
	s = strings.ReplaceAll(s, "₺", "")

	usd := false
	if strings.Contains(s, "$") || strings.Contains(s, "usd") {
		usd = true
		s = strings.ReplaceAll(s, "$", "")
		s = strings.ReplaceAll(s, "usd", "")
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" || strings.IndexFunc(s, notPriceRune) >= 0 {
		return 0
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	if usd {
		d = d.Mul(n.usdRate)
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// notPriceRune reports runes other than digits and separators.
func notPriceRune(r rune) bool {
	return (r < '0' || r > '9') && r != '.' && r != ','
}

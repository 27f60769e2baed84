package strategy

import (
	"strings"

	"SmartWorth/internal/model"
)

// categoryRule pairs a category with the keywords that identify it.
type categoryRule struct {
	Category model.Category
	Keywords []string
}

// detectorRules are checked in order; the first match wins.
var detectorRules = []categoryRule{
	{model.CategoryElectronics, []string{
		"phone", "telefon", "laptop", "computer", "bilgisayar", "tablet", "ipad",
		"macbook", "headphone", "kulaklık", "camera", "kamera", "television",
		"televizyon", "monitor", "playstation", "xbox", "console", "smartwatch",
		"airpods", "samsung", "xiaomi",
	}},
	{model.CategoryBook, []string{
		"novel", "paperback", "hardcover", "isbn", "kitap", "author", "yazar",
	}},
	{model.CategoryClothing, []string{
		"shirt", "dress", "jacket", "jeans", "trousers", "sweater", "hoodie",
		"sneaker", "shoe", "elbise", "gömlek", "ceket", "pantolon", "ayakkabı",
		"kazak",
	}},
}

// analyzerHints is the broader second pass used by ChooseAnalyzer when the
// detector settles on General.
var analyzerHints = []categoryRule{
	{model.CategoryElectronics, []string{"electronic", "elektronik", "device", "cihaz", "gadget", "charger", "usb"}},
	{model.CategoryBook, []string{"book", "kitap", "edition", "baskı"}},
	{model.CategoryClothing, []string{"cloth", "giyim", "wear", "fashion", "moda", "cotton", "pamuk"}},
}

// DetectCategory classifies description text by case-insensitive substring
// match. Priority is Electronics, Book, Clothing; no match yields General.
func DetectCategory(description string) model.Category {
	return matchRules(detectorRules, strings.ToLower(description))
}

func matchRules(rules []categoryRule, text string) model.Category {
	for _, r := range rules {
		if containsAny(text, r.Keywords) {
			return r.Category
		}
	}
	return model.CategoryGeneral
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

package strategy

import (
	"testing"

	"SmartWorth/internal/model"
)

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		desc string
		want model.Category
	}{
		{"Apple iPhone 13 128GB", model.CategoryElectronics},
		{"SAMSUNG Galaxy S24", model.CategoryElectronics},
		{"Suç ve Ceza - Kitap, Dostoyevski", model.CategoryBook},
		{"Paperback novel", model.CategoryBook},
		{"Slim fit cotton shirt", model.CategoryClothing},
		{"Kadın Elbise", model.CategoryClothing},
		{"garden hose 20m", model.CategoryGeneral},
		{"", model.CategoryGeneral},
		// Electronics outranks Book and Clothing.
		{"phone case with novel print on a shirt", model.CategoryElectronics},
		// Book outranks Clothing.
		{"hardcover fashion dress catalogue", model.CategoryBook},
		// Substring match inside another word.
		{"megaphones", model.CategoryElectronics},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := DetectCategory(tt.desc); got != tt.want {
				t.Errorf("DetectCategory(%q) = %s, want %s", tt.desc, got, tt.want)
			}
		})
	}
}

func TestChooseAnalyzer_SecondPassOverride(t *testing.T) {
	desc := "used book, good condition"
	if got := DetectCategory(desc); got != model.CategoryGeneral {
		t.Fatalf("expected detector to return General, got %s", got)
	}
	a := ChooseAnalyzer(model.CategoryGeneral, desc)
	if _, ok := a.(*BookAnalyzer); !ok {
		t.Errorf("expected BookAnalyzer, got %T", a)
	}
}

func TestChooseAnalyzer(t *testing.T) {
	tests := []struct {
		category model.Category
		desc     string
		want     model.Category
	}{
		{model.CategoryElectronics, "", model.CategoryElectronics},
		{model.CategoryClothing, "book", model.CategoryClothing},
		{model.CategoryBook, "", model.CategoryBook},
		{model.CategoryGeneral, "usb charger cable", model.CategoryElectronics},
		{model.CategoryGeneral, "summer wear", model.CategoryClothing},
		{model.CategoryGeneral, "garden hose", model.CategoryGeneral},
		{model.Category("Unknown"), "", model.CategoryGeneral},
	}
	for _, tt := range tests {
		if got := ChooseAnalyzer(tt.category, tt.desc).Category(); got != tt.want {
			t.Errorf("ChooseAnalyzer(%s, %q) = %s, want %s", tt.category, tt.desc, got, tt.want)
		}
	}
}

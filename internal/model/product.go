package model

import "sort"

// Category is the detected product class.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryBook        Category = "Book"
	CategoryClothing    Category = "Clothing"
	CategoryGeneral     Category = "General"
)

// PriceObservation is a single price seen at one source.
type PriceObservation struct {
	Source string
	Price  float64
}

// PricesBySource maps a source identifier ("google", "trendyol") to the
// normalized prices observed there. A source that yielded nothing holds
// the single sentinel value 0.0.
type PricesBySource map[string][]float64

// Sources returns the source identifiers in ascending order.
func (p PricesBySource) Sources() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Observations flattens the map into per-price observations, ordered by source.
func (p PricesBySource) Observations() []PriceObservation {
	var obs []PriceObservation
	for _, src := range p.Sources() {
		for _, price := range p[src] {
			obs = append(obs, PriceObservation{Source: src, Price: price})
		}
	}
	return obs
}

// GroupBySource builds a PricesBySource from observations, preserving order within each source.
func GroupBySource(obs []PriceObservation) PricesBySource {
	out := make(PricesBySource)
	for _, o := range obs {
		out[o.Source] = append(out[o.Source], o.Price)
	}
	return out
}

// Product is the analyzed item. Prices holds only positive values, or the
// single sentinel [0.0] when none exist; AvgPrice/MinPrice/MaxPrice are 0 in that case.
type Product struct {
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Prices      []float64 `json:"prices"`
	AvgPrice    float64   `json:"avg_price"`
	MinPrice    float64   `json:"min_price"`
	MaxPrice    float64   `json:"max_price"`
	Description string    `json:"description"`
}

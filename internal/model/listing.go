package model

// SourceListing is the raw scrape result from one source.
type SourceListing struct {
	Source      string
	RawPrices   []string
	Description string
}

// CollectedInput is everything the analysis pipeline needs for one product.
type CollectedInput struct {
	Query       string
	BySource    PricesBySource
	Description string
}

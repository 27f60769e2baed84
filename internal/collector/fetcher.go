package collector

import (
	"context"

	"SmartWorth/internal/model"
)

// Fetcher scrapes raw price listings for a product query from one source.
type Fetcher interface {
	FetchListings(ctx context.Context, query string) (*model.SourceListing, error)
	Name() string
}

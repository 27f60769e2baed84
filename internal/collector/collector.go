package collector

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"SmartWorth/internal/calculator"
	"SmartWorth/internal/model"
)

// MockFetcher returns controllable fixed listings for development and testing.
type MockFetcher struct {
	Source      string
	RawPrices   []string
	Description string
	Err         error
	Delay       time.Duration
}

func (m *MockFetcher) Name() string {
	if m.Source == "" {
		return "mock"
	}
	return m.Source
}

func (m *MockFetcher) FetchListings(ctx context.Context, _ string) (*model.SourceListing, error) {
	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.Delay):
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &model.SourceListing{
		Source:      m.Name(),
		RawPrices:   append([]string(nil), m.RawPrices...),
		Description: m.Description,
	}, nil
}

// Collector queries every source concurrently and normalizes the results.
type Collector struct {
	Fetchers   []Fetcher
	Normalizer *calculator.Normalizer
	Timeout    time.Duration
}

// NewCollector creates a new Collector. A zero timeout means fetchers are
// bounded only by the caller's context.
func NewCollector(normalizer *calculator.Normalizer, timeout time.Duration, fetchers ...Fetcher) *Collector {
	if normalizer == nil {
		normalizer = calculator.NewNormalizer(calculator.DefaultUSDRate)
	}
	return &Collector{Fetchers: fetchers, Normalizer: normalizer, Timeout: timeout}
}

// Collect fetches all sources and waits for every one to finish or time out.
// It never fails: a source that errors or returns no prices contributes the
// sentinel [0].
func (c *Collector) Collect(ctx context.Context, query string) *model.CollectedInput {
	listings := make([]*model.SourceListing, len(c.Fetchers))

	var wg sync.WaitGroup
	for i, f := range c.Fetchers {
		wg.Add(1)
		go func(i int, f Fetcher) {
			defer wg.Done()
			fctx := ctx
			if c.Timeout > 0 {
				var cancel context.CancelFunc
				fctx, cancel = context.WithTimeout(ctx, c.Timeout)
				defer cancel()
			}
			start := time.Now()
			l, err := f.FetchListings(fctx, query)
			if err == nil && l == nil {
				err = errors.New("no listing returned")
			}
			if err != nil {
				log.Printf("[WARN] %s fetch for %q failed: %v, using empty result", f.Name(), query, err)
				return
			}
			log.Printf("[INFO] %s returned %d prices for %q in %v", f.Name(), len(l.RawPrices), query, time.Since(start).Round(time.Millisecond))
			listings[i] = l
		}(i, f)
	}
	wg.Wait()

	in := &model.CollectedInput{Query: query, BySource: make(model.PricesBySource)}
	var descs []string
	for i, f := range c.Fetchers {
		l := listings[i]
		var prices []float64
		if l != nil {
			for _, raw := range l.RawPrices {
				prices = append(prices, c.Normalizer.Normalize(raw))
			}
			if d := strings.TrimSpace(l.Description); d != "" {
				descs = append(descs, d)
			}
		}
		if len(prices) == 0 {
			prices = []float64{0}
		}
		in.BySource[f.Name()] = prices
	}
	in.Description = strings.Join(descs, " ")
	return in
}

// Package service ties collection, analysis and persistence together.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"SmartWorth/internal/collector"
	"SmartWorth/internal/model"
	"SmartWorth/internal/recorder"
	"SmartWorth/internal/similarity"
	"SmartWorth/internal/strategy"
)

// ErrEmptyName is returned when a product name is blank.
var ErrEmptyName = errors.New("product name is required")

// Service runs analyses and answers product queries.
type Service struct {
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Now       func() time.Time
}

// New creates a Service. A nil recorder falls back to the no-op recorder.
func New(col *collector.Collector, rec recorder.Recorder) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Service{Collector: col, Recorder: rec, Now: time.Now}
}

// Analyze collects listings for name, runs the pipeline and records the
// result. A persistence failure is logged; the result is still returned.
func (s *Service) Analyze(ctx context.Context, name string) (*model.AnalysisResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	in := s.Collector.Collect(ctx, name)
	res := strategy.Analyze(name, in.BySource, in.Description)
	res.ID = uuid.NewString()
	res.AnalyzedAt = s.Now()

	if err := s.Recorder.RecordAnalysis(res, in.BySource); err != nil {
		log.Printf("[ERROR] record analysis for %q: %v", name, err)
	}
	log.Printf("[INFO] analyzed %q: category=%s score=%d trend=%s supply=%s consistency=%.2f",
		name, res.Product.Category, res.ValueScore, res.Trend, res.SupplyLevel, res.Consistency)
	return res, nil
}

// Similar finds stored products whose names overlap with name.
func (s *Service) Similar(name string, limit int) ([]similarity.Match, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	products, err := s.Recorder.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return similarity.FindSimilar(products, name, limit), nil
}

// History returns the stored price observations for name, newest first.
func (s *Service) History(name string, limit int) ([]model.HistoryEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.Recorder.PriceHistory(name, limit)
}

// LatestPrices rebuilds the per-source prices recorded by the most recent
// analysis of name, in the order they were observed.
func (s *Service) LatestPrices(name string) (model.PricesBySource, error) {
	rec, err := s.Product(name)
	if err != nil {
		return nil, err
	}
	entries, err := s.Recorder.PriceHistory(name, 0)
	if err != nil {
		return nil, fmt.Errorf("price history: %w", err)
	}

	var obs []model.PriceObservation
	for i := len(entries) - 1; i >= 0; i-- {
		if e := entries[i]; e.AnalysisID == rec.LastAnalysis {
			obs = append(obs, model.PriceObservation{Source: e.Source, Price: e.Price})
		}
	}
	return model.GroupBySource(obs), nil
}

// Product returns the stored record for name.
func (s *Service) Product(name string) (*model.ProductRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.Recorder.GetProduct(name)
}

// Products lists every stored product.
func (s *Service) Products() ([]model.ProductRecord, error) {
	return s.Recorder.ListProducts()
}

// Delete removes a stored product and its history.
func (s *Service) Delete(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.Recorder.DeleteProduct(name)
}

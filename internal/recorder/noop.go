package recorder

import "SmartWorth/internal/model"

// NoopRecorder is a no-op implementation used when no database is available.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAnalysis(_ *model.AnalysisResult, _ model.PricesBySource) error {
	return nil
}

func (n *NoopRecorder) GetProduct(_ string) (*model.ProductRecord, error)          { return nil, ErrNotFound }
func (n *NoopRecorder) ListProducts() ([]model.ProductRecord, error)               { return nil, nil }
func (n *NoopRecorder) PriceHistory(_ string, _ int) ([]model.HistoryEntry, error) { return nil, nil }
func (n *NoopRecorder) DeleteProduct(_ string) error                               { return ErrNotFound }
func (n *NoopRecorder) Close() error                                               { return nil }

package recorder

import (
	"errors"

	"SmartWorth/internal/model"
)

// ErrNotFound is returned when a product has never been recorded.
var ErrNotFound = errors.New("product not found")

// Recorder persists analysis results and serves them back for lookups.
type Recorder interface {
	RecordAnalysis(result *model.AnalysisResult, bySource model.PricesBySource) error
	GetProduct(name string) (*model.ProductRecord, error)
	ListProducts() ([]model.ProductRecord, error)
	PriceHistory(name string, limit int) ([]model.HistoryEntry, error)
	DeleteProduct(name string) error
	Close() error
}

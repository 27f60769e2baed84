package model

import "time"

// SupplyLevel is the coarse availability estimate.
type SupplyLevel string

const (
	SupplyHigh   SupplyLevel = "High"
	SupplyMedium SupplyLevel = "Medium"
	SupplyLow    SupplyLevel = "Low"
)

// Trend labels produced by the value analyzers.
const (
	TrendStable      = "Stable"
	TrendMayDecrease = "May decrease"
	TrendUncertain   = "Uncertain"
	TrendUnknown     = "Unknown"
	TrendSeasonal    = "Seasonal"
)

// AnalysisResult is the outcome of one analysis run.
// ID and AnalyzedAt are stamped by the service after the pure pipeline returns.
type AnalysisResult struct {
	ID          string      `json:"id,omitempty"`
	Product     Product     `json:"product"`
	ValueScore  int         `json:"value_score"`
	Trend       string      `json:"trend"`
	SupplyLevel SupplyLevel `json:"supply_level"`
	Consistency float64     `json:"consistency"`
	AnalyzedAt  time.Time   `json:"analyzed_at,omitempty"`
}

// ProductRecord is the stored latest state of a product.
type ProductRecord struct {
	Name          string      `json:"name"`
	Category      Category    `json:"category"`
	AvgPrice      float64     `json:"avg_price"`
	MinPrice      float64     `json:"min_price"`
	MaxPrice      float64     `json:"max_price"`
	ValueScore    int         `json:"value_score"`
	Trend         string      `json:"trend"`
	SupplyLevel   SupplyLevel `json:"supply_level"`
	Consistency   float64     `json:"consistency"`
	Description   string      `json:"description"`
	LastAnalysis  string      `json:"last_analysis_id"`
	AnalysisCount int         `json:"analysis_count"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// HistoryEntry is one stored price observation.
type HistoryEntry struct {
	ID          int64     `json:"id"`
	AnalysisID  string    `json:"analysis_id"`
	ProductName string    `json:"product_name"`
	Source      string    `json:"source"`
	Price       float64   `json:"price"`
	RecordedAt  time.Time `json:"recorded_at"`
}

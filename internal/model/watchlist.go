package model

import "time"

// TrackedProduct is a product re-analyzed on schedule.
type TrackedProduct struct {
	Name           string    `json:"name"`
	AddedAt        time.Time `json:"added_at"`
	LastAnalyzedAt time.Time `json:"last_analyzed_at,omitempty"`
	LastScore      int       `json:"last_score"`
	LastTrend      string    `json:"last_trend,omitempty"`
	LastAvgPrice   float64   `json:"last_avg_price"`
}

// WatchlistState is the persisted watchlist.
type WatchlistState struct {
	Products  []TrackedProduct `json:"products"`
	UpdatedAt time.Time        `json:"updated_at"`
}

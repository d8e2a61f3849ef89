package pricing

import "time"

// PriceResult is the always-available answer to a zipcode price lookup.
// IsFallback distinguishes baseline prices from persisted ones; Warning
// carries the advisory "may be stale" note for the calling layer.
type PriceResult struct {
	Success       bool     `json:"success"`
	MSAName       string   `json:"msa_name"`
	DistanceToMSA *float64 `json:"distance_to_msa"`
	Price         float64  `json:"price"`
	PriceChange   float64  `json:"price_change"`
	Source        string   `json:"source"`
	Confidence    float64  `json:"confidence"`
	IsFallback    bool     `json:"is_fallback"`
	Warning       string   `json:"warning,omitempty"`
}

// SourceFailure records one source that errored before the winner was found.
type SourceFailure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// RefreshSummary reports the outcome of one refresh cycle.
type RefreshSummary struct {
	ID              string          `json:"id"`
	Success         bool            `json:"success"`
	UpdatedMSAs     []string        `json:"updated_msas"`
	FailedSources   []SourceFailure `json:"failed_sources"`
	TotalUpdated    int             `json:"total_updated"`
	DataSourcesUsed []string        `json:"data_sources_used"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
}

// PricePoint is one day of the synthetic price history.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

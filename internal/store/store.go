// Package store persists per-MSA price records behind a narrow key-value
// style interface with SQLite and Postgres backends.
package store

import (
	"context"
	"time"
)

// PriceRecord is the persisted price state for one MSA, keyed uniquely by
// MSA name (the synthetic "National Average" key included). On each upsert
// the prior current price moves to previous and the delta is recomputed.
type PriceRecord struct {
	MSAName       string    `json:"msa_name"`
	CurrentPrice  float64   `json:"current_price"`
	PreviousPrice float64   `json:"previous_price"`
	PriceChange   float64   `json:"price_change"`
	Source        string    `json:"source"`
	Confidence    float64   `json:"confidence"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PriceStore is the persistence interface consumed by the price resolution
// service. GetRecord returns (nil, nil) when no record exists for the MSA.
type PriceStore interface {
	GetRecord(ctx context.Context, msaName string) (*PriceRecord, error)
	UpsertRecord(ctx context.Context, msaName string, price float64, source string, confidence float64) error
	ListRecords(ctx context.Context) ([]PriceRecord, error)

	Migrate(ctx context.Context) error
	Close() error
}

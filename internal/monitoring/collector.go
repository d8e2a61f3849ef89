// Package monitoring reports point-in-time health of the price data and
// the geo assignment cache.
package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/fuelcast/gasprice-cli/internal/geo"
	"github.com/fuelcast/gasprice-cli/internal/store"
)

// MetricsSnapshot holds a point-in-time view of system health.
type MetricsSnapshot struct {
	// Price data metrics.
	PriceRecords   int       `json:"price_records"`
	StaleRecords   int       `json:"stale_records"`
	FallbackOnly   bool      `json:"fallback_only"`
	OldestUpdateAt time.Time `json:"oldest_update_at,omitzero"`
	NewestUpdateAt time.Time `json:"newest_update_at,omitzero"`
	SourcesSeen    []string  `json:"sources_seen"`

	// Assignment cache metrics.
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	CacheSize     int   `json:"cache_size"`
	CacheCapacity int   `json:"cache_capacity"`

	// Metadata.
	StaleAfterHours int       `json:"stale_after_hours"`
	CollectedAt     time.Time `json:"collected_at"`
}

// CacheStatser abstracts the assigner methods needed by the collector.
type CacheStatser interface {
	CacheStats() geo.CacheStats
}

// Collector gathers metrics from the price store and the assigner cache.
type Collector struct {
	store    store.PriceStore
	assigner CacheStatser
}

// NewCollector creates a new metrics collector.
func NewCollector(st store.PriceStore, assigner CacheStatser) *Collector {
	return &Collector{store: st, assigner: assigner}
}

// Collect gathers a snapshot. A record is stale when its last update is
// older than staleAfterHours.
func (c *Collector) Collect(ctx context.Context, staleAfterHours int) (*MetricsSnapshot, error) {
	snap := &MetricsSnapshot{
		StaleAfterHours: staleAfterHours,
		CollectedAt:     time.Now().UTC(),
	}

	cutoff := time.Now().UTC().Add(-time.Duration(staleAfterHours) * time.Hour)

	records, err := c.store.ListRecords(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list price records")
	}

	snap.PriceRecords = len(records)
	snap.FallbackOnly = len(records) > 0

	seen := make(map[string]bool)
	for _, r := range records {
		if r.UpdatedAt.Before(cutoff) {
			snap.StaleRecords++
		}
		if snap.OldestUpdateAt.IsZero() || r.UpdatedAt.Before(snap.OldestUpdateAt) {
			snap.OldestUpdateAt = r.UpdatedAt
		}
		if r.UpdatedAt.After(snap.NewestUpdateAt) {
			snap.NewestUpdateAt = r.UpdatedAt
		}
		if !seen[r.Source] {
			seen[r.Source] = true
			snap.SourcesSeen = append(snap.SourcesSeen, r.Source)
		}
		if r.Source != "Fallback" && r.Source != "Calculated" {
			snap.FallbackOnly = false
		}
	}

	if c.assigner != nil {
		stats := c.assigner.CacheStats()
		snap.CacheHits = stats.Hits
		snap.CacheMisses = stats.Misses
		snap.CacheSize = stats.Size
		snap.CacheCapacity = stats.Capacity
	}

	return snap, nil
}

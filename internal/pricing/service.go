// Package pricing resolves current gas prices per zipcode, refreshes the
// persisted per-MSA prices from external sources, and generates synthetic
// price history for charting.
package pricing

import (
	"context"

	"go.uber.org/zap"

	"github.com/fuelcast/gasprice-cli/internal/geo"
	"github.com/fuelcast/gasprice-cli/internal/source"
	"github.com/fuelcast/gasprice-cli/internal/store"
)

// Service resolves prices on top of the geo assigner and the price store.
// Construct one per process with the assigner injected; every lookup is a
// total function mirroring the assigner's guarantee.
type Service struct {
	assigner *geo.Assigner
	store    store.PriceStore
	sources  []source.Source
	static   source.Source
}

// NewService creates a Service. Real sources are tried in the given
// priority order during a refresh; the static fallback source is always
// appended last and only consulted when every real source fails.
func NewService(assigner *geo.Assigner, st store.PriceStore, sources ...source.Source) *Service {
	return &Service{
		assigner: assigner,
		store:    st,
		sources:  sources,
		static:   source.NewStatic(FallbackBatch()),
	}
}

// PriceForZipcode resolves the current price for a raw zipcode. Persisted
// lookups that fail or miss fall back to the static baseline table; the
// result is flagged rather than an error being returned. Never fails.
func (s *Service) PriceForZipcode(ctx context.Context, rawZipcode string) PriceResult {
	assignment := s.assigner.AssignMSA(rawZipcode)

	rec, err := s.store.GetRecord(ctx, assignment.MSA)
	if err != nil {
		zap.L().Warn("pricing: price record lookup failed, using fallback",
			zap.String("msa", assignment.MSA),
			zap.Error(err),
		)
	}
	if err != nil || rec == nil {
		return s.fallbackResult(assignment)
	}

	return PriceResult{
		Success:       true,
		MSAName:       assignment.MSA,
		DistanceToMSA: assignment.Distance,
		Price:         rec.CurrentPrice,
		PriceChange:   rec.PriceChange,
		Source:        rec.Source,
		Confidence:    rec.Confidence,
		IsFallback:    false,
	}
}

func (s *Service) fallbackResult(assignment geo.Assignment) PriceResult {
	return PriceResult{
		Success:       true,
		MSAName:       assignment.MSA,
		DistanceToMSA: assignment.Distance,
		Price:         FallbackPrice(assignment.MSA),
		Source:        "Fallback",
		Confidence:    0.5,
		IsFallback:    true,
		Warning:       "no current price data available; using baseline price",
	}
}

package geo

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// noCoordinatesDistance is the sentinel distance reported when a zipcode
// validates but no coordinates could be resolved. Distinct from any real
// out-of-radius distance so downstream consumers can tell the cases apart.
const noCoordinatesDistance = 999.0

// defaultCacheSize is the reference capacity of the assignment LRU cache.
const defaultCacheSize = 1000

// Assignment is the outcome of mapping a zipcode to an MSA. Exactly one of
// a named MSA or the National Average is set. Distance is nil only when the
// input failed validation; Error is empty on clean assignments.
type Assignment struct {
	Zipcode     string              `json:"zipcode,omitempty"`
	MSA         string              `json:"msa"`
	Distance    *float64            `json:"distance"`
	Coordinates *ZipcodeCoordinates `json:"coordinates"`
	Error       string              `json:"error,omitempty"`
}

// Assigner maps zipcodes to the nearest MSA center within the inclusion
// radius. It is a total function: every input produces an Assignment and no
// failure mode escapes as an error.
type Assigner struct {
	centers  []MSACenter
	resolver *Resolver
	cache    *lruCache
	radius   float64
	batchN   int
}

// AssignerOption configures an Assigner.
type AssignerOption func(*Assigner)

// WithRadiusMiles overrides the MSA inclusion radius.
func WithRadiusMiles(miles float64) AssignerOption {
	return func(a *Assigner) {
		if miles > 0 {
			a.radius = miles
		}
	}
}

// WithCacheSize overrides the assignment LRU cache capacity.
func WithCacheSize(n int) AssignerOption {
	return func(a *Assigner) {
		if n > 0 {
			a.cache = newLRUCache(n)
		}
	}
}

// WithExtraZipcodes merges supplemental zipcode centroids (e.g. from a
// gazetteer import) into the resolver table.
func WithExtraZipcodes(extra []ZipcodeCoordinates) AssignerOption {
	return func(a *Assigner) {
		a.resolver.AddZipcodes(extra)
	}
}

// WithBatchConcurrency sets the max parallel assignments in AssignBatch.
func WithBatchConcurrency(n int) AssignerOption {
	return func(a *Assigner) {
		if n > 0 {
			a.batchN = n
		}
	}
}

// NewAssigner builds an Assigner from the embedded zipcode table and range
// bands. Construct one per process and inject it where needed.
func NewAssigner(opts ...AssignerOption) (*Assigner, error) {
	data, err := loadEmbeddedData()
	if err != nil {
		return nil, err
	}
	a := &Assigner{
		centers:  Centers(),
		resolver: NewResolver(data.Zipcodes, data.Bands),
		cache:    newLRUCache(defaultCacheSize),
		radius:   DefaultRadiusMiles,
		batchN:   8,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// AssignMSA maps a raw zipcode to the nearest MSA within the radius, or to
// the National Average. All failure modes funnel into a National Average
// result with a populated Error field.
func (a *Assigner) AssignMSA(raw string) Assignment {
	zip, err := NormalizeZipcode(raw)
	if err != nil {
		return Assignment{
			MSA:   NationalAverage,
			Error: err.Error(),
		}
	}

	if cached, ok := a.cache.Get(zip); ok {
		return cached
	}

	coords := a.resolver.Resolve(zip)
	if coords == nil {
		d := noCoordinatesDistance
		result := Assignment{
			Zipcode:  zip,
			MSA:      NationalAverage,
			Distance: &d,
			Error:    fmt.Sprintf("no coordinates for zipcode %s", zip),
		}
		a.cache.Add(zip, result)
		return result
	}

	best := a.centers[0]
	bestDist := Haversine(coords.Latitude, coords.Longitude, best.Latitude, best.Longitude)
	for _, c := range a.centers[1:] {
		// Strict less-than keeps the first equidistant center.
		if d := Haversine(coords.Latitude, coords.Longitude, c.Latitude, c.Longitude); d < bestDist {
			best = c
			bestDist = d
		}
	}

	msa := NationalAverage
	if bestDist <= a.radius {
		msa = best.Name
	}

	result := Assignment{
		Zipcode:     zip,
		MSA:         msa,
		Distance:    &bestDist,
		Coordinates: coords,
	}
	a.cache.Add(zip, result)

	zap.L().Debug("geo: assigned MSA",
		zap.String("zipcode", zip),
		zap.String("msa", msa),
		zap.Float64("distance_miles", bestDist),
	)
	return result
}

// PricingMultiplier returns the multiplier of the assigned MSA, or 1.0 for
// the National Average. Inherits AssignMSA's total-function guarantee.
func (a *Assigner) PricingMultiplier(raw string) float64 {
	assignment := a.AssignMSA(raw)
	if assignment.MSA == NationalAverage {
		return 1.0
	}
	if c := CenterByName(assignment.MSA); c != nil {
		return c.Multiplier
	}
	return 1.0
}

// AssignBatch assigns a slice of zipcodes in parallel. Individual inputs
// never fail the batch; each produces its own Assignment.
func (a *Assigner) AssignBatch(ctx context.Context, zipcodes []string) []Assignment {
	results := make([]Assignment, len(zipcodes))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.batchN)
	for i, zip := range zipcodes {
		eg.Go(func() error {
			if err := gCtx.Err(); err != nil {
				results[i] = Assignment{MSA: NationalAverage, Error: err.Error()}
				return nil
			}
			results[i] = a.AssignMSA(zip)
			return nil
		})
	}
	_ = eg.Wait()

	return results
}

// RadiusMiles reports the configured MSA inclusion radius.
func (a *Assigner) RadiusMiles() float64 {
	return a.radius
}

// CacheStats reports hit/miss counters and occupancy of the assignment cache.
func (a *Assigner) CacheStats() CacheStats {
	return a.cache.Stats()
}

// ResetCache clears the assignment cache and its counters.
func (a *Assigner) ResetCache() {
	a.cache.Reset()
}

package geo

import (
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Resolver maps normalized zipcodes to coordinates. Lookup order: exact-match
// cache, the embedded sample table, then the range-band approximation.
//
// The exact-match cache is unbounded for the lifetime of the process. The
// address space of plausible lookups is small, so this is a documented growth
// characteristic rather than a leak.
type Resolver struct {
	mu    sync.Mutex
	cache map[string]ZipcodeCoordinates

	table map[string]ZipcodeCoordinates
	bands []RangeBand
}

// NewResolver builds a Resolver from the static table and ordered bands.
// Both are supplied at construction; nothing is fetched over a network.
func NewResolver(table []ZipcodeCoordinates, bands []RangeBand) *Resolver {
	m := make(map[string]ZipcodeCoordinates, len(table))
	for _, zc := range table {
		m[zc.Zipcode] = zc
	}
	return &Resolver{
		cache: make(map[string]ZipcodeCoordinates),
		table: m,
		bands: bands,
	}
}

// AddZipcodes merges supplemental entries into the sample table. Later
// entries override earlier ones for the same zipcode.
func (r *Resolver) AddZipcodes(extra []ZipcodeCoordinates) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, zc := range extra {
		r.table[zc.Zipcode] = zc
	}
}

// Resolve returns coordinates for a normalized zipcode, or nil when neither
// the table nor a range band covers it. Successful resolutions are written
// to the exact-match cache.
func (r *Resolver) Resolve(zipcode string) *ZipcodeCoordinates {
	r.mu.Lock()
	defer r.mu.Unlock()

	if zc, ok := r.cache[zipcode]; ok {
		return &zc
	}
	if zc, ok := r.table[zipcode]; ok {
		r.cache[zipcode] = zc
		return &zc
	}

	n, err := strconv.Atoi(zipcode)
	if err != nil {
		return nil
	}
	for _, b := range r.bands {
		if n < b.Low || n > b.High {
			continue
		}
		center := CenterByName(b.Metro)
		zc := ZipcodeCoordinates{
			Zipcode:   zipcode,
			City:      b.City,
			State:     b.State,
			Latitude:  center.Latitude,
			Longitude: center.Longitude,
		}
		r.cache[zipcode] = zc
		zap.L().Debug("geo: range band approximation",
			zap.String("zipcode", zipcode),
			zap.String("metro", b.Metro),
		)
		return &zc
	}

	return nil
}

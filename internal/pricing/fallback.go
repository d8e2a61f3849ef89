package pricing

import (
	"maps"

	"github.com/fuelcast/gasprice-cli/internal/geo"
)

// fallbackPrices is the static per-MSA baseline used whenever no persisted
// price exists. Values are dollars per gallon of regular gasoline.
var fallbackPrices = map[string]float64{
	"New York":          3.85,
	"Los Angeles":       4.65,
	"Chicago":           3.80,
	"Houston":           3.05,
	"Phoenix":           3.60,
	"Philadelphia":      3.65,
	"Dallas":            3.00,
	"Atlanta":           3.20,
	"Miami":             3.45,
	"Seattle":           4.30,
	geo.NationalAverage: 3.40,
}

// FallbackPrice returns the baseline for the MSA, or the National Average
// baseline when the name is unknown.
func FallbackPrice(msaName string) float64 {
	if p, ok := fallbackPrices[msaName]; ok {
		return p
	}
	return fallbackPrices[geo.NationalAverage]
}

// FallbackBatch returns the baseline table for the ten target metros,
// excluding the synthetic National Average key. This is the batch the
// static source serves.
func FallbackBatch() map[string]float64 {
	batch := maps.Clone(fallbackPrices)
	delete(batch, geo.NationalAverage)
	return batch
}

package geo

// Proximity classification constants.
const (
	ClassUrbanCore = "urban_core"
	ClassSuburban  = "suburban"
	ClassExurban   = "exurban"
	ClassRural     = "rural"
)

// Distance thresholds for classification (miles).
const (
	urbanCoreThreshold = 15.0  // within radius AND distance <= 15mi of the center
	exurbanThreshold   = 150.0 // outside radius AND distance <= 150mi of the nearest center
)

// ClassifyProximity returns the proximity class for a distance to the
// nearest MSA center, given the inclusion radius.
// Rules:
//   - urban_core: within radius AND distance <= 15mi
//   - suburban: within radius AND distance > 15mi
//   - exurban: outside radius AND distance <= 150mi
//   - rural: outside radius AND distance > 150mi
//
// The unresolvable-coordinates sentinel distance classifies as rural.
func ClassifyProximity(distanceMiles, radiusMiles float64) string {
	if distanceMiles <= radiusMiles {
		if distanceMiles <= urbanCoreThreshold {
			return ClassUrbanCore
		}
		return ClassSuburban
	}
	if distanceMiles <= exurbanThreshold {
		return ClassExurban
	}
	return ClassRural
}

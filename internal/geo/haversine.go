package geo

import "math"

// earthRadiusMiles is the Earth's mean radius in statute miles.
const earthRadiusMiles = 3959.0

// Haversine returns the great-circle distance in miles between two points
// given in decimal degrees. Symmetric; zero for identical points. NaN or
// out-of-range degrees produce undefined results.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

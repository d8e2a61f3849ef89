package geo

// NationalAverage is the synthetic pseudo-MSA returned for zipcodes outside
// the radius of every tracked metro, and the key of the derived averaged
// price record.
const NationalAverage = "National Average"

// DefaultRadiusMiles is the inclusion radius around an MSA population
// centroid. Zipcodes farther than this from every center are assigned to
// the National Average.
const DefaultRadiusMiles = 75.0

// MSACenter is the population centroid of a tracked metro, with the
// pricing multiplier applied to base prices for that region.
type MSACenter struct {
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Multiplier float64 `json:"pricing_multiplier"`
}

// msaCenters is the fixed set of ten tracked metros. Defined once at
// process start and never mutated.
var msaCenters = []MSACenter{
	{Name: "New York", Latitude: 40.7128, Longitude: -74.0060, Multiplier: 1.25},
	{Name: "Los Angeles", Latitude: 34.0522, Longitude: -118.2437, Multiplier: 1.35},
	{Name: "Chicago", Latitude: 41.8781, Longitude: -87.6298, Multiplier: 1.12},
	{Name: "Houston", Latitude: 29.7604, Longitude: -95.3698, Multiplier: 0.95},
	{Name: "Phoenix", Latitude: 33.4484, Longitude: -112.0740, Multiplier: 1.05},
	{Name: "Philadelphia", Latitude: 39.9526, Longitude: -75.1652, Multiplier: 1.08},
	{Name: "Dallas", Latitude: 32.7767, Longitude: -96.7970, Multiplier: 0.93},
	{Name: "Atlanta", Latitude: 33.7490, Longitude: -84.3880, Multiplier: 0.97},
	{Name: "Miami", Latitude: 25.7617, Longitude: -80.1918, Multiplier: 1.06},
	{Name: "Seattle", Latitude: 47.6062, Longitude: -122.3321, Multiplier: 1.22},
}

// Centers returns the tracked MSA centers in iteration order. The order is
// load-bearing: equidistant ties resolve to the first center encountered.
func Centers() []MSACenter {
	out := make([]MSACenter, len(msaCenters))
	copy(out, msaCenters)
	return out
}

// CenterByName returns the center with the given MSA name, or nil.
func CenterByName(name string) *MSACenter {
	for i := range msaCenters {
		if msaCenters[i].Name == name {
			c := msaCenters[i]
			return &c
		}
	}
	return nil
}

// MSANames returns the names of all tracked metros, excluding the
// National Average.
func MSANames() []string {
	names := make([]string, len(msaCenters))
	for i, c := range msaCenters {
		names[i] = c.Name
	}
	return names
}

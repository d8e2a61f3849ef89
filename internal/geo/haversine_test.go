package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine_KnownDistances(t *testing.T) {
	// New York to Los Angeles, roughly 2,445 miles.
	d := Haversine(40.7128, -74.0060, 34.0522, -118.2437)
	assert.InDelta(t, 2445, d, 15)

	// Chicago to Houston, roughly 940 miles.
	d = Haversine(41.8781, -87.6298, 29.7604, -95.3698)
	assert.InDelta(t, 940, d, 15)
}

func TestHaversine_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{40.7128, -74.0060, 34.0522, -118.2437},
		{25.7617, -80.1918, 47.6062, -122.3321},
		{33.7490, -84.3880, 33.4484, -112.0740},
	}
	for _, p := range pairs {
		ab := Haversine(p[0], p[1], p[2], p[3])
		ba := Haversine(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-6)
	}
}

func TestHaversine_SelfDistanceZero(t *testing.T) {
	for _, c := range Centers() {
		d := Haversine(c.Latitude, c.Longitude, c.Latitude, c.Longitude)
		assert.Less(t, d, 0.001, "self distance for %s", c.Name)
	}
}

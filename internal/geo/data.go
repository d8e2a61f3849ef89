package geo

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed data/zipcodes.yaml
var embeddedData []byte

// ZipcodeCoordinates is a resolved zipcode centroid. City and state are
// display strings only; distance math uses latitude and longitude.
type ZipcodeCoordinates struct {
	Zipcode   string  `json:"zipcode" yaml:"zipcode"`
	City      string  `json:"city" yaml:"city"`
	State     string  `json:"state" yaml:"state"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// RangeBand maps a numeric zipcode range to a metro. Bands are searched in
// declared order and the first match wins, so overlapping ranges resolve
// deterministically.
type RangeBand struct {
	Low   int    `yaml:"low"`
	High  int    `yaml:"high"`
	City  string `yaml:"city"`
	State string `yaml:"state"`
	Metro string `yaml:"metro"`
}

type geoData struct {
	Zipcodes []ZipcodeCoordinates `yaml:"zipcodes"`
	Bands    []RangeBand          `yaml:"bands"`
}

// loadEmbeddedData parses the embedded zipcode table and range bands.
func loadEmbeddedData() (*geoData, error) {
	var d geoData
	if err := yaml.Unmarshal(embeddedData, &d); err != nil {
		return nil, eris.Wrap(err, "geo: parse embedded data")
	}
	for _, b := range d.Bands {
		if CenterByName(b.Metro) == nil {
			return nil, eris.Errorf("geo: band %d-%d references unknown metro %q", b.Low, b.High, b.Metro)
		}
	}
	return &d, nil
}

// ParseSupplement parses a YAML supplement file in the embedded data schema.
// Supplements may add zipcodes only; bands stay fixed.
func ParseSupplement(data []byte) ([]ZipcodeCoordinates, error) {
	var d geoData
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, eris.Wrap(err, "geo: parse supplement")
	}
	return d.Zipcodes, nil
}

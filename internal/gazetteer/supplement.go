package gazetteer

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/fuelcast/gasprice-cli/internal/geo"
)

type supplementDoc struct {
	Zipcodes []geo.ZipcodeCoordinates `yaml:"zipcodes"`
}

// WriteSupplement writes centroids to path as a YAML supplement readable by
// geo.ParseSupplement.
func WriteSupplement(path string, zips []geo.ZipcodeCoordinates) error {
	data, err := yaml.Marshal(supplementDoc{Zipcodes: zips})
	if err != nil {
		return eris.Wrap(err, "gazetteer: marshal supplement")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "gazetteer: write supplement")
	}
	return nil
}

package gazetteer

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/fuelcast/gasprice-cli/internal/geo"
)

// ParseTSV parses a Census ZCTA gazetteer file: tab-separated with a header
// row naming at least GEOID, INTPTLAT, and INTPTLONG. The GEOID column is
// the five-digit ZCTA code. Rows with malformed codes or coordinates are
// skipped, not fatal.
func ParseTSV(r io.Reader) ([]geo.ZipcodeCoordinates, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, eris.Wrap(err, "gazetteer: read header")
		}
		return nil, eris.New("gazetteer: empty file")
	}

	cols, err := headerIndex(scanner.Text())
	if err != nil {
		return nil, err
	}

	var zips []geo.ZipcodeCoordinates
	var skipped int
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		z, ok := parseRow(fields, cols)
		if !ok {
			skipped++
			continue
		}
		zips = append(zips, z)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "gazetteer: read rows")
	}

	if skipped > 0 {
		zap.L().Warn("gazetteer: skipped malformed rows", zap.Int("skipped", skipped))
	}
	return zips, nil
}

type tsvColumns struct {
	geoid, lat, lon int
}

func headerIndex(header string) (tsvColumns, error) {
	cols := tsvColumns{geoid: -1, lat: -1, lon: -1}
	for i, name := range strings.Split(header, "\t") {
		switch strings.ToUpper(strings.TrimSpace(name)) {
		case "GEOID", "GEOID20", "ZCTA5":
			cols.geoid = i
		case "INTPTLAT":
			cols.lat = i
		case "INTPTLONG", "INTPTLON":
			cols.lon = i
		}
	}
	if cols.geoid < 0 || cols.lat < 0 || cols.lon < 0 {
		return cols, eris.New("gazetteer: header missing GEOID, INTPTLAT, or INTPTLONG")
	}
	return cols, nil
}

func parseRow(fields []string, cols tsvColumns) (geo.ZipcodeCoordinates, bool) {
	max := cols.geoid
	if cols.lat > max {
		max = cols.lat
	}
	if cols.lon > max {
		max = cols.lon
	}
	if len(fields) <= max {
		return geo.ZipcodeCoordinates{}, false
	}

	zipcode, err := geo.NormalizeZipcode(strings.TrimSpace(fields[cols.geoid]))
	if err != nil {
		return geo.ZipcodeCoordinates{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(fields[cols.lat]), 64)
	if err != nil {
		return geo.ZipcodeCoordinates{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(fields[cols.lon]), 64)
	if err != nil {
		return geo.ZipcodeCoordinates{}, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return geo.ZipcodeCoordinates{}, false
	}

	return geo.ZipcodeCoordinates{
		Zipcode:   zipcode,
		Latitude:  lat,
		Longitude: lon,
	}, true
}

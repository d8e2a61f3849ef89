package gazetteer

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/fuelcast/gasprice-cli/internal/geo"
)

// ReadWorkbook loads zipcode centroids from a local XLSX workbook. The
// first sheet must carry a header row naming zipcode, latitude, and
// longitude columns; city and state columns are optional. Column order is
// free and names are matched case-insensitively.
func ReadWorkbook(path string) ([]geo.ZipcodeCoordinates, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "gazetteer: open workbook")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("gazetteer: workbook has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) < 2 {
		return nil, eris.New("gazetteer: workbook needs a header row and data rows")
	}

	cols, err := workbookColumns(rowStrings(sheet.Rows[0]))
	if err != nil {
		return nil, err
	}

	var zips []geo.ZipcodeCoordinates
	var skipped int
	for _, row := range sheet.Rows[1:] {
		z, ok := parseWorkbookRow(rowStrings(row), cols)
		if !ok {
			skipped++
			continue
		}
		zips = append(zips, z)
	}

	if skipped > 0 {
		zap.L().Warn("gazetteer: skipped malformed workbook rows",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return zips, nil
}

type workbookCols struct {
	zipcode, city, state, lat, lon int
}

func workbookColumns(header []string) (workbookCols, error) {
	cols := workbookCols{zipcode: -1, city: -1, state: -1, lat: -1, lon: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "zipcode", "zip", "zcta":
			cols.zipcode = i
		case "city":
			cols.city = i
		case "state":
			cols.state = i
		case "latitude", "lat":
			cols.lat = i
		case "longitude", "lng", "lon":
			cols.lon = i
		}
	}
	if cols.zipcode < 0 || cols.lat < 0 || cols.lon < 0 {
		return cols, eris.New("gazetteer: workbook header missing zipcode, latitude, or longitude")
	}
	return cols, nil
}

func parseWorkbookRow(fields []string, cols workbookCols) (geo.ZipcodeCoordinates, bool) {
	cell := func(i int) string {
		if i < 0 || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	zipcode, err := geo.NormalizeZipcode(cell(cols.zipcode))
	if err != nil {
		return geo.ZipcodeCoordinates{}, false
	}
	lat, err := strconv.ParseFloat(cell(cols.lat), 64)
	if err != nil || lat < -90 || lat > 90 {
		return geo.ZipcodeCoordinates{}, false
	}
	lon, err := strconv.ParseFloat(cell(cols.lon), 64)
	if err != nil || lon < -180 || lon > 180 {
		return geo.ZipcodeCoordinates{}, false
	}

	return geo.ZipcodeCoordinates{
		Zipcode:   zipcode,
		City:      cell(cols.city),
		State:     cell(cols.state),
		Latitude:  lat,
		Longitude: lon,
	}, true
}

func rowStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = c.String()
	}
	return cells
}

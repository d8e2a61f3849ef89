package gazetteer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/fuelcast/gasprice-cli/internal/geo"
)

const sampleTSV = "GEOID\tALAND\tAWATER\tALAND_SQMI\tAWATER_SQMI\tINTPTLAT\tINTPTLONG\n" +
	"10001\t1600000\t0\t0.618\t0.000\t40.750633\t-73.997177\n" +
	"30301\t2100000\t0\t0.811\t0.000\t33.748995\t-84.387982\n" +
	"bogus\t0\t0\t0\t0\t40.0\t-70.0\n" +
	"60601\t900000\t0\t0.347\t0.000\tnot-a-number\t-87.622745\n"

func TestParseTSV(t *testing.T) {
	zips, err := ParseTSV(strings.NewReader(sampleTSV))
	require.NoError(t, err)
	require.Len(t, zips, 2)

	assert.Equal(t, "10001", zips[0].Zipcode)
	assert.InDelta(t, 40.750633, zips[0].Latitude, 0.0001)
	assert.InDelta(t, -73.997177, zips[0].Longitude, 0.0001)
	assert.Equal(t, "30301", zips[1].Zipcode)
}

func TestParseTSV_HeaderVariants(t *testing.T) {
	tsv := "GEOID20\tINTPTLAT\tINTPTLON\n" +
		"98101\t47.610378\t-122.334200\n"

	zips, err := ParseTSV(strings.NewReader(tsv))
	require.NoError(t, err)
	require.Len(t, zips, 1)
	assert.Equal(t, "98101", zips[0].Zipcode)
}

func TestParseTSV_MissingColumns(t *testing.T) {
	_, err := ParseTSV(strings.NewReader("GEOID\tALAND\n10001\t1600000\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "header missing")
}

func TestParseTSV_EmptyFile(t *testing.T) {
	_, err := ParseTSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseTSV_OutOfRangeCoordinates(t *testing.T) {
	tsv := "GEOID\tINTPTLAT\tINTPTLONG\n" +
		"10001\t95.0\t-73.99\n"

	zips, err := ParseTSV(strings.NewReader(tsv))
	require.NoError(t, err)
	assert.Empty(t, zips)
}

func createWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Zipcodes")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "zipcodes.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadWorkbook(t *testing.T) {
	path := createWorkbook(t, [][]string{
		{"Zip", "City", "State", "Lat", "Lng"},
		{"89101", "Las Vegas", "NV", "36.171563", "-115.139101"},
		{"oops", "Nowhere", "XX", "1", "1"},
		{"95814", "Sacramento", "CA", "38.581572", "-121.494400"},
	})

	zips, err := ReadWorkbook(path)
	require.NoError(t, err)
	require.Len(t, zips, 2)
	assert.Equal(t, "89101", zips[0].Zipcode)
	assert.Equal(t, "Las Vegas", zips[0].City)
	assert.Equal(t, "NV", zips[0].State)
	assert.InDelta(t, 36.171563, zips[0].Latitude, 0.0001)
	assert.Equal(t, "95814", zips[1].Zipcode)
}

func TestReadWorkbook_MissingHeader(t *testing.T) {
	path := createWorkbook(t, [][]string{
		{"City", "State"},
		{"Las Vegas", "NV"},
	})

	_, err := ReadWorkbook(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "header missing")
}

func TestWriteSupplement_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supplement.yaml")
	in := []geo.ZipcodeCoordinates{
		{Zipcode: "89101", City: "Las Vegas", State: "NV", Latitude: 36.171563, Longitude: -115.139101},
	}
	require.NoError(t, WriteSupplement(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out, err := geo.ParseSupplement(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestImporter_ImportXLSX(t *testing.T) {
	src := createWorkbook(t, [][]string{
		{"Zipcode", "Latitude", "Longitude"},
		{"89101", "36.171563", "-115.139101"},
		{"89101", "36.0", "-115.0"},
		{"95814", "38.581572", "-121.494400"},
	})
	out := filepath.Join(t.TempDir(), "supplement.yaml")

	n, err := NewImporter(nil).ImportXLSX(src, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "duplicate zipcodes collapse to the first row")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	zips, err := geo.ParseSupplement(data)
	require.NoError(t, err)
	require.Len(t, zips, 2)
	assert.InDelta(t, 36.171563, zips[0].Latitude, 0.0001, "first duplicate wins")
}

func TestImporter_FTPWithoutClient(t *testing.T) {
	_, err := NewImporter(nil).ImportFTP(context.Background(), "ftp2.census.gov", "geo/file.txt", "out.yaml")
	assert.Error(t, err)
}

func TestHostWithDefaultPort(t *testing.T) {
	assert.Equal(t, "ftp2.census.gov:21", hostWithDefaultPort("ftp2.census.gov"))
	assert.Equal(t, "ftp2.census.gov:2121", hostWithDefaultPort("ftp2.census.gov:2121"))
}

// Package gazetteer imports zipcode centroid tables from the Census
// gazetteer FTP site or from local XLSX workbooks, and writes YAML
// supplements the geo resolver can load.
package gazetteer

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/fuelcast/gasprice-cli/internal/geo"
)

// Importer fetches, parses, and persists zipcode centroid supplements.
type Importer struct {
	ftp *FTPClient
}

// NewImporter creates an Importer backed by the given FTP client. A nil
// client disables FTP imports; local workbook imports still work.
func NewImporter(ftp *FTPClient) *Importer {
	return &Importer{ftp: ftp}
}

// ImportFTP downloads a gazetteer TSV from the Census FTP site and writes
// the parsed centroids to outPath as a YAML supplement. Returns the number
// of centroids written.
func (imp *Importer) ImportFTP(ctx context.Context, host, remotePath, outPath string) (int, error) {
	if imp.ftp == nil {
		return 0, eris.New("gazetteer: no ftp client configured")
	}

	rc, err := imp.ftp.Fetch(ctx, host, remotePath)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	return imp.writeParsed(outPath, rc, remotePath)
}

// ImportXLSX reads a local zipcode workbook and writes the parsed centroids
// to outPath as a YAML supplement. Returns the number of centroids written.
func (imp *Importer) ImportXLSX(path, outPath string) (int, error) {
	zips, err := ReadWorkbook(path)
	if err != nil {
		return 0, err
	}
	return imp.write(outPath, zips, path)
}

func (imp *Importer) writeParsed(outPath string, r io.Reader, origin string) (int, error) {
	zips, err := ParseTSV(r)
	if err != nil {
		return 0, err
	}
	return imp.write(outPath, zips, origin)
}

func (imp *Importer) write(outPath string, zips []geo.ZipcodeCoordinates, origin string) (int, error) {
	zips = dedupe(zips)
	if len(zips) == 0 {
		return 0, eris.Errorf("gazetteer: no usable centroids in %s", origin)
	}

	if err := WriteSupplement(outPath, zips); err != nil {
		return 0, err
	}

	zap.L().Info("gazetteer: supplement written",
		zap.String("origin", origin),
		zap.String("path", outPath),
		zap.Int("zipcodes", len(zips)),
	)
	return len(zips), nil
}

// dedupe keeps the first centroid seen per zipcode, preserving input order.
func dedupe(zips []geo.ZipcodeCoordinates) []geo.ZipcodeCoordinates {
	seen := make(map[string]bool, len(zips))
	out := zips[:0]
	for _, z := range zips {
		if seen[z.Zipcode] {
			continue
		}
		seen[z.Zipcode] = true
		out = append(out, z)
	}
	return out
}

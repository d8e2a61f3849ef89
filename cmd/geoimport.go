package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fuelcast/gasprice-cli/internal/gazetteer"
)

var geoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Zipcode centroid data maintenance",
	Long:  "Imports zipcode centroid tables into YAML supplements loaded via geo.supplement_path.",
}

var geoImportCmd = &cobra.Command{
	Use:   "import --out <path> [--xlsx <file> | --ftp-path <remote>]",
	Short: "Import zipcode centroids from a gazetteer file",
	Long:  "Parses a Census gazetteer TSV (over FTP) or a local XLSX workbook and writes a YAML supplement for the resolver.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out, _ := cmd.Flags().GetString("out")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")
		ftpPath, _ := cmd.Flags().GetString("ftp-path")

		if out == "" {
			return eris.New("--out is required")
		}
		if (xlsxPath == "") == (ftpPath == "") {
			return eris.New("exactly one of --xlsx or --ftp-path is required")
		}

		imp := gazetteer.NewImporter(gazetteer.NewFTPClient(30 * time.Second))

		var n int
		var err error
		if xlsxPath != "" {
			n, err = imp.ImportXLSX(xlsxPath, out)
		} else {
			n, err = imp.ImportFTP(ctx, cfg.Gazetteer.FTPHost, ftpPath, out)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %d zipcode centroids to %s\n", n, out)
		return nil
	},
}

func init() {
	geoImportCmd.Flags().String("out", "", "output YAML supplement path")
	geoImportCmd.Flags().String("xlsx", "", "local XLSX workbook to import")
	geoImportCmd.Flags().String("ftp-path", "", "remote gazetteer path on the Census FTP site")

	geoCmd.AddCommand(geoImportCmd)
	rootCmd.AddCommand(geoCmd)
}

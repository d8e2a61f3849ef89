package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fuelcast/gasprice-cli/internal/geo"
)

var assignCmd = &cobra.Command{
	Use:   "assign <zipcode>...",
	Short: "Assign zipcodes to metropolitan statistical areas",
	Long:  "Maps each zipcode to the nearest MSA center within the inclusion radius, or to the National Average when none qualifies.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("lookup"); err != nil {
			return err
		}

		assigner, err := initAssigner()
		if err != nil {
			return err
		}

		assignments := assigner.AssignBatch(ctx, args)

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(assignments)
		}

		formatAssignments(os.Stdout, assignments, assigner.RadiusMiles())
		return nil
	},
}

func init() {
	assignCmd.Flags().Bool("json", false, "emit JSON instead of a table")
	rootCmd.AddCommand(assignCmd)
}

// formatAssignments writes a tabular view of assignments to w.
func formatAssignments(out io.Writer, assignments []geo.Assignment, radiusMiles float64) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ZIPCODE\tMSA\tDISTANCE_MI\tPROXIMITY\tCITY\tNOTE")
	for _, a := range assignments {
		zipcode := a.Zipcode
		if zipcode == "" {
			zipcode = "-"
		}
		distance := "-"
		proximity := "-"
		if a.Distance != nil {
			distance = fmt.Sprintf("%.1f", *a.Distance)
			proximity = geo.ClassifyProximity(*a.Distance, radiusMiles)
		}
		city := "-"
		if a.Coordinates != nil && a.Coordinates.City != "" {
			city = fmt.Sprintf("%s, %s", a.Coordinates.City, a.Coordinates.State)
		}
		note := a.Error
		if note == "" {
			note = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", zipcode, a.MSA, distance, proximity, city, note)
	}
	_ = w.Flush()
}

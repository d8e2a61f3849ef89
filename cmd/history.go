package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fuelcast/gasprice-cli/internal/geo"
)

var historyCmd = &cobra.Command{
	Use:   "history <msa>",
	Short: "Show a synthetic daily price series for an MSA",
	Long:  "Generates a deterministic daily price series anchored on the MSA's current (or baseline) price. Intended for charting, not analysis.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("lookup"); err != nil {
			return err
		}

		msaName := args[0]
		if geo.CenterByName(msaName) == nil && msaName != geo.NationalAverage {
			return eris.Errorf("unknown MSA %q (use one of %v)", msaName, geo.MSANames())
		}

		days, _ := cmd.Flags().GetInt("days")

		svc, _, st, err := initService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		points := svc.PriceHistory(ctx, msaName, days)

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(points)
		}

		for _, p := range points {
			fmt.Printf("%s  $%.3f\n", p.Date, p.Price)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("days", 30, "number of days to generate")
	historyCmd.Flags().Bool("json", false, "emit JSON instead of text")
	rootCmd.AddCommand(historyCmd)
}

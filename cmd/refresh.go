package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fuelcast/gasprice-cli/internal/pricing"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh persisted prices from external sources",
	Long:  "Fetches a fresh batch from the highest-priority source that responds, persists it, and recomputes the National Average. Falls back to the static baseline when every source fails.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("refresh"); err != nil {
			return err
		}

		svc, _, st, err := initService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		summary, err := svc.RefreshAll(ctx)
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}

		formatRefreshSummary(summary)
		return nil
	},
}

func init() {
	refreshCmd.Flags().Bool("json", false, "emit JSON instead of text")
	rootCmd.AddCommand(refreshCmd)
}

func formatRefreshSummary(summary *pricing.RefreshSummary) {
	fmt.Printf("Refresh %s\n", summary.ID)
	fmt.Printf("Sources used:  %v\n", summary.DataSourcesUsed)
	fmt.Printf("Updated MSAs:  %d\n", summary.TotalUpdated)
	fmt.Printf("Duration:      %s\n", summary.EndTime.Sub(summary.StartTime).Round(time.Millisecond))
	for _, f := range summary.FailedSources {
		fmt.Printf("Failed source: %s (%s)\n", f.Source, f.Error)
	}
}

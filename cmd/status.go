package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fuelcast/gasprice-cli/internal/monitoring"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show price data freshness and cache statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("refresh"); err != nil {
			return err
		}

		_, assigner, st, err := initService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		snap, err := monitoring.NewCollector(st, assigner).Collect(ctx, cfg.Refresh.StaleAfterHours)
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		}

		fmt.Printf("Price records:  %d (%d stale beyond %dh)\n", snap.PriceRecords, snap.StaleRecords, snap.StaleAfterHours)
		if snap.PriceRecords > 0 {
			fmt.Printf("Oldest update:  %s\n", snap.OldestUpdateAt.Format("2006-01-02 15:04:05 MST"))
			fmt.Printf("Newest update:  %s\n", snap.NewestUpdateAt.Format("2006-01-02 15:04:05 MST"))
			fmt.Printf("Sources seen:   %v\n", snap.SourcesSeen)
		}
		if snap.FallbackOnly {
			fmt.Println("Warning: every record came from the static baseline; no external source has succeeded yet")
		}
		fmt.Printf("Cache:          %d/%d entries, %d hits, %d misses\n",
			snap.CacheSize, snap.CacheCapacity, snap.CacheHits, snap.CacheMisses)
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "emit JSON instead of text")
	rootCmd.AddCommand(statusCmd)
}

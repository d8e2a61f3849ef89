package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var priceCmd = &cobra.Command{
	Use:   "price <zipcode>",
	Short: "Resolve the current gas price for a zipcode",
	Long:  "Assigns the zipcode to an MSA and reports its current price, falling back to the static baseline when no persisted data exists.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("lookup"); err != nil {
			return err
		}

		svc, _, st, err := initService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		result := svc.PriceForZipcode(ctx, args[0])

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		p := message.NewPrinter(language.AmericanEnglish)
		p.Printf("MSA:         %s\n", result.MSAName)
		if result.DistanceToMSA != nil {
			p.Printf("Distance:    %.1f mi\n", *result.DistanceToMSA)
		}
		p.Printf("Price:       $%.3f/gal\n", result.Price)
		if result.PriceChange != 0 {
			p.Printf("Change:      %+.3f\n", result.PriceChange)
		}
		p.Printf("Source:      %s (confidence %.2f)\n", result.Source, result.Confidence)
		if result.IsFallback {
			p.Printf("Note:        %s\n", result.Warning)
		}
		return nil
	},
}

func init() {
	priceCmd.Flags().Bool("json", false, "emit JSON instead of text")
	rootCmd.AddCommand(priceCmd)
}

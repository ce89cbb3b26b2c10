package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asceswap/go-asceswap/scale"
	"github.com/asceswap/go-asceswap/types"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <pair-id> <side> <notional>",
	Short: "Preview a swap quote for a notional",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}

		side, err := types.ParseSide(args[1])
		if err != nil {
			return err
		}
		notional, err := scale.ParseAmount(args[2])
		if err != nil {
			return err
		}

		snap, err := svc.Reader().GetMarket(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		units, err := scale.ToBaseUnits(notional, snap.Decimals)
		if err != nil {
			return err
		}

		preview, err := svc.Reader().TradePreview(cmd.Context(), args[0], side, units)
		if err != nil {
			return err
		}

		fmt.Printf("Quote for %s %s, notional %s\n", side, args[0], notional)
		fmt.Printf("  Base rate:            %s%%\n", preview.BaseRatePct)
		fmt.Printf("  Final rate:           %s%%\n", preview.FinalRatePct)
		fmt.Printf("  Imbalance adjustment: %s%%\n", preview.ImbalanceAdjustmentPct)
		fmt.Printf("  Required collateral:  %s\n", preview.CollateralRequired)
		fmt.Printf("  LP collateral locked: %s\n", preview.LPCollateralLocked)
		fmt.Printf("  Utilization cap:      %s%%\n", preview.UtilizationCapPct)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

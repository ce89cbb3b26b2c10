package cmd

import (
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/cobra"

	"github.com/asceswap/go-asceswap/quote"
	"github.com/asceswap/go-asceswap/scale"
)

var positionCmd = &cobra.Command{
	Use:   "position <swap-id>",
	Short: "Show a swap position, its health, and the live rate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}

		swapID, ok := new(big.Int).SetString(args[0], 10)
		if !ok {
			return fmt.Errorf("invalid swap id %q", args[0])
		}

		dash, err := svc.Reader().SwapDashboard(cmd.Context(), swapID)
		if err != nil {
			return err
		}

		rec := dash.Swap
		snap, err := svc.Reader().GetMarket(cmd.Context(), rec.PairID)
		if err != nil {
			return err
		}

		fmt.Printf("Swap %s [%s] on market %s\n", rec.SwapID, rec.Status, rec.PairID)
		fmt.Printf("  Owner:          %s\n", rec.Owner)
		fmt.Printf("  Side:           %s\n", rec.Side)
		fmt.Printf("  Notional:       %s\n", scale.FromBaseUnits(rec.NotionalUnits, snap.Decimals))
		fmt.Printf("  Collateral:     %s\n", scale.FromBaseUnits(rec.CollateralUnits, snap.Decimals))
		fmt.Printf("  Entry rate:     %s%%\n", scale.BpsToPercent(int64(rec.EntryRateBps)))
		fmt.Printf("  Live TWA rate:  %s%%\n", dash.TWARatePct)
		fmt.Printf("  Opened:         %s\n", rec.StartTime.Format("2006-01-02 15:04:05 MST"))
		fmt.Printf("  Matures:        %s (%s)\n", rec.MaturityTime.Format("2006-01-02 15:04:05 MST"),
			quote.FormatCountdown(time.Until(rec.MaturityTime)))
		fmt.Println("Health")
		fmt.Printf("  Collateral ratio:  %s%%\n", dash.Health.CollateralRatioPct)
		fmt.Printf("  Liq. threshold:    %s%%\n", dash.Health.LiquidationThresholdPct)
		fmt.Printf("  Liquidatable:      %v\n", dash.Health.Liquidatable)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(positionCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:   "market <pair-id>",
	Short: "Show a market and its pool analytics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}

		dash, err := svc.Reader().MarketDashboard(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		m := dash.Market
		fmt.Printf("Market %s [%s]\n", m.PairID, m.Status)
		fmt.Printf("  Collateral token:   %s (%d decimals)\n", m.CollateralToken, m.Decimals)
		fmt.Printf("  Oracle:             %s\n", m.Oracle)
		fmt.Printf("  Curator:            %s\n", m.Curator)
		fmt.Printf("  Spot rate:          %s%% (updated %s)\n", m.Rate.CurrentPct, m.Rate.LastUpdated.Format("2006-01-02 15:04:05 MST"))
		fmt.Println("Pool")
		fmt.Printf("  Total collateral:   %s\n", m.Pool.TotalCollateral)
		fmt.Printf("  Locked (fixed):     %s\n", m.Pool.LockedFixed)
		fmt.Printf("  Locked (floating):  %s\n", m.Pool.LockedFloating)
		fmt.Printf("  Available:          %s\n", m.Pool.AvailableLiquidity)
		fmt.Println("Parameters")
		fmt.Printf("  Term:               %.0f days\n", m.Params.SwapTermDays)
		fmt.Printf("  Min hold:           %.0f minutes\n", m.Params.MinHoldPeriodMinutes)
		fmt.Printf("  Margin multiplier:  %s%%\n", m.Params.InitialMarginMultiplierPct)
		fmt.Printf("  Liq. threshold:     %s%%\n", m.Params.LiquidationThresholdPct)
		fmt.Printf("  Swap fee:           %s%%\n", m.Params.SwapFeePct)
		fmt.Printf("  Utilization cap:    %s%%\n", m.Params.MaxUtilizationPct)
		fmt.Printf("  Notional bounds:    %s .. %s\n", m.Params.MinNotional, m.Params.MaxNotional)
		fmt.Printf("  LP permissioned:    %v\n", m.Params.IsLPPermissioned)
		fmt.Println("Analytics")
		fmt.Printf("  Total volume:       %s\n", dash.Analytics.TotalVolume)
		fmt.Printf("  Fees accrued:       %s\n", dash.Analytics.FeesAccrued)
		fmt.Printf("  Utilization:        %s%%\n", dash.Analytics.UtilizationPct)
		fmt.Printf("  Average rate:       %s%%\n", dash.Analytics.AverageRatePct)
		fmt.Printf("Swaps: %d total, %d active\n", m.Stats.TotalSwaps, m.Stats.ActiveSwaps)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(marketCmd)
}

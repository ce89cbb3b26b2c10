package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asceswap/go-asceswap/quote"
	"github.com/asceswap/go-asceswap/scale"
	"github.com/asceswap/go-asceswap/types"
)

var swapMaxRateBps uint64

var swapCmd = &cobra.Command{
	Use:   "swap <pair-id> <side> <collateral>",
	Short: "Open a swap position collateralized with the given amount",
	Long: `Open a swap position. The notional is derived from the posted
collateral and the market's initial margin multiplier. The approve and
buy_swap calls are submitted as one atomic batch, with an oracle refresh
prepended when the market's rate is stale on the chain's clock.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}
		sess, err := newSession()
		if err != nil {
			return err
		}

		side, err := types.ParseSide(args[1])
		if err != nil {
			return err
		}
		collateral, err := scale.ParseAmount(args[2])
		if err != nil {
			return err
		}

		snap, err := svc.Reader().GetMarket(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		notional := quote.Notional(collateral, snap.Params.InitialMarginMultiplierPct)

		txHash, err := svc.OpenSwap(cmd.Context(), sess, types.SwapIntent{
			PairID:     args[0],
			Side:       side,
			Notional:   notional,
			Collateral: collateral,
			MaxRateBps: swapMaxRateBps,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Opened %s swap on market %s\n", side, args[0])
		fmt.Printf("  notional:   %s\n", notional)
		fmt.Printf("  collateral: %s\n", collateral)
		fmt.Printf("  tx:         %s\n", txHash)
		return nil
	},
}

func init() {
	swapCmd.Flags().Uint64Var(&swapMaxRateBps, "max-rate", 0, "max acceptable rate in basis points (0 uses the default bound)")
	rootCmd.AddCommand(swapCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asceswap/go-asceswap/scale"
)

var supplyCmd = &cobra.Command{
	Use:   "supply <pair-id> <amount>",
	Short: "Supply collateral to a market's LP pool",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}
		sess, err := newSession()
		if err != nil {
			return err
		}

		amount, err := scale.ParseAmount(args[1])
		if err != nil {
			return err
		}

		txHash, err := svc.SupplyLiquidity(cmd.Context(), sess, args[0], amount)
		if err != nil {
			return err
		}

		fmt.Printf("Supplied %s to market %s\n", amount, args[0])
		fmt.Printf("  tx: %s\n", txHash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(supplyCmd)
}

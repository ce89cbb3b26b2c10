package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint faucet funds of the mock token to the connected account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cfg, err := newService()
		if err != nil {
			return err
		}
		sess, err := newSession()
		if err != nil {
			return err
		}

		txHash, err := svc.MintMockToken(cmd.Context(), sess)
		if err != nil {
			return err
		}

		fmt.Printf("Minted mock tokens to %s\n", sess.Account)
		fmt.Printf("  token: %s\n", cfg.MockTokenAddress)
		fmt.Printf("  tx:    %s\n", txHash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mintCmd)
}

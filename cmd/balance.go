package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var balanceToken string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the connected account's token balance",
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

		token := balanceToken
		if token == "" {
			token = cfg.MockTokenAddress
		}
		if token == "" {
			return fmt.Errorf("no token address given and no mock token configured")
		}

		bal, err := svc.Reader().TokenBalance(cmd.Context(), token, sess.Account)
		if err != nil {
			return err
		}

		fmt.Printf("Balance of %s\n", sess.Account)
		fmt.Printf("  token:   %s\n", token)
		fmt.Printf("  balance: %s (%s base units)\n", bal.Formatted, bal.Units)
		return nil
	},
}

func init() {
	balanceCmd.Flags().StringVar(&balanceToken, "token", "", "token address (defaults to the configured mock token)")
	rootCmd.AddCommand(balanceCmd)
}

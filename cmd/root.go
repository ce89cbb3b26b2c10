package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/asceswap/go-asceswap/config"
	"github.com/asceswap/go-asceswap/utils"
)

var (
	cfgFile     string
	debug       bool
	accountAddr string
)

var rootCmd = &cobra.Command{
	Use:   "asceswap",
	Short: "CLI client for the AsceSwap interest-rate swap protocol",
	Long: `A CLI client for the AsceSwap interest-rate swap protocol that reads
markets and positions over RPC and submits atomic multicall batches for
supplying liquidity and opening swap positions.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is env-only configuration)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&accountAddr, "account", "", "connected account address (0x-hex)")
}

func initConfig() {
	utils.InitLogger(debug)
	// A missing .env file is fine; the environment may be set directly.
	_ = config.LoadEnv()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pharma-intel/internal/market"
)

var marketCmd = &cobra.Command{
	Use:   "market [therapy-area]",
	Short: "Show market intelligence for a therapy area",
	Long: `Market prints the market snapshot for a therapy area: size, growth
rate, competition, key players, and emerging trends. Without an argument it
lists the available areas.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMarket,
}

func runMarket(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		dataset, err := market.Load()
		if err != nil {
			return err
		}
		fmt.Println("Available therapy areas:", strings.Join(dataset.Areas(), ", "))
		return nil
	}

	tb, err := newToolbox(buildConfig(cmd))
	if err != nil {
		return err
	}
	fmt.Println(tb.MarketData(args[0]))
	return nil
}

func init() {
	rootCmd.AddCommand(marketCmd)
}

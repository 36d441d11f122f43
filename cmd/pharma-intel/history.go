// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pharma-intel/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past report runs",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := buildConfig(cmd)
	store, err := history.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No report runs recorded.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %-20s  %s\n", r.CreatedAt.Format(time.RFC3339), r.Drug, r.ReportPath)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list (0 for all)")

	rootCmd.AddCommand(historyCmd)
}

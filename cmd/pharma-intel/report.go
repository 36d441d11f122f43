// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pharma-intel/internal/history"
	"github.com/pdiddy/pharma-intel/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [drug]",
	Short: "Generate a multi-source drug intelligence report",
	Long: `Report runs every data source for a drug in a fixed sequence (trials,
compound, label, adverse events, literature, and optionally market data),
renders the results as a Markdown document with YAML front matter, and writes
it to the output directory. Each run is recorded in the history database.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	condition, _ := cmd.Flags().GetString("condition")
	area, _ := cmd.Flags().GetString("area")

	cfg := buildConfig(cmd)
	tb, err := newToolbox(cfg)
	if err != nil {
		return err
	}

	gen := report.New(tb, cfg.OutputDir, log)
	rep, err := gen.Generate(cmd.Context(), args[0], condition, area)
	if err != nil {
		return err
	}

	store, err := history.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Record(cmd.Context(), history.Run{
		ID:          rep.Meta.RunID,
		Drug:        rep.Meta.Drug,
		Condition:   rep.Meta.Condition,
		TherapyArea: rep.Meta.TherapyArea,
		ReportPath:  rep.Path,
	}); err != nil {
		return err
	}

	fmt.Println("Report written to", rep.Path)
	return nil
}

func init() {
	reportCmd.Flags().String("condition", "", "also search trials for this medical condition")
	reportCmd.Flags().String("area", "", "include market data for this therapy area")

	rootCmd.AddCommand(reportCmd)
}

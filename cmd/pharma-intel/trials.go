// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trialsCmd = &cobra.Command{
	Use:   "trials",
	Short: "Search clinical trial registrations",
	Long: `Trials searches the ClinicalTrials.gov registry by medical condition or
by drug/intervention name. Provide exactly one of --condition or --drug.`,
	RunE: runTrials,
}

func runTrials(cmd *cobra.Command, args []string) error {
	condition, _ := cmd.Flags().GetString("condition")
	drug, _ := cmd.Flags().GetString("drug")
	if (condition == "") == (drug == "") {
		return fmt.Errorf("provide exactly one of --condition or --drug")
	}

	tb, err := newToolbox(buildConfig(cmd))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if condition != "" {
		fmt.Println(tb.TrialsByCondition(ctx, condition))
	} else {
		fmt.Println(tb.TrialsByDrug(ctx, drug))
	}
	return nil
}

func init() {
	trialsCmd.Flags().String("condition", "", "medical condition to search for")
	trialsCmd.Flags().String("drug", "", "drug or intervention to search for")

	rootCmd.AddCommand(trialsCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var labelCmd = &cobra.Command{
	Use:   "label [drug]",
	Short: "Fetch FDA drug label information",
	Long: `Label searches the openFDA drug label database by brand or generic name
and prints indications, dosage, and warnings for matching products.`,
	Args: cobra.ExactArgs(1),
	RunE: runLabel,
}

var eventsCmd = &cobra.Command{
	Use:   "events [drug]",
	Short: "Summarize recent FDA adverse event reports",
	Long: `Events queries the openFDA adverse event database for reports naming the
drug as a suspect or concomitant medication.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvents,
}

func runLabel(cmd *cobra.Command, args []string) error {
	tb, err := newToolbox(buildConfig(cmd))
	if err != nil {
		return err
	}
	fmt.Println(tb.DrugLabelInfo(cmd.Context(), args[0]))
	return nil
}

func runEvents(cmd *cobra.Command, args []string) error {
	tb, err := newToolbox(buildConfig(cmd))
	if err != nil {
		return err
	}
	fmt.Println(tb.AdverseEventSummary(cmd.Context(), args[0]))
	return nil
}

func init() {
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(eventsCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var compoundCmd = &cobra.Command{
	Use:   "compound [name]",
	Short: "Look up chemical properties of a drug",
	Long: `Compound resolves a drug name against the PubChem database and prints
its molecular properties, synonyms, and description.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompound,
}

func runCompound(cmd *cobra.Command, args []string) error {
	tb, err := newToolbox(buildConfig(cmd))
	if err != nil {
		return err
	}
	fmt.Println(tb.DrugProperties(cmd.Context(), args[0]))
	return nil
}

func init() {
	rootCmd.AddCommand(compoundCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var literatureCmd = &cobra.Command{
	Use:   "literature [query...]",
	Short: "Search PubMed for scientific articles",
	Long: `Literature runs a two-phase PubMed lookup: an esearch query resolves
matching article IDs, then an esummary call fetches their details.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLiterature,
}

func runLiterature(cmd *cobra.Command, args []string) error {
	tb, err := newToolbox(buildConfig(cmd))
	if err != nil {
		return err
	}
	fmt.Println(tb.LiteratureSearch(cmd.Context(), strings.Join(args, " ")))
	return nil
}

func init() {
	rootCmd.AddCommand(literatureCmd)
}

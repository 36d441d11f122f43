// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pharma-intel/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the response cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry counts and disk usage",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached responses",
	Long: `Clear deletes cached API responses. With --source only entries from
that source are removed; otherwise the whole cache is cleared.`,
	RunE: runCacheClear,
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	cfg := buildConfig(cmd)
	store := cache.New(cfg.Cache, log)

	stats := store.Stats()
	fmt.Printf("Entries:  %d\n", stats.Entries)
	fmt.Printf("Size:     %d bytes\n", stats.TotalBytes)
	fmt.Printf("TTL:      %s\n", stats.TTL)
	fmt.Printf("Enabled:  %t\n", stats.Enabled)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")

	cfg := buildConfig(cmd)
	store := cache.New(cfg.Cache, log)

	n, err := store.Clear(source)
	if err != nil {
		return err
	}
	if source != "" {
		fmt.Printf("Cleared %d entries for source %s\n", n, source)
	} else {
		fmt.Printf("Cleared %d entries\n", n)
	}
	return nil
}

func init() {
	cacheClearCmd.Flags().String("source", "", "clear only entries from this source")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

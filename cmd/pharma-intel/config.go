// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-intel/internal/cache"
	"github.com/pdiddy/pharma-intel/internal/market"
	"github.com/pdiddy/pharma-intel/internal/pipeline"
	"github.com/pdiddy/pharma-intel/internal/secrets"
	"github.com/pdiddy/pharma-intel/internal/sources"
	"github.com/pdiddy/pharma-intel/internal/tools"
	"github.com/pdiddy/pharma-intel/pkg/types"
)

// buildConfig assembles the retrieval config from defaults, the viper
// config file / environment, and loaded secrets.
func buildConfig(cmd *cobra.Command) types.Config {
	ncbiKey := secretDefault(secrets.NCBIAPIKey, viper.GetString("ncbi_api_key"))
	cfg := types.DefaultConfig(ncbiKey)
	cfg.Label.APIKey = secretDefault(secrets.FDAAPIKey, viper.GetString("fda_api_key"))

	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if viper.IsSet("cache.ttl_hours") {
		cfg.Cache.TTLHours = viper.GetInt("cache.ttl_hours")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	if v := viper.GetString("output_dir"); v != "" {
		cfg.OutputDir = v
	}
	if v := viper.GetString("data_dir"); v != "" {
		cfg.DataDir = v
	}
	if viper.IsSet("retry.max_attempts") {
		cfg.Retry.MaxAttempts = viper.GetInt("retry.max_attempts")
	}
	return cfg
}

// newToolbox wires the cache, retry policy, source clients, and the
// market dataset into a Toolbox.
func newToolbox(cfg types.Config) (*tools.Toolbox, error) {
	dataset, err := market.Load()
	if err != nil {
		return nil, err
	}

	env := sources.Env{
		Cache: cache.New(cfg.Cache, log),
		Retry: pipeline.NewRetryPolicy(cfg.Retry, log),
		Log:   log,
	}
	return &tools.Toolbox{
		Trials:     sources.NewTrialsClient(cfg.Trials, env),
		Compound:   sources.NewCompoundClient(cfg.Compound, env),
		Labels:     sources.NewLabelClient(cfg.Label, env),
		Literature: sources.NewLiteratureClient(cfg.Literature, env),
		Market:     dataset,
	}, nil
}

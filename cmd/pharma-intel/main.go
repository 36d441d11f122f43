// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pharma-intel CLI.
// Each data source is a subcommand: trials, compound, label, events,
// literature, and market. The report command composes all of them into
// a single Markdown intelligence report.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-intel/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// log is the process-wide logger, configured in the root pre-run.
var log zerolog.Logger

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the pharma-intel CLI.
var rootCmd = &cobra.Command{
	Use:   "pharma-intel",
	Short: "Pharmaceutical data aggregation for agent-driven research",
	Long: `pharma-intel aggregates public pharmaceutical data sources: clinical
trial registries, compound databases, regulatory drug labels, adverse event
reports, and scientific literature. Each source is a subcommand; the report
command runs all of them for a drug and writes a Markdown intelligence report.

Responses are cached on disk, calls are rate limited per source, and
transient failures are retried with exponential backoff.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env values become process env before viper reads it.
		_ = godotenv.Load()

		level := zerolog.InfoLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		if secretDefault(secrets.NCBIAPIKey, viper.GetString("ncbi_api_key")) == "" {
			log.Warn().Msg("no NCBI API key configured; literature requests limited to 3/s")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pharma-intel.yaml or ~/.config/pharma-intel/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-cache", false, "bypass the response cache")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pharma-intel")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pharma-intel"))
		}
	}

	viper.SetEnvPrefix("PHARMA_INTEL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

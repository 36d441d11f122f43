// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for source clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pharma-intel/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RetryConfig holds the bounded exponential-backoff retry settings
// shared by all source clients.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts per call (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// InitialInterval is the wait before the first retry (default 2s).
	InitialInterval time.Duration `json:"initial_interval" yaml:"initial_interval"`

	// MinInterval and MaxInterval are the floor and ceiling on the
	// backoff wait (defaults 1s and 10s).
	MinInterval time.Duration `json:"min_interval" yaml:"min_interval"`
	MaxInterval time.Duration `json:"max_interval" yaml:"max_interval"`
}

// CacheConfig holds settings for the response cache.
type CacheConfig struct {
	// Dir is the cache directory (default "data/cache").
	Dir string `json:"dir" yaml:"dir"`

	// TTLHours is the entry time-to-live in hours (default 24).
	TTLHours int `json:"ttl_hours" yaml:"ttl_hours"`

	// Enabled turns caching on or off globally (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// TTL returns the configured time-to-live as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// SourceConfig holds per-source settings for one API client.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// RatePerSecond is the maximum call rate for this source.
	RatePerSecond float64 `json:"rate_per_second" yaml:"rate_per_second"`

	// MaxResults is the default maximum result count per query.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional credential for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// Config groups all settings for the retrieval layer.
type Config struct {
	Trials     SourceConfig `json:"trials" yaml:"trials"`
	Compound   SourceConfig `json:"compound" yaml:"compound"`
	Label      SourceConfig `json:"label" yaml:"label"`
	Literature SourceConfig `json:"literature" yaml:"literature"`

	Retry RetryConfig `json:"retry" yaml:"retry"`
	Cache CacheConfig `json:"cache" yaml:"cache"`

	// OutputDir is the directory for generated reports.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DataDir is the base directory for local state (history database).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Default rate ceilings in requests per second. The literature rate
// depends on whether an NCBI API key is configured.
const (
	DefaultTrialsRate            = 10.0
	DefaultCompoundRate          = 5.0
	DefaultLabelRate             = 10.0
	DefaultLiteratureRate        = 3.0
	DefaultLiteratureRateWithKey = 10.0
)

const defaultUserAgent = "pharma-intel/0.1"

// DefaultConfig returns a Config with every field populated with the
// documented defaults. ncbiKey, when non-empty, raises the literature
// rate ceiling and is sent with literature requests.
func DefaultConfig(ncbiKey string) Config {
	litRate := DefaultLiteratureRate
	if ncbiKey != "" {
		litRate = DefaultLiteratureRateWithKey
	}

	return Config{
		Trials: SourceConfig{
			HTTPConfig:    HTTPConfig{Timeout: 15 * time.Second, UserAgent: defaultUserAgent},
			RatePerSecond: DefaultTrialsRate,
			MaxResults:    10,
		},
		Compound: SourceConfig{
			HTTPConfig:    HTTPConfig{Timeout: 10 * time.Second, UserAgent: defaultUserAgent},
			RatePerSecond: DefaultCompoundRate,
			MaxResults:    10,
		},
		Label: SourceConfig{
			HTTPConfig:    HTTPConfig{Timeout: 15 * time.Second, UserAgent: defaultUserAgent},
			RatePerSecond: DefaultLabelRate,
			MaxResults:    5,
		},
		Literature: SourceConfig{
			HTTPConfig:    HTTPConfig{Timeout: 15 * time.Second, UserAgent: defaultUserAgent},
			RatePerSecond: litRate,
			MaxResults:    10,
			APIKey:        ncbiKey,
		},
		Retry: RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 2 * time.Second,
			MinInterval:     1 * time.Second,
			MaxInterval:     10 * time.Second,
		},
		Cache: CacheConfig{
			Dir:      "data/cache",
			TTLHours: 24,
			Enabled:  true,
		},
		OutputDir: "outputs",
		DataDir:   "data",
	}
}

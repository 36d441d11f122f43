// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pharma-intel/internal/cache"
	"github.com/pdiddy/pharma-intel/internal/pipeline"
	"github.com/pdiddy/pharma-intel/pkg/types"
)

// testEnv returns an Env with a temp-dir cache and millisecond retry
// waits. Rate limiting stays off in client configs so tests run fast.
func testEnv(t *testing.T) Env {
	t.Helper()
	log := zerolog.Nop()
	return Env{
		Cache: cache.New(types.CacheConfig{
			Dir:      t.TempDir(),
			TTLHours: 24,
			Enabled:  true,
		}, log),
		Retry: pipeline.NewRetryPolicy(types.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: time.Millisecond,
			MinInterval:     time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
		}, log),
		Log: log,
	}
}

func testSourceCfg(maxResults int) types.SourceConfig {
	return types.SourceConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "pharma-intel/test",
		},
		RatePerSecond: 0, // no rate limiting in tests
		MaxResults:    maxResults,
	}
}

func TestTruncateRuneBoundaries(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than budget", "abc", 10, "abc"},
		{"exactly at budget", "abcde", 5, "abcde"},
		{"ascii cut", "abcdef", 4, "abcd"},
		{"cut lands mid-rune", "ab€cd", 4, "ab"},
		{"cut on rune boundary", "ab€cd", 5, "ab€"},
		{"only multi-byte runes", strings.Repeat("€", 4), 7, "€€"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.max)
			}
		})
	}
}

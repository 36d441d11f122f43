// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("")

	assert.Equal(t, DefaultTrialsRate, cfg.Trials.RatePerSecond)
	assert.Equal(t, DefaultCompoundRate, cfg.Compound.RatePerSecond)
	assert.Equal(t, DefaultLabelRate, cfg.Label.RatePerSecond)
	assert.Equal(t, DefaultLiteratureRate, cfg.Literature.RatePerSecond)
	assert.Empty(t, cfg.Literature.APIKey)

	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Retry.InitialInterval)
	assert.Equal(t, time.Second, cfg.Retry.MinInterval)
	assert.Equal(t, 10*time.Second, cfg.Retry.MaxInterval)

	assert.Equal(t, "data/cache", cfg.Cache.Dir)
	assert.Equal(t, 24, cfg.Cache.TTLHours)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "outputs", cfg.OutputDir)
	assert.Equal(t, "data", cfg.DataDir)

	assert.Equal(t, 10*time.Second, cfg.Compound.Timeout)
	assert.Equal(t, 15*time.Second, cfg.Trials.Timeout)
}

func TestDefaultConfigWithNCBIKey(t *testing.T) {
	cfg := DefaultConfig("nk_123")

	assert.Equal(t, DefaultLiteratureRateWithKey, cfg.Literature.RatePerSecond)
	assert.Equal(t, "nk_123", cfg.Literature.APIKey)
}

func TestCacheTTL(t *testing.T) {
	c := CacheConfig{TTLHours: 24}
	assert.Equal(t, 24*time.Hour, c.TTL())
}

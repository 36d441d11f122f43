// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/pdiddy/pharma-intel/pkg/types"
)

// RetryPolicy retries a failing operation with exponentially increasing
// waits bounded by a floor and a ceiling. After exhausting all attempts
// the last error is returned unchanged; a success on any attempt
// returns normally, visible only in log output.
type RetryPolicy struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	log             zerolog.Logger
}

const defaultMaxAttempts = 3

// NewRetryPolicy builds a RetryPolicy from cfg, filling unset fields
// with the documented defaults.
func NewRetryPolicy(cfg types.RetryConfig, log zerolog.Logger) RetryPolicy {
	p := RetryPolicy{
		maxAttempts:     cfg.MaxAttempts,
		initialInterval: cfg.InitialInterval,
		maxInterval:     cfg.MaxInterval,
		log:             log,
	}
	if p.maxAttempts <= 0 {
		p.maxAttempts = defaultMaxAttempts
	}
	if p.initialInterval <= 0 {
		p.initialInterval = 2 * time.Second
	}
	if cfg.MinInterval > 0 && p.initialInterval < cfg.MinInterval {
		p.initialInterval = cfg.MinInterval
	}
	if p.maxInterval <= 0 {
		p.maxInterval = 10 * time.Second
	}
	return p
}

// Do runs op up to the configured attempt ceiling. name identifies the
// operation in log output.
func (p RetryPolicy) Do(ctx context.Context, name string, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initialInterval
	b.MaxInterval = p.maxInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	attempt := 0
	wrapped := func() error {
		attempt++
		err := op()
		if err != nil && attempt < p.maxAttempts {
			p.log.Warn().
				Str("op", name).
				Int("attempt", attempt).
				Int("max_attempts", p.maxAttempts).
				Err(err).
				Msg("call failed, retrying")
		}
		return err
	}

	return backoff.Retry(wrapped,
		backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.maxAttempts-1)), ctx))
}

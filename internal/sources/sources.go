// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources wraps the four external pharmaceutical APIs (trials
// registry, compound database, regulatory label database, literature
// index) behind clients that normalize each heterogeneous response
// into the stable record shapes in pkg/types.
//
// Every client operation follows the same pattern: check the cache and
// return immediately on a hit; otherwise acquire the operation's rate
// slot, run the retry-wrapped HTTP request, project the response into
// normalized records with defensively defaulted fields, cache the
// normalized result, and on any unrecoverable failure log it and
// return an empty result. No error escapes a client's public surface:
// callers treat "no results" and "failed" identically.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pharma-intel/internal/cache"
	"github.com/pdiddy/pharma-intel/internal/pipeline"
	"github.com/pdiddy/pharma-intel/pkg/types"
)

// Env bundles the collaborators every source client composes: the
// shared response cache, the retry policy, and the logger. Construct
// it once at process start and hand it to each client constructor.
type Env struct {
	Cache *cache.Store
	Retry pipeline.RetryPolicy
	Log   zerolog.Logger
}

// getJSON performs a GET against rawURL and decodes the JSON body into
// v. Non-200 statuses and decode failures are errors; the retry policy
// around the caller decides whether to try again.
func getJSON(ctx context.Context, client *http.Client, userAgent, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// decodeCached unmarshals a cached payload into out and reports whether
// it was usable. A corrupt payload falls through to a live fetch.
func decodeCached(raw json.RawMessage, out any) bool {
	return json.Unmarshal(raw, out) == nil
}

// orNA substitutes the placeholder for an absent string field.
func orNA(s string) string {
	if s == "" {
		return types.Placeholder
	}
	return s
}

// firstOrNA returns the first element of an upstream string array, or
// the placeholder when the array is absent or empty.
func firstOrNA(list []string) string {
	if len(list) == 0 {
		return types.Placeholder
	}
	return list[0]
}

// nonNil guarantees collection fields serialize as [] rather than null.
func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// truncate bounds a free-text field to max bytes, backing off to the
// nearest rune boundary so the result stays valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

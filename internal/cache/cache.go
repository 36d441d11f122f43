// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists normalized API responses on disk with lazy
// TTL expiry. Entries are content-addressed: the key is a SHA-256 hash
// of the source name and the raw query string, and each entry lives in
// its own JSON file under the cache directory.
//
// The directory is read and written without file locking. Concurrent
// processes sharing a cache directory can race on the same key; the
// store is designed for a single process.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pharma-intel/pkg/types"
)

// entry is the persisted unit: the normalized payload plus enough
// metadata to expire it and to clear by source.
type entry struct {
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
	Query     string          `json:"query"`
	Data      json.RawMessage `json:"data"`
}

// Store is a file-backed, TTL-expiring response cache.
type Store struct {
	dir     string
	ttl     time.Duration
	enabled bool
	log     zerolog.Logger

	// now is injectable so tests can simulate clock advance.
	now func() time.Time
}

// New creates the cache directory if needed and returns a Store. A
// directory creation failure disables the store rather than failing
// startup; a missing cache never blocks retrieval.
func New(cfg types.CacheConfig, log zerolog.Logger) *Store {
	s := &Store{
		dir:     cfg.Dir,
		ttl:     cfg.TTL(),
		enabled: cfg.Enabled,
		log:     log,
		now:     time.Now,
	}
	if s.enabled {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			log.Error().Err(err).Str("dir", s.dir).Msg("cache directory unavailable, caching disabled")
			s.enabled = false
		}
	}
	return s
}

// Key returns the deterministic cache key for a (source, query) pair.
// The inputs are case-sensitive and hashed as-is.
func Key(source, query string) string {
	h := sha256.Sum256([]byte(source + ":" + query))
	return hex.EncodeToString(h[:])
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the cached payload for (source, query) and true on a
// fresh hit. It returns false when caching is disabled, the entry is
// missing, unreadable, or older than the TTL. Expired and corrupt
// entries are deleted on the way out.
func (s *Store) Get(source, query string) (json.RawMessage, bool) {
	if !s.enabled {
		return nil, false
	}

	path := s.path(Key(source, query))
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Debug().Str("source", source).Str("query", clip(query)).Msg("cache miss")
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("corrupt cache entry, deleting")
		os.Remove(path)
		return nil, false
	}

	if s.now().Sub(e.Timestamp) > s.ttl {
		s.log.Debug().Str("source", source).Str("query", clip(query)).Msg("cache expired")
		os.Remove(path)
		return nil, false
	}

	s.log.Info().Str("source", source).Str("query", clip(query)).Msg("cache hit")
	return e.Data, true
}

// Set persists payload under the (source, query) key, overwriting any
// existing entry. Marshal and write errors are logged, never returned;
// a failed cache write must not fail the call that produced the data.
func (s *Store) Set(source, query string, payload any) {
	if !s.enabled {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error().Err(err).Str("source", source).Msg("cache payload not serializable")
		return
	}

	e := entry{
		Timestamp: s.now(),
		Source:    source,
		Query:     query,
		Data:      data,
	}
	out, err := json.MarshalIndent(&e, "", "  ")
	if err != nil {
		s.log.Error().Err(err).Str("source", source).Msg("cache entry marshal failed")
		return
	}

	path := s.path(Key(source, query))
	if err := os.WriteFile(path, out, 0o644); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("cache write failed")
		return
	}
	s.log.Debug().Str("source", source).Str("query", clip(query)).Msg("cached")
}

// Clear deletes all entries, or only entries recorded under source when
// source is non-empty, and returns the number removed. Unreadable files
// are skipped, not fatal.
func (s *Store) Clear(source string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("listing cache directory: %w", err)
	}

	deleted := 0
	for _, path := range matches {
		if source != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				s.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable cache entry")
				continue
			}
			var e entry
			if err := json.Unmarshal(data, &e); err != nil {
				s.log.Warn().Err(err).Str("path", path).Msg("skipping corrupt cache entry")
				continue
			}
			if e.Source != source {
				continue
			}
		}
		if err := os.Remove(path); err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("could not delete cache entry")
			continue
		}
		deleted++
	}

	s.log.Info().Int("deleted", deleted).Str("source", source).Msg("cache cleared")
	return deleted, nil
}

// Stats summarizes the cache contents for operational visibility.
type Stats struct {
	Entries    int           `json:"entries"`
	TotalBytes int64         `json:"total_bytes"`
	Enabled    bool          `json:"enabled"`
	TTL        time.Duration `json:"ttl"`
}

// Stats counts entries and their total size on disk.
func (s *Store) Stats() Stats {
	st := Stats{Enabled: s.enabled, TTL: s.ttl}
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return st
	}
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		st.Entries++
		st.TotalBytes += info.Size()
	}
	return st
}

// clip bounds query strings in log output, backing off to a rune
// boundary so clipped text stays valid UTF-8.
func clip(q string) string {
	if len(q) <= 50 {
		return q
	}
	cut := 50
	for cut > 0 && !utf8.RuneStart(q[cut]) {
		cut--
	}
	return q[:cut]
}

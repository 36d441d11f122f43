// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package market serves mock market intelligence for a fixed set of
// therapy areas from an embedded dataset. It stands in for a
// commercial market data feed; the lookup surface matches the source
// clients so the tool adapter layer treats it uniformly.
package market

import (
	_ "embed"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pharma-intel/pkg/types"
)

//go:embed data.yaml
var rawDataset []byte

// Dataset holds the therapy-area snapshots keyed by canonical area name.
type Dataset struct {
	areas map[string]types.MarketSnapshot
}

// Load parses the embedded dataset. It only fails if the embedded file
// is invalid, which is a build defect rather than a runtime condition.
func Load() (*Dataset, error) {
	var areas map[string]types.MarketSnapshot
	if err := yaml.Unmarshal(rawDataset, &areas); err != nil {
		return nil, err
	}
	for name, snap := range areas {
		snap.TherapyArea = name
		areas[name] = snap
	}
	return &Dataset{areas: areas}, nil
}

// Lookup resolves a therapy-area name to its snapshot. Matching is
// forgiving: the input is lowercased, spaces become underscores, and a
// substring match in either direction counts ("rare disease" finds
// "rare_diseases"). The second return value is false for unknown areas.
func (d *Dataset) Lookup(area string) (types.MarketSnapshot, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(area)), " ", "_")
	if normalized == "" {
		return types.MarketSnapshot{}, false
	}

	if snap, ok := d.areas[normalized]; ok {
		return snap, true
	}
	// Sorted iteration keeps the fallback deterministic when the input
	// matches more than one area.
	for _, name := range d.Areas() {
		if strings.Contains(normalized, name) || strings.Contains(name, normalized) {
			return d.areas[name], true
		}
	}
	return types.MarketSnapshot{}, false
}

// Areas returns the canonical therapy-area names, sorted.
func (d *Dataset) Areas() []string {
	names := make([]string, 0, len(d.areas))
	for name := range d.areas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pharma-intel/internal/pipeline"
	"github.com/pdiddy/pharma-intel/pkg/types"
)

// pubchemAPIBase is the compound database PUG REST endpoint. Declared
// as a var so tests can substitute an httptest server.
var pubchemAPIBase = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"

const (
	compoundSource = "pubchem"

	// maxSynonyms bounds the synonym list carried on a record.
	maxSynonyms = 15

	// descriptionBudget bounds the free-text description excerpt.
	descriptionBudget = 500

	compoundProperties = "MolecularFormula,MolecularWeight,CanonicalSMILES,IUPACName,InChI,InChIKey"
)

// CompoundClient resolves drug names against the compound database.
// A lookup is a chain of dependent calls: name to identifier, then
// properties, synonyms, and description for that identifier.
type CompoundClient struct {
	client  *http.Client
	cfg     types.SourceConfig
	env     Env
	log     zerolog.Logger
	limiter *pipeline.Limiter
}

// NewCompoundClient builds a CompoundClient around the shared environment.
func NewCompoundClient(cfg types.SourceConfig, env Env) *CompoundClient {
	return &CompoundClient{
		client:  &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		env:     env,
		log:     env.Log.With().Str("source", compoundSource).Logger(),
		limiter: pipeline.NewLimiter(cfg.RatePerSecond),
	}
}

// GetByName resolves a compound name to a normalized record. The
// second return value is false when the name does not resolve or the
// lookup failed; the identifier resolution failing short-circuits the
// three dependent calls. One rate slot covers the whole chain.
func (c *CompoundClient) GetByName(ctx context.Context, name string) (types.Compound, bool) {
	if raw, ok := c.env.Cache.Get(compoundSource, name); ok {
		var compound types.Compound
		if decodeCached(raw, &compound) {
			return compound, true
		}
	}

	var (
		compound types.Compound
		found    bool
	)
	err := pipeline.Execute(ctx, c.limiter, c.env.Retry, "compound.get_by_name", func() error {
		var err error
		compound, found, err = c.lookup(ctx, name)
		return err
	})
	if err != nil {
		c.log.Error().Err(err).Str("name", name).Msg("compound lookup failed, returning no result")
		return types.Compound{}, false
	}
	if !found {
		c.log.Warn().Str("name", name).Msg("no compound identifier for name")
		return types.Compound{}, false
	}

	c.env.Cache.Set(compoundSource, name, compound)
	return compound, true
}

// lookup performs the identifier resolution and the dependent calls.
// found=false with a nil error is the soft-miss path: the name simply
// has no identifier, which must not trigger a retry.
func (c *CompoundClient) lookup(ctx context.Context, name string) (types.Compound, bool, error) {
	cidURL := fmt.Sprintf("%s/compound/name/%s/cids/JSON", pubchemAPIBase, url.PathEscape(name))
	var cids cidResponse
	if err := getJSON(ctx, c.client, c.cfg.UserAgent, cidURL, &cids); err != nil {
		return types.Compound{}, false, fmt.Errorf("identifier lookup: %w", err)
	}
	if len(cids.IdentifierList.CID) == 0 {
		return types.Compound{}, false, nil
	}
	cid := cids.IdentifierList.CID[0]

	propsURL := fmt.Sprintf("%s/compound/cid/%d/property/%s/JSON", pubchemAPIBase, cid, compoundProperties)
	var props propertyResponse
	if err := getJSON(ctx, c.client, c.cfg.UserAgent, propsURL, &props); err != nil {
		return types.Compound{}, false, fmt.Errorf("properties fetch: %w", err)
	}

	synURL := fmt.Sprintf("%s/compound/cid/%d/synonyms/JSON", pubchemAPIBase, cid)
	var syns synonymResponse
	if err := getJSON(ctx, c.client, c.cfg.UserAgent, synURL, &syns); err != nil {
		return types.Compound{}, false, fmt.Errorf("synonyms fetch: %w", err)
	}

	// The description record is optional upstream; a failure here
	// defaults the field instead of failing the lookup.
	description := types.Placeholder
	descURL := fmt.Sprintf("%s/compound/cid/%d/description/JSON", pubchemAPIBase, cid)
	var desc descriptionResponse
	if err := getJSON(ctx, c.client, c.cfg.UserAgent, descURL, &desc); err != nil {
		c.log.Debug().Err(err).Int64("cid", cid).Msg("description unavailable")
	} else {
		for _, info := range desc.InformationList.Information {
			if info.Description != "" {
				description = truncate(info.Description, descriptionBudget)
				break
			}
		}
	}

	return normalizeCompound(cid, props, syns, description), true, nil
}

// Compound database JSON structures.
type cidResponse struct {
	IdentifierList struct {
		CID []int64 `json:"CID"`
	} `json:"IdentifierList"`
}

type propertyResponse struct {
	PropertyTable struct {
		Properties []compoundProperty `json:"Properties"`
	} `json:"PropertyTable"`
}

// compoundProperty mirrors the PUG REST property table row. The
// molecular weight arrives as a JSON string.
type compoundProperty struct {
	MolecularFormula string `json:"MolecularFormula"`
	MolecularWeight  string `json:"MolecularWeight"`
	CanonicalSMILES  string `json:"CanonicalSMILES"`
	IUPACName        string `json:"IUPACName"`
	InChI            string `json:"InChI"`
	InChIKey         string `json:"InChIKey"`
}

type synonymResponse struct {
	InformationList struct {
		Information []struct {
			Synonym []string `json:"Synonym"`
		} `json:"Information"`
	} `json:"InformationList"`
}

type descriptionResponse struct {
	InformationList struct {
		Information []struct {
			Description string `json:"Description"`
		} `json:"Information"`
	} `json:"InformationList"`
}

// normalizeCompound projects the three dependent responses into a
// Compound with every field defaulted.
func normalizeCompound(cid int64, props propertyResponse, syns synonymResponse, description string) types.Compound {
	var p compoundProperty
	if len(props.PropertyTable.Properties) > 0 {
		p = props.PropertyTable.Properties[0]
	}

	var synonyms []string
	if len(syns.InformationList.Information) > 0 {
		synonyms = syns.InformationList.Information[0].Synonym
	}
	if len(synonyms) > maxSynonyms {
		synonyms = synonyms[:maxSynonyms]
	}

	return types.Compound{
		CID:              cid,
		MolecularFormula: orNA(p.MolecularFormula),
		MolecularWeight:  orNA(p.MolecularWeight),
		IUPACName:        orNA(p.IUPACName),
		CanonicalSMILES:  orNA(p.CanonicalSMILES),
		InChI:            orNA(p.InChI),
		InChIKey:         orNA(p.InChIKey),
		Synonyms:         nonNil(synonyms),
		Description:      orNA(description),
		URL:              fmt.Sprintf("https://pubchem.ncbi.nlm.nih.gov/compound/%d", cid),
	}
}

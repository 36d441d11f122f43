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

// fdaAPIBase is the regulatory label database endpoint. Declared as a
// var so tests can substitute an httptest server.
var fdaAPIBase = "https://api.fda.gov/drug"

const (
	labelSource = "fda_labels"
	eventSource = "fda_events"

	// Free-text section budgets.
	indicationsBudget = 800
	sectionBudget     = 500

	// maxReactions bounds the reaction terms kept per event report.
	maxReactions = 10
)

// LabelClient queries the regulatory label database. One search covers
// both the brand and generic name fields in a single OR-combined
// request.
type LabelClient struct {
	client *http.Client
	cfg    types.SourceConfig
	env    Env
	log    zerolog.Logger

	labelLimiter *pipeline.Limiter
	eventLimiter *pipeline.Limiter
}

// NewLabelClient builds a LabelClient around the shared environment.
func NewLabelClient(cfg types.SourceConfig, env Env) *LabelClient {
	return &LabelClient{
		client:       &http.Client{Timeout: cfg.Timeout},
		cfg:          cfg,
		env:          env,
		log:          env.Log.With().Str("source", labelSource).Logger(),
		labelLimiter: pipeline.NewLimiter(cfg.RatePerSecond),
		eventLimiter: pipeline.NewLimiter(cfg.RatePerSecond),
	}
}

// SearchLabels returns regulatory labels matching the drug name in
// either the brand or generic name field. Failures degrade to an
// empty slice.
func (c *LabelClient) SearchLabels(ctx context.Context, drug string, limit int) []types.Label {
	if limit <= 0 {
		limit = c.cfg.MaxResults
	}
	cacheQuery := fmt.Sprintf("%s_%d", drug, limit)

	if raw, ok := c.env.Cache.Get(labelSource, cacheQuery); ok {
		var labels []types.Label
		if decodeCached(raw, &labels) {
			return labels
		}
	}

	params := url.Values{
		"search": {fmt.Sprintf(`openfda.brand_name:"%s" OR openfda.generic_name:"%s"`, drug, drug)},
		"limit":  {fmt.Sprintf("%d", limit)},
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	reqURL := fdaAPIBase + "/label.json?" + params.Encode()

	var resp labelResponse
	err := pipeline.Execute(ctx, c.labelLimiter, c.env.Retry, "labels.search", func() error {
		resp = labelResponse{}
		return getJSON(ctx, c.client, c.cfg.UserAgent, reqURL, &resp)
	})
	if err != nil {
		c.log.Error().Err(err).Str("drug", drug).Msg("label search failed, returning empty result")
		return []types.Label{}
	}

	labels := make([]types.Label, 0, len(resp.Results))
	for _, r := range resp.Results {
		labels = append(labels, normalizeLabel(r))
	}
	c.log.Info().Int("count", len(labels)).Str("drug", drug).Msg("labels fetched")

	c.env.Cache.Set(labelSource, cacheQuery, labels)
	return labels
}

// SearchAdverseEvents returns adverse event report summaries for the
// drug. Failures degrade to an empty slice.
func (c *LabelClient) SearchAdverseEvents(ctx context.Context, drug string, limit int) []types.AdverseEvent {
	if limit <= 0 {
		limit = c.cfg.MaxResults
	}
	cacheQuery := fmt.Sprintf("events_%s_%d", drug, limit)

	if raw, ok := c.env.Cache.Get(eventSource, cacheQuery); ok {
		var events []types.AdverseEvent
		if decodeCached(raw, &events) {
			return events
		}
	}

	params := url.Values{
		"search": {fmt.Sprintf(`patient.drug.medicinalproduct:"%s"`, drug)},
		"limit":  {fmt.Sprintf("%d", limit)},
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	reqURL := fdaAPIBase + "/event.json?" + params.Encode()

	var resp eventResponse
	err := pipeline.Execute(ctx, c.eventLimiter, c.env.Retry, "labels.adverse_events", func() error {
		resp = eventResponse{}
		return getJSON(ctx, c.client, c.cfg.UserAgent, reqURL, &resp)
	})
	if err != nil {
		c.log.Error().Err(err).Str("drug", drug).Msg("adverse event search failed, returning empty result")
		return []types.AdverseEvent{}
	}

	events := make([]types.AdverseEvent, 0, len(resp.Results))
	for _, r := range resp.Results {
		events = append(events, normalizeEvent(r))
	}
	c.log.Info().Int("count", len(events)).Str("drug", drug).Msg("adverse events fetched")

	c.env.Cache.Set(eventSource, cacheQuery, events)
	return events
}

// Label database JSON structures.
type labelResponse struct {
	Results []labelResult `json:"results"`
}

type labelResult struct {
	OpenFDA                 openFDAFields `json:"openfda"`
	IndicationsAndUsage     []string      `json:"indications_and_usage"`
	DosageAndAdministration []string      `json:"dosage_and_administration"`
	Warnings                []string      `json:"warnings"`
	AdverseReactions        []string      `json:"adverse_reactions"`
}

type openFDAFields struct {
	BrandName        []string `json:"brand_name"`
	GenericName      []string `json:"generic_name"`
	ManufacturerName []string `json:"manufacturer_name"`
	ProductType      []string `json:"product_type"`
	Route            []string `json:"route"`
	SubstanceName    []string `json:"substance_name"`
}

type eventResponse struct {
	Results []eventResult `json:"results"`
}

type eventResult struct {
	SafetyReportID string `json:"safetyreportid"`
	Serious        string `json:"serious"`
	ReceiveDate    string `json:"receivedate"`
	Patient        struct {
		Reaction []struct {
			ReactionMedDRAPT string `json:"reactionmeddrapt"`
		} `json:"reaction"`
	} `json:"patient"`
}

// normalizeLabel projects one label result, taking the first element
// of each openfda array and truncating the free-text sections.
func normalizeLabel(r labelResult) types.Label {
	return types.Label{
		BrandName:        firstOrNA(r.OpenFDA.BrandName),
		GenericName:      firstOrNA(r.OpenFDA.GenericName),
		Manufacturer:     firstOrNA(r.OpenFDA.ManufacturerName),
		ProductType:      firstOrNA(r.OpenFDA.ProductType),
		Routes:           nonNil(r.OpenFDA.Route),
		Substances:       nonNil(r.OpenFDA.SubstanceName),
		Indications:      truncate(firstOrNA(r.IndicationsAndUsage), indicationsBudget),
		Dosage:           truncate(firstOrNA(r.DosageAndAdministration), sectionBudget),
		Warnings:         truncate(firstOrNA(r.Warnings), sectionBudget),
		AdverseReactions: truncate(firstOrNA(r.AdverseReactions), sectionBudget),
	}
}

func normalizeEvent(r eventResult) types.AdverseEvent {
	reactions := make([]string, 0, len(r.Patient.Reaction))
	for _, reaction := range r.Patient.Reaction {
		if reaction.ReactionMedDRAPT != "" {
			reactions = append(reactions, reaction.ReactionMedDRAPT)
		}
		if len(reactions) == maxReactions {
			break
		}
	}

	return types.AdverseEvent{
		ReportID:    orNA(r.SafetyReportID),
		Reactions:   reactions,
		Serious:     orNA(r.Serious),
		ReceiveDate: orNA(r.ReceiveDate),
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pharma-intel/internal/pipeline"
	"github.com/pdiddy/pharma-intel/pkg/types"
)

// trialsAPIBase is the clinical trials registry endpoint. Declared as
// a var so tests can substitute an httptest server.
var trialsAPIBase = "https://clinicaltrials.gov/api/v2/studies"

const (
	trialsSource = "clinical_trials"

	// trialsPageCap is the registry's maximum page size.
	trialsPageCap = 100

	// summaryBudget bounds the brief summary excerpt.
	summaryBudget = 500
)

// TrialsClient queries the clinical trials registry.
type TrialsClient struct {
	client *http.Client
	cfg    types.SourceConfig
	env    Env
	log    zerolog.Logger

	// One limiter per operation; the two searches are rate-limited
	// independently.
	condLimiter *pipeline.Limiter
	intrLimiter *pipeline.Limiter
}

// NewTrialsClient builds a TrialsClient around the shared environment.
func NewTrialsClient(cfg types.SourceConfig, env Env) *TrialsClient {
	return &TrialsClient{
		client:      &http.Client{Timeout: cfg.Timeout},
		cfg:         cfg,
		env:         env,
		log:         env.Log.With().Str("source", trialsSource).Logger(),
		condLimiter: pipeline.NewLimiter(cfg.RatePerSecond),
		intrLimiter: pipeline.NewLimiter(cfg.RatePerSecond),
	}
}

// SearchByCondition returns trials studying the given disease or
// condition, optionally filtered by overall status (e.g. "RECRUITING").
// Failures degrade to an empty slice.
func (c *TrialsClient) SearchByCondition(ctx context.Context, condition, status string) []types.Trial {
	cacheQuery := fmt.Sprintf("%s_%d_%s", condition, c.cfg.MaxResults, status)

	if raw, ok := c.env.Cache.Get(trialsSource, cacheQuery); ok {
		var trials []types.Trial
		if decodeCached(raw, &trials) {
			return trials
		}
	}

	params := url.Values{
		"query.cond": {condition},
		"pageSize":   {fmt.Sprintf("%d", pageSize(c.cfg.MaxResults))},
		"format":     {"json"},
	}
	if status != "" {
		params.Set("filter.overallStatus", status)
	}

	trials := c.fetch(ctx, c.condLimiter, "trials.search_by_condition", params)
	if trials == nil {
		return []types.Trial{}
	}

	c.env.Cache.Set(trialsSource, cacheQuery, trials)
	return trials
}

// SearchByIntervention returns trials testing the given drug or
// intervention name. Failures degrade to an empty slice.
func (c *TrialsClient) SearchByIntervention(ctx context.Context, drug string) []types.Trial {
	cacheQuery := fmt.Sprintf("drug_%s_%d", drug, c.cfg.MaxResults)

	if raw, ok := c.env.Cache.Get(trialsSource, cacheQuery); ok {
		var trials []types.Trial
		if decodeCached(raw, &trials) {
			return trials
		}
	}

	params := url.Values{
		"query.intr": {drug},
		"pageSize":   {fmt.Sprintf("%d", pageSize(c.cfg.MaxResults))},
		"format":     {"json"},
	}

	trials := c.fetch(ctx, c.intrLimiter, "trials.search_by_intervention", params)
	if trials == nil {
		return []types.Trial{}
	}

	c.env.Cache.Set(trialsSource, cacheQuery, trials)
	return trials
}

// fetch runs the rate-limited, retry-wrapped registry request and
// normalizes the studies. It returns nil after an unrecoverable
// failure so callers can distinguish "degraded" from "cached empty".
func (c *TrialsClient) fetch(ctx context.Context, lim *pipeline.Limiter, op string, params url.Values) []types.Trial {
	reqURL := trialsAPIBase + "?" + params.Encode()

	var resp studiesResponse
	err := pipeline.Execute(ctx, lim, c.env.Retry, op, func() error {
		resp = studiesResponse{}
		return getJSON(ctx, c.client, c.cfg.UserAgent, reqURL, &resp)
	})
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Msg("registry request failed, returning empty result")
		return nil
	}

	trials := make([]types.Trial, 0, len(resp.Studies))
	for _, s := range resp.Studies {
		trials = append(trials, normalizeStudy(s))
	}
	c.log.Info().Int("count", len(trials)).Str("op", op).Msg("trials fetched")
	return trials
}

func pageSize(maxResults int) int {
	if maxResults <= 0 || maxResults > trialsPageCap {
		return trialsPageCap
	}
	return maxResults
}

// Registry JSON structures. The protocol section nests fields under
// optional sub-objects; absent ones decode to zero values and the
// normalizer fills placeholders.
type studiesResponse struct {
	Studies []study `json:"studies"`
}

type study struct {
	ProtocolSection protocolSection `json:"protocolSection"`
}

type protocolSection struct {
	Identification    identificationModule    `json:"identificationModule"`
	Status            statusModule            `json:"statusModule"`
	Description       descriptionModule       `json:"descriptionModule"`
	Conditions        conditionsModule        `json:"conditionsModule"`
	Design            designModule            `json:"designModule"`
	ArmsInterventions armsInterventionsModule `json:"armsInterventionsModule"`
}

type identificationModule struct {
	NCTID      string `json:"nctId"`
	BriefTitle string `json:"briefTitle"`
}

type statusModule struct {
	OverallStatus        string     `json:"overallStatus"`
	StartDateStruct      dateStruct `json:"startDateStruct"`
	CompletionDateStruct dateStruct `json:"completionDateStruct"`
}

type dateStruct struct {
	Date string `json:"date"`
}

type descriptionModule struct {
	BriefSummary string `json:"briefSummary"`
}

type conditionsModule struct {
	Conditions []string `json:"conditions"`
}

type designModule struct {
	Phases         []string       `json:"phases"`
	EnrollmentInfo enrollmentInfo `json:"enrollmentInfo"`
}

type enrollmentInfo struct {
	Count int `json:"count"`
}

type armsInterventionsModule struct {
	Interventions []intervention `json:"interventions"`
}

type intervention struct {
	Name string `json:"name"`
}

// normalizeStudy projects one registry study into a Trial, defaulting
// every absent field so downstream formatting never null-checks.
func normalizeStudy(s study) types.Trial {
	p := s.ProtocolSection

	interventions := make([]string, 0, len(p.ArmsInterventions.Interventions))
	for _, iv := range p.ArmsInterventions.Interventions {
		interventions = append(interventions, orNA(iv.Name))
	}

	phase := types.Placeholder
	if len(p.Design.Phases) > 0 {
		phase = strings.Join(p.Design.Phases, ", ")
	}

	enrollment := types.Placeholder
	if p.Design.EnrollmentInfo.Count > 0 {
		enrollment = fmt.Sprintf("%d", p.Design.EnrollmentInfo.Count)
	}

	trialURL := types.Placeholder
	if p.Identification.NCTID != "" {
		trialURL = "https://clinicaltrials.gov/study/" + p.Identification.NCTID
	}

	return types.Trial{
		NCTID:          orNA(p.Identification.NCTID),
		Title:          orNA(p.Identification.BriefTitle),
		Status:         orNA(p.Status.OverallStatus),
		Phase:          phase,
		Conditions:     nonNil(p.Conditions.Conditions),
		Interventions:  interventions,
		BriefSummary:   truncate(orNA(p.Description.BriefSummary), summaryBudget),
		StartDate:      orNA(p.Status.StartDateStruct.Date),
		CompletionDate: orNA(p.Status.CompletionDateStruct.Date),
		Enrollment:     enrollment,
		URL:            trialURL,
	}
}

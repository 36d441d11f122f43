// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pharma-intel/internal/pipeline"
	"github.com/pdiddy/pharma-intel/pkg/types"
)

// pubmedAPIBase is the literature index E-utilities endpoint. Declared
// as a var so tests can substitute an httptest server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	literatureSearchSource  = "pubmed_search"
	literatureDetailsSource = "pubmed_details"

	// maxAuthors bounds the author list carried on an article record.
	maxAuthors = 5
)

// LiteratureClient queries the literature index in two phases: a
// search returning article identifiers, then a bulk detail fetch for
// a list of identifiers.
type LiteratureClient struct {
	client *http.Client
	cfg    types.SourceConfig
	env    Env
	log    zerolog.Logger

	searchLimiter *pipeline.Limiter
	detailLimiter *pipeline.Limiter
}

// NewLiteratureClient builds a LiteratureClient around the shared
// environment. cfg.APIKey, when set, is sent with every request for
// the higher rate ceiling.
func NewLiteratureClient(cfg types.SourceConfig, env Env) *LiteratureClient {
	return &LiteratureClient{
		client:        &http.Client{Timeout: cfg.Timeout},
		cfg:           cfg,
		env:           env,
		log:           env.Log.With().Str("source", literatureSearchSource).Logger(),
		searchLimiter: pipeline.NewLimiter(cfg.RatePerSecond),
		detailLimiter: pipeline.NewLimiter(cfg.RatePerSecond),
	}
}

// SearchArticles returns the identifiers of articles matching the
// query, ordered by the requested sort ("relevance" or "date").
// Failures degrade to an empty slice.
func (c *LiteratureClient) SearchArticles(ctx context.Context, query, sort string) []string {
	if sort == "" {
		sort = "relevance"
	}
	cacheQuery := fmt.Sprintf("%s_%d_%s", query, c.cfg.MaxResults, sort)

	if raw, ok := c.env.Cache.Get(literatureSearchSource, cacheQuery); ok {
		var pmids []string
		if decodeCached(raw, &pmids) {
			return pmids
		}
	}

	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmax":  {fmt.Sprintf("%d", c.cfg.MaxResults)},
		"retmode": {"json"},
		"sort":    {sort},
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	reqURL := pubmedAPIBase + "/esearch.fcgi?" + params.Encode()

	var resp esearchResponse
	err := pipeline.Execute(ctx, c.searchLimiter, c.env.Retry, "literature.search", func() error {
		resp = esearchResponse{}
		return getJSON(ctx, c.client, c.cfg.UserAgent, reqURL, &resp)
	})
	if err != nil {
		c.log.Error().Err(err).Str("query", query).Msg("literature search failed, returning empty result")
		return []string{}
	}

	pmids := nonNil(resp.ESearchResult.IDList)
	c.log.Info().Int("count", len(pmids)).Str("query", query).Msg("articles found")

	c.env.Cache.Set(literatureSearchSource, cacheQuery, pmids)
	return pmids
}

// FetchDetails returns normalized article records for the given
// identifiers in one bulk request. Identifiers that do not resolve in
// the response are silently dropped; the resolved subset preserves
// input order. Failures degrade to an empty slice.
func (c *LiteratureClient) FetchDetails(ctx context.Context, pmids []string) []types.Article {
	if len(pmids) == 0 {
		return []types.Article{}
	}
	cacheQuery := strings.Join(pmids, "_")

	if raw, ok := c.env.Cache.Get(literatureDetailsSource, cacheQuery); ok {
		var articles []types.Article
		if decodeCached(raw, &articles) {
			return articles
		}
	}

	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"json"},
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	reqURL := pubmedAPIBase + "/esummary.fcgi?" + params.Encode()

	var resp esummaryResponse
	err := pipeline.Execute(ctx, c.detailLimiter, c.env.Retry, "literature.details", func() error {
		resp = esummaryResponse{}
		return getJSON(ctx, c.client, c.cfg.UserAgent, reqURL, &resp)
	})
	if err != nil {
		c.log.Error().Err(err).Int("pmids", len(pmids)).Msg("detail fetch failed, returning empty result")
		return []types.Article{}
	}

	articles := make([]types.Article, 0, len(pmids))
	for _, pmid := range pmids {
		raw, ok := resp.Result[pmid]
		if !ok {
			continue
		}
		var summary articleSummary
		if err := json.Unmarshal(raw, &summary); err != nil {
			// uids and error stubs share the result map with articles.
			continue
		}
		if summary.Title == "" && len(summary.Authors) == 0 {
			continue
		}
		articles = append(articles, normalizeArticle(pmid, summary))
	}
	c.log.Info().Int("requested", len(pmids)).Int("resolved", len(articles)).Msg("article details fetched")

	c.env.Cache.Set(literatureDetailsSource, cacheQuery, articles)
	return articles
}

// Literature index JSON structures. The esummary result is a map keyed
// by identifier, plus a "uids" bookkeeping entry, so values decode
// lazily per identifier.
type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type articleSummary struct {
	Title           string `json:"title"`
	FullJournalName string `json:"fulljournalname"`
	PubDate         string `json:"pubdate"`
	Volume          string `json:"volume"`
	Issue           string `json:"issue"`
	Pages           string `json:"pages"`
	ELocationID     string `json:"elocationid"`
	Authors         []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

// normalizeArticle projects one summary into an Article with every
// field defaulted.
func normalizeArticle(pmid string, s articleSummary) types.Article {
	authors := make([]string, 0, maxAuthors)
	for _, a := range s.Authors {
		if a.Name == "" {
			continue
		}
		authors = append(authors, a.Name)
		if len(authors) == maxAuthors {
			break
		}
	}

	return types.Article{
		PMID:    pmid,
		Title:   orNA(s.Title),
		Authors: authors,
		Journal: orNA(s.FullJournalName),
		PubDate: orNA(s.PubDate),
		Volume:  orNA(s.Volume),
		Issue:   orNA(s.Issue),
		Pages:   orNA(s.Pages),
		DOI:     orNA(s.ELocationID),
		URL:     fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", pmid),
	}
}

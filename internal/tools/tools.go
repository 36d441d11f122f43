// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tools formats source client results as natural-language
// text for consumption by a text-generation agent. Each adapter takes
// one string parameter and returns one string: that pair is the entire
// boundary the agent layer sees.
//
// Adapters enumerate results in the exact order the source client
// returned them and never re-sort. An empty result always produces a
// descriptive "not found" sentence rather than an empty string, so the
// consuming agent can observe and reason about the negative result.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/pharma-intel/internal/market"
	"github.com/pdiddy/pharma-intel/pkg/types"
)

// Enumeration caps per adapter.
const (
	maxTrialLines   = 10
	maxLabelLines   = 3
	maxEventLines   = 5
	maxArticleLines = 10
	maxListedItems  = 3
)

// TrialSearcher finds clinical trials by condition or intervention.
// Implemented by sources.TrialsClient.
type TrialSearcher interface {
	SearchByCondition(ctx context.Context, condition, status string) []types.Trial
	SearchByIntervention(ctx context.Context, drug string) []types.Trial
}

// CompoundResolver resolves a drug name to its chemical record.
// Implemented by sources.CompoundClient.
type CompoundResolver interface {
	GetByName(ctx context.Context, name string) (types.Compound, bool)
}

// LabelSearcher finds regulatory labels and adverse event reports.
// Implemented by sources.LabelClient.
type LabelSearcher interface {
	SearchLabels(ctx context.Context, drug string, limit int) []types.Label
	SearchAdverseEvents(ctx context.Context, drug string, limit int) []types.AdverseEvent
}

// ArticleFinder runs the two-phase literature lookup.
// Implemented by sources.LiteratureClient.
type ArticleFinder interface {
	SearchArticles(ctx context.Context, query, sort string) []string
	FetchDetails(ctx context.Context, pmids []string) []types.Article
}

// Toolbox binds the adapters to the source clients and the market
// dataset. Adapters hold no state of their own.
type Toolbox struct {
	Trials     TrialSearcher
	Compound   CompoundResolver
	Labels     LabelSearcher
	Literature ArticleFinder
	Market     *market.Dataset
}

// TrialsByCondition formats clinical trials studying a condition.
func (t *Toolbox) TrialsByCondition(ctx context.Context, condition string) string {
	trials := t.Trials.SearchByCondition(ctx, condition, "")
	if len(trials) == 0 {
		return fmt.Sprintf("No clinical trials found for condition: %s", condition)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d clinical trials for %s:\n\n", len(trials), condition)
	for i, tr := range capTrials(trials) {
		writeTrial(&b, i+1, tr, true)
	}
	return b.String()
}

// TrialsByDrug formats clinical trials testing a drug or intervention.
func (t *Toolbox) TrialsByDrug(ctx context.Context, drug string) string {
	trials := t.Trials.SearchByIntervention(ctx, drug)
	if len(trials) == 0 {
		return fmt.Sprintf("No clinical trials found for drug: %s", drug)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d trials testing %s:\n\n", len(trials), drug)
	for i, tr := range capTrials(trials) {
		writeTrial(&b, i+1, tr, false)
	}
	return b.String()
}

func capTrials(trials []types.Trial) []types.Trial {
	if len(trials) > maxTrialLines {
		return trials[:maxTrialLines]
	}
	return trials
}

func writeTrial(b *strings.Builder, rank int, tr types.Trial, withInterventions bool) {
	fmt.Fprintf(b, "%d. %s\n", rank, tr.Title)
	fmt.Fprintf(b, "   NCT ID: %s\n", tr.NCTID)
	fmt.Fprintf(b, "   Status: %s\n", tr.Status)
	fmt.Fprintf(b, "   Phase: %s\n", tr.Phase)
	fmt.Fprintf(b, "   Conditions: %s\n", joinCapped(tr.Conditions))
	if withInterventions {
		fmt.Fprintf(b, "   Interventions: %s\n", joinCapped(tr.Interventions))
	}
	fmt.Fprintf(b, "   URL: %s\n\n", tr.URL)
}

// DrugProperties formats the chemical record for a drug name.
func (t *Toolbox) DrugProperties(ctx context.Context, drug string) string {
	compound, ok := t.Compound.GetByName(ctx, drug)
	if !ok {
		return fmt.Sprintf("Could not find compound information for: %s", drug)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Drug properties for %s:\n\n", drug)
	fmt.Fprintf(&b, "- PubChem CID: %d\n", compound.CID)
	fmt.Fprintf(&b, "- Molecular Formula: %s\n", compound.MolecularFormula)
	fmt.Fprintf(&b, "- Molecular Weight: %s g/mol\n", compound.MolecularWeight)
	fmt.Fprintf(&b, "- IUPAC Name: %s\n", compound.IUPACName)
	fmt.Fprintf(&b, "- Canonical SMILES: %s\n", compound.CanonicalSMILES)
	fmt.Fprintf(&b, "- InChI Key: %s\n", compound.InChIKey)
	fmt.Fprintf(&b, "- Common Synonyms: %s\n", joinCapped(compound.Synonyms[:min(len(compound.Synonyms), 5)]))
	if compound.Description != types.Placeholder {
		fmt.Fprintf(&b, "- Description: %s\n", compound.Description)
	}
	fmt.Fprintf(&b, "- PubChem URL: %s\n", compound.URL)
	return b.String()
}

// DrugLabelInfo formats regulatory label records for a drug name.
func (t *Toolbox) DrugLabelInfo(ctx context.Context, drug string) string {
	labels := t.Labels.SearchLabels(ctx, drug, maxLabelLines)
	if len(labels) == 0 {
		return fmt.Sprintf("No FDA label information found for: %s", drug)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "FDA-approved drug information for %s:\n\n", drug)
	for i, l := range labels {
		fmt.Fprintf(&b, "%d. %s\n", i+1, l.BrandName)
		fmt.Fprintf(&b, "   Generic Name: %s\n", l.GenericName)
		fmt.Fprintf(&b, "   Manufacturer: %s\n", l.Manufacturer)
		fmt.Fprintf(&b, "   Product Type: %s\n", l.ProductType)
		if len(l.Routes) > 0 {
			fmt.Fprintf(&b, "   Routes of Administration: %s\n", strings.Join(l.Routes, ", "))
		}
		if len(l.Substances) > 0 {
			fmt.Fprintf(&b, "   Active Substances: %s\n", joinCapped(l.Substances))
		}
		fmt.Fprintf(&b, "\n   Indications and Usage:\n   %s\n", l.Indications)
		if l.Dosage != types.Placeholder {
			fmt.Fprintf(&b, "\n   Dosage Information:\n   %s\n", l.Dosage)
		}
		if l.Warnings != types.Placeholder {
			fmt.Fprintf(&b, "\n   Warnings:\n   %s\n", l.Warnings)
		}
		fmt.Fprintf(&b, "\n%s\n\n", strings.Repeat("=", 50))
	}
	return b.String()
}

// AdverseEventSummary formats recent adverse event reports for a drug.
func (t *Toolbox) AdverseEventSummary(ctx context.Context, drug string) string {
	events := t.Labels.SearchAdverseEvents(ctx, drug, maxEventLines)
	if len(events) == 0 {
		return fmt.Sprintf("No adverse event reports found for: %s", drug)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d adverse event reports for %s:\n\n", len(events), drug)
	for i, e := range events {
		fmt.Fprintf(&b, "%d. Report %s\n", i+1, e.ReportID)
		fmt.Fprintf(&b, "   Serious: %s\n", e.Serious)
		fmt.Fprintf(&b, "   Received: %s\n", e.ReceiveDate)
		if len(e.Reactions) > 0 {
			fmt.Fprintf(&b, "   Reactions: %s\n", strings.Join(e.Reactions, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// LiteratureSearch runs the two-phase literature lookup and formats
// the resolved articles.
func (t *Toolbox) LiteratureSearch(ctx context.Context, query string) string {
	pmids := t.Literature.SearchArticles(ctx, query, "")
	if len(pmids) == 0 {
		return fmt.Sprintf("No articles found for query: %s", query)
	}

	articles := t.Literature.FetchDetails(ctx, pmids)
	if len(articles) == 0 {
		return fmt.Sprintf("Found %d articles for %q but could not retrieve details", len(pmids), query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d scientific articles for %q:\n\n", len(articles), query)
	for i, a := range articles {
		if i == maxArticleLines {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, a.Title)
		authors := joinCapped(a.Authors)
		if len(a.Authors) > maxListedItems {
			authors += " et al."
		}
		fmt.Fprintf(&b, "   Authors: %s\n", authors)
		fmt.Fprintf(&b, "   Journal: %s\n", a.Journal)
		fmt.Fprintf(&b, "   Date: %s\n", a.PubDate)
		if a.DOI != types.Placeholder {
			fmt.Fprintf(&b, "   DOI: %s\n", a.DOI)
		}
		fmt.Fprintf(&b, "   URL: %s\n\n", a.URL)
	}
	return b.String()
}

// MarketData formats the market snapshot for a therapy area.
func (t *Toolbox) MarketData(area string) string {
	snap, ok := t.Market.Lookup(area)
	if !ok {
		return fmt.Sprintf("Market data not available for: %s\nAvailable areas: %s",
			area, strings.Join(t.Market.Areas(), ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Market intelligence for %s:\n\n", strings.ReplaceAll(snap.TherapyArea, "_", " "))
	fmt.Fprintf(&b, "- Global Market Size: $%dM USD\n", snap.MarketSizeUSDM)
	fmt.Fprintf(&b, "- Growth Rate (CAGR): %.1f%%\n", snap.CAGRPercent)
	fmt.Fprintf(&b, "- Competition Level: %s\n", snap.CompetitionLevel)
	fmt.Fprintf(&b, "- Market Leader: %s\n", snap.MarketShareLeader)
	fmt.Fprintf(&b, "- Patient Population: %.1fM\n", snap.PatientPopulation)
	fmt.Fprintf(&b, "- Top Players: %s\n", strings.Join(snap.TopPlayers, ", "))
	fmt.Fprintf(&b, "- Key Drugs: %s\n", strings.Join(snap.KeyDrugs, ", "))
	fmt.Fprintf(&b, "- Emerging Trends: %s\n", strings.Join(snap.EmergingTrends, ", "))
	return b.String()
}

// joinCapped joins up to maxListedItems elements.
func joinCapped(items []string) string {
	if len(items) > maxListedItems {
		items = items[:maxListedItems]
	}
	return strings.Join(items, ", ")
}

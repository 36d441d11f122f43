// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/pharma-intel/internal/market"
	"github.com/pdiddy/pharma-intel/pkg/types"
)

type fakeTrials struct {
	byCondition []types.Trial
	byDrug      []types.Trial
}

func (f *fakeTrials) SearchByCondition(_ context.Context, _, _ string) []types.Trial {
	return f.byCondition
}

func (f *fakeTrials) SearchByIntervention(_ context.Context, _ string) []types.Trial {
	return f.byDrug
}

type fakeCompound struct {
	compound types.Compound
	found    bool
}

func (f *fakeCompound) GetByName(_ context.Context, _ string) (types.Compound, bool) {
	return f.compound, f.found
}

type fakeLabels struct {
	labels []types.Label
	events []types.AdverseEvent
}

func (f *fakeLabels) SearchLabels(_ context.Context, _ string, _ int) []types.Label {
	return f.labels
}

func (f *fakeLabels) SearchAdverseEvents(_ context.Context, _ string, _ int) []types.AdverseEvent {
	return f.events
}

type fakeLiterature struct {
	pmids    []string
	articles []types.Article
}

func (f *fakeLiterature) SearchArticles(_ context.Context, _, _ string) []string {
	return f.pmids
}

func (f *fakeLiterature) FetchDetails(_ context.Context, _ []string) []types.Article {
	return f.articles
}

// emptyToolbox wires every fake to a zero result.
func emptyToolbox(t *testing.T) *Toolbox {
	t.Helper()
	dataset, err := market.Load()
	if err != nil {
		t.Fatal(err)
	}
	return &Toolbox{
		Trials:     &fakeTrials{},
		Compound:   &fakeCompound{},
		Labels:     &fakeLabels{},
		Literature: &fakeLiterature{},
		Market:     dataset,
	}
}

func TestAdaptersNotFoundSentences(t *testing.T) {
	tb := emptyToolbox(t)
	ctx := context.Background()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"trials by condition", tb.TrialsByCondition(ctx, "asthma"), "No clinical trials found for condition: asthma"},
		{"trials by drug", tb.TrialsByDrug(ctx, "aspirin"), "No clinical trials found for drug: aspirin"},
		{"drug properties", tb.DrugProperties(ctx, "unobtainium"), "Could not find compound information for: unobtainium"},
		{"label info", tb.DrugLabelInfo(ctx, "mystery"), "No FDA label information found for: mystery"},
		{"adverse events", tb.AdverseEventSummary(ctx, "mystery"), "No adverse event reports found for: mystery"},
		{"literature", tb.LiteratureSearch(ctx, "obscure topic"), "No articles found for query: obscure topic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func makeTrial(nct, title string) types.Trial {
	return types.Trial{
		NCTID:         nct,
		Title:         title,
		Status:        "RECRUITING",
		Phase:         "PHASE3",
		Conditions:    []string{"Asthma"},
		Interventions: []string{"Drug X"},
		BriefSummary:  "Summary.",
		URL:           "https://clinicaltrials.gov/study/" + nct,
	}
}

func TestTrialsAdapterPreservesSourceOrder(t *testing.T) {
	tb := emptyToolbox(t)
	tb.Trials = &fakeTrials{byCondition: []types.Trial{
		makeTrial("NCT001", "First"),
		makeTrial("NCT002", "Second"),
		makeTrial("NCT003", "Third"),
	}}

	out := tb.TrialsByCondition(context.Background(), "asthma")

	if !strings.HasPrefix(out, "Found 3 clinical trials for asthma") {
		t.Errorf("unexpected header:\n%s", out)
	}
	first := strings.Index(out, "1. First")
	second := strings.Index(out, "2. Second")
	third := strings.Index(out, "3. Third")
	if first < 0 || second < 0 || third < 0 {
		t.Fatalf("missing enumerated entries:\n%s", out)
	}
	if !(first < second && second < third) {
		t.Error("adapter re-ordered trial results")
	}
	if !strings.Contains(out, "Interventions: Drug X") {
		t.Error("condition search should include interventions")
	}
}

func TestTrialsAdapterCapsEnumeration(t *testing.T) {
	var many []types.Trial
	for i := 0; i < 25; i++ {
		many = append(many, makeTrial(fmt.Sprintf("NCT%03d", i), fmt.Sprintf("Trial %d", i)))
	}
	tb := emptyToolbox(t)
	tb.Trials = &fakeTrials{byDrug: many}

	out := tb.TrialsByDrug(context.Background(), "aspirin")

	// Header reports the full count, the listing stops at the cap.
	if !strings.HasPrefix(out, "Found 25 trials testing aspirin") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "10. Trial 9") {
		t.Error("tenth entry missing")
	}
	if strings.Contains(out, "11. Trial 10") {
		t.Error("enumeration exceeded the cap")
	}
	// Drug search omits the interventions line.
	if strings.Contains(out, "Interventions:") {
		t.Error("drug search should not repeat the interventions line")
	}
}

func TestDrugPropertiesFormatting(t *testing.T) {
	tb := emptyToolbox(t)
	tb.Compound = &fakeCompound{
		found: true,
		compound: types.Compound{
			CID:              2244,
			MolecularFormula: "C9H8O4",
			MolecularWeight:  "180.16",
			IUPACName:        "2-acetyloxybenzoic acid",
			CanonicalSMILES:  "CC(=O)OC1=CC=CC=C1C(=O)O",
			InChIKey:         "BSYNRYMUTXBXSQ-UHFFFAOYSA-N",
			Synonyms:         []string{"aspirin", "ASA", "acetylsalicylic acid"},
			Description:      types.Placeholder,
			URL:              "https://pubchem.ncbi.nlm.nih.gov/compound/2244",
		},
	}

	out := tb.DrugProperties(context.Background(), "aspirin")
	for _, want := range []string{
		"Drug properties for aspirin",
		"PubChem CID: 2244",
		"Molecular Formula: C9H8O4",
		"Molecular Weight: 180.16 g/mol",
		"Common Synonyms: aspirin, ASA, acetylsalicylic acid",
		"https://pubchem.ncbi.nlm.nih.gov/compound/2244",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Placeholder description is omitted rather than rendered as N/A.
	if strings.Contains(out, "Description:") {
		t.Error("placeholder description should not be rendered")
	}
}

func TestDrugLabelInfoOmitsPlaceholderSections(t *testing.T) {
	tb := emptyToolbox(t)
	tb.Labels = &fakeLabels{labels: []types.Label{{
		BrandName:    "LIPITOR",
		GenericName:  "atorvastatin calcium",
		Manufacturer: "Pfizer",
		ProductType:  "HUMAN PRESCRIPTION DRUG",
		Routes:       []string{"ORAL"},
		Substances:   []string{"ATORVASTATIN CALCIUM"},
		Indications:  "For hyperlipidemia.",
		Dosage:       types.Placeholder,
		Warnings:     "Liver enzyme abnormalities.",
	}}}

	out := tb.DrugLabelInfo(context.Background(), "lipitor")
	for _, want := range []string{
		"FDA-approved drug information for lipitor",
		"1. LIPITOR",
		"Generic Name: atorvastatin calcium",
		"Routes of Administration: ORAL",
		"Indications and Usage:",
		"Warnings:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Dosage Information:") {
		t.Error("placeholder dosage section should be omitted")
	}
}

func TestAdverseEventSummaryFormatting(t *testing.T) {
	tb := emptyToolbox(t)
	tb.Labels = &fakeLabels{events: []types.AdverseEvent{
		{ReportID: "100001", Serious: "1", ReceiveDate: "20240115", Reactions: []string{"NAUSEA", "HEADACHE"}},
		{ReportID: "100002", Serious: "2", ReceiveDate: "20240116"},
	}}

	out := tb.AdverseEventSummary(context.Background(), "aspirin")
	for _, want := range []string{
		"Found 2 adverse event reports for aspirin",
		"1. Report 100001",
		"Reactions: NAUSEA, HEADACHE",
		"2. Report 100002",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLiteratureAdapterFormatting(t *testing.T) {
	tb := emptyToolbox(t)
	tb.Literature = &fakeLiterature{
		pmids: []string{"42"},
		articles: []types.Article{{
			PMID:    "42",
			Title:   "Metformin outcomes",
			Authors: []string{"Lee J", "Kim H", "Park S", "Choi M"},
			Journal: "Diabetes Care",
			PubDate: "2024 Mar",
			DOI:     "10.2337/dc24-0001",
			URL:     "https://pubmed.ncbi.nlm.nih.gov/42/",
		}},
	}

	out := tb.LiteratureSearch(context.Background(), "metformin")
	for _, want := range []string{
		`Found 1 scientific articles for "metformin"`,
		"1. Metformin outcomes",
		"Authors: Lee J, Kim H, Park S et al.",
		"Journal: Diabetes Care",
		"DOI: 10.2337/dc24-0001",
		"https://pubmed.ncbi.nlm.nih.gov/42/",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLiteratureAdapterDetailsUnavailable(t *testing.T) {
	tb := emptyToolbox(t)
	tb.Literature = &fakeLiterature{pmids: []string{"1", "2"}}

	out := tb.LiteratureSearch(context.Background(), "metformin")
	if out != `Found 2 articles for "metformin" but could not retrieve details` {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestMarketDataAdapter(t *testing.T) {
	tb := emptyToolbox(t)

	out := tb.MarketData("diabetes")
	for _, want := range []string{
		"Market intelligence for diabetes",
		"Global Market Size: $210000M USD",
		"Growth Rate (CAGR): 8.3%",
		"Market Leader: Novo Nordisk (28%)",
		"Top Players: Novo Nordisk, Sanofi, Eli Lilly, AstraZeneca",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMarketDataAdapterUnknownArea(t *testing.T) {
	tb := emptyToolbox(t)

	out := tb.MarketData("dermatology")
	if !strings.Contains(out, "Market data not available for: dermatology") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "oncology") {
		t.Error("output should list available areas")
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data shapes for the pharma-intel
// retrieval layer: one normalized record per data source (trial,
// compound, label, adverse event, article, market snapshot) and the
// configuration structs consumed at startup.
//
// Every field of a normalized record is populated by the owning source
// client before the record is returned; absent upstream fields are
// filled with "N/A" or an empty collection so downstream formatting
// never has to null-check.
package types

// Placeholder is the value substituted for any field the upstream
// source omitted.
const Placeholder = "N/A"

// Trial is a normalized clinical trial record from the trials registry.
type Trial struct {
	// NCTID is the registry identifier (e.g. "NCT04368728").
	NCTID string `json:"nct_id" yaml:"nct_id"`

	// Title is the brief title of the study.
	Title string `json:"title" yaml:"title"`

	// Status is the overall recruitment status (e.g. "RECRUITING").
	Status string `json:"status" yaml:"status"`

	// Phase is the trial phase description.
	Phase string `json:"phase" yaml:"phase"`

	// Conditions lists the diseases or conditions under study.
	Conditions []string `json:"conditions" yaml:"conditions"`

	// Interventions lists the drug or procedure names being tested.
	Interventions []string `json:"interventions" yaml:"interventions"`

	// BriefSummary is the study summary, truncated to the client's
	// character budget.
	BriefSummary string `json:"brief_summary" yaml:"brief_summary"`

	// StartDate and CompletionDate are the registry date strings.
	StartDate      string `json:"start_date" yaml:"start_date"`
	CompletionDate string `json:"completion_date" yaml:"completion_date"`

	// Enrollment is the participant count, formatted as a string so a
	// missing count carries the placeholder like every other field.
	Enrollment string `json:"enrollment" yaml:"enrollment"`

	// URL is the public study page.
	URL string `json:"url" yaml:"url"`
}

// Compound is a normalized chemical record from the compound database.
type Compound struct {
	// CID is the compound database identifier.
	CID int64 `json:"cid" yaml:"cid"`

	MolecularFormula string `json:"molecular_formula" yaml:"molecular_formula"`
	MolecularWeight  string `json:"molecular_weight" yaml:"molecular_weight"`
	IUPACName        string `json:"iupac_name" yaml:"iupac_name"`
	CanonicalSMILES  string `json:"canonical_smiles" yaml:"canonical_smiles"`
	InChI            string `json:"inchi" yaml:"inchi"`
	InChIKey         string `json:"inchi_key" yaml:"inchi_key"`

	// Synonyms lists up to 15 alternate names, most common first.
	Synonyms []string `json:"synonyms" yaml:"synonyms"`

	// Description is the free-text record description, truncated.
	Description string `json:"description" yaml:"description"`

	// URL is the public compound page.
	URL string `json:"url" yaml:"url"`
}

// Label is a normalized regulatory drug label record.
type Label struct {
	BrandName    string   `json:"brand_name" yaml:"brand_name"`
	GenericName  string   `json:"generic_name" yaml:"generic_name"`
	Manufacturer string   `json:"manufacturer" yaml:"manufacturer"`
	ProductType  string   `json:"product_type" yaml:"product_type"`
	Routes       []string `json:"routes" yaml:"routes"`
	Substances   []string `json:"substances" yaml:"substances"`

	// Free-text label sections, each truncated to its budget.
	Indications      string `json:"indications" yaml:"indications"`
	Dosage           string `json:"dosage" yaml:"dosage"`
	Warnings         string `json:"warnings" yaml:"warnings"`
	AdverseReactions string `json:"adverse_reactions" yaml:"adverse_reactions"`
}

// AdverseEvent is a normalized adverse event report summary.
type AdverseEvent struct {
	// ReportID is the safety report identifier.
	ReportID string `json:"report_id" yaml:"report_id"`

	// Reactions lists the reported reaction terms.
	Reactions []string `json:"reactions" yaml:"reactions"`

	// Serious is "1" for serious reports, "2" otherwise, or the
	// placeholder when the report omits the flag.
	Serious string `json:"serious" yaml:"serious"`

	// ReceiveDate is the date the report was received (YYYYMMDD).
	ReceiveDate string `json:"receive_date" yaml:"receive_date"`
}

// Article is a normalized literature record.
type Article struct {
	// PMID is the literature index identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	Title string `json:"title" yaml:"title"`

	// Authors lists up to five author names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	Journal string `json:"journal" yaml:"journal"`
	PubDate string `json:"pub_date" yaml:"pub_date"`
	Volume  string `json:"volume" yaml:"volume"`
	Issue   string `json:"issue" yaml:"issue"`
	Pages   string `json:"pages" yaml:"pages"`
	DOI     string `json:"doi" yaml:"doi"`

	// URL is the public article page.
	URL string `json:"url" yaml:"url"`
}

// MarketSnapshot is a market intelligence summary for one therapy area.
type MarketSnapshot struct {
	TherapyArea       string   `json:"therapy_area" yaml:"therapy_area"`
	MarketSizeUSDM    int64    `json:"market_size_usd_m" yaml:"market_size_usd_m"`
	CAGRPercent       float64  `json:"cagr_percent" yaml:"cagr_percent"`
	CompetitionLevel  string   `json:"competition_level" yaml:"competition_level"`
	TopPlayers        []string `json:"top_players" yaml:"top_players"`
	PatientPopulation float64  `json:"patient_population_m" yaml:"patient_population_m"`
	KeyDrugs          []string `json:"key_drugs" yaml:"key_drugs"`
	EmergingTrends    []string `json:"emerging_trends" yaml:"emerging_trends"`
	MarketShareLeader string   `json:"market_share_leader" yaml:"market_share_leader"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const labelFixture = `{
  "results": [
    {
      "openfda": {
        "brand_name": ["LIPITOR"],
        "generic_name": ["ATORVASTATIN CALCIUM"],
        "manufacturer_name": ["Pfizer"],
        "product_type": ["HUMAN PRESCRIPTION DRUG"],
        "route": ["ORAL"],
        "substance_name": ["ATORVASTATIN CALCIUM"]
      },
      "indications_and_usage": ["Lipitor is indicated to reduce the risk of cardiovascular events."],
      "dosage_and_administration": ["10 to 80 mg once daily."],
      "warnings": ["Skeletal muscle effects."],
      "adverse_reactions": ["Nasopharyngitis, arthralgia."]
    }
  ]
}`

func swapFDABase(t *testing.T, url string) {
	t.Helper()
	old := fdaAPIBase
	fdaAPIBase = url
	t.Cleanup(func() { fdaAPIBase = old })
}

func TestLabelSearchNormalization(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, labelFixture)
	}))
	defer ts.Close()
	swapFDABase(t, ts.URL)

	c := NewLabelClient(testSourceCfg(5), testEnv(t))
	labels := c.SearchLabels(context.Background(), "lipitor", 3)
	if len(labels) != 1 {
		t.Fatalf("len(labels) = %d, want 1", len(labels))
	}

	l := labels[0]
	if l.BrandName != "LIPITOR" {
		t.Errorf("BrandName = %q", l.BrandName)
	}
	if l.GenericName != "ATORVASTATIN CALCIUM" {
		t.Errorf("GenericName = %q", l.GenericName)
	}
	if l.Manufacturer != "Pfizer" {
		t.Errorf("Manufacturer = %q", l.Manufacturer)
	}
	if len(l.Routes) != 1 || l.Routes[0] != "ORAL" {
		t.Errorf("Routes = %v", l.Routes)
	}
	if l.Indications == "" || l.Indications == "N/A" {
		t.Errorf("Indications = %q", l.Indications)
	}
}

func TestLabelORCombinedSearchParam(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer ts.Close()
	swapFDABase(t, ts.URL)

	c := NewLabelClient(testSourceCfg(5), testEnv(t))
	c.SearchLabels(context.Background(), "lipitor", 3)

	want := `openfda.brand_name:"lipitor" OR openfda.generic_name:"lipitor"`
	if got := captured.URL.Query().Get("search"); got != want {
		t.Errorf("search param = %q, want %q", got, want)
	}
	if got := captured.URL.Query().Get("limit"); got != "3" {
		t.Errorf("limit param = %q, want 3", got)
	}
}

func TestLabelEmptyOpenFDAYieldsPlaceholders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results":[{}]}`)
	}))
	defer ts.Close()
	swapFDABase(t, ts.URL)

	c := NewLabelClient(testSourceCfg(5), testEnv(t))
	labels := c.SearchLabels(context.Background(), "mystery", 1)
	if len(labels) != 1 {
		t.Fatalf("len(labels) = %d, want 1", len(labels))
	}

	l := labels[0]
	for name, got := range map[string]string{
		"BrandName":        l.BrandName,
		"GenericName":      l.GenericName,
		"Manufacturer":     l.Manufacturer,
		"ProductType":      l.ProductType,
		"Indications":      l.Indications,
		"Dosage":           l.Dosage,
		"Warnings":         l.Warnings,
		"AdverseReactions": l.AdverseReactions,
	} {
		if got != "N/A" {
			t.Errorf("%s = %q, want N/A", name, got)
		}
	}
	if l.Routes == nil || l.Substances == nil {
		t.Error("collection fields must be empty, not nil")
	}
}

func TestLabelSearchFailureDegradesToEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()
	swapFDABase(t, ts.URL)

	c := NewLabelClient(testSourceCfg(5), testEnv(t))
	labels := c.SearchLabels(context.Background(), "lipitor", 3)
	if len(labels) != 0 {
		t.Errorf("len(labels) = %d, want 0", len(labels))
	}
}

func TestLabelCacheHitSkipsNetwork(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, labelFixture)
	}))
	defer ts.Close()
	swapFDABase(t, ts.URL)

	c := NewLabelClient(testSourceCfg(5), testEnv(t))
	c.SearchLabels(context.Background(), "lipitor", 3)
	c.SearchLabels(context.Background(), "lipitor", 3)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("network calls = %d, want 1", got)
	}

	// A different limit is a different cache key.
	c.SearchLabels(context.Background(), "lipitor", 5)
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}
}

func TestAdverseEventNormalization(t *testing.T) {
	body := `{"results":[
		{"safetyreportid":"10012345","serious":"1","receivedate":"20240110",
		 "patient":{"reaction":[{"reactionmeddrapt":"Nausea"},{"reactionmeddrapt":"Headache"}]}},
		{}
	]}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer ts.Close()
	swapFDABase(t, ts.URL)

	c := NewLabelClient(testSourceCfg(5), testEnv(t))
	events := c.SearchAdverseEvents(context.Background(), "lipitor", 10)
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}

	if events[0].ReportID != "10012345" || events[0].Serious != "1" {
		t.Errorf("events[0] = %+v", events[0])
	}
	if len(events[0].Reactions) != 2 || events[0].Reactions[0] != "Nausea" {
		t.Errorf("Reactions = %v", events[0].Reactions)
	}

	// The empty report normalizes to placeholders, never missing keys.
	if events[1].ReportID != "N/A" || events[1].Serious != "N/A" || events[1].ReceiveDate != "N/A" {
		t.Errorf("events[1] = %+v", events[1])
	}
}

func TestAdverseEventSearchParam(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer ts.Close()
	swapFDABase(t, ts.URL)

	c := NewLabelClient(testSourceCfg(5), testEnv(t))
	c.SearchAdverseEvents(context.Background(), "lipitor", 10)

	want := `patient.drug.medicinalproduct:"lipitor"`
	if got := captured.URL.Query().Get("search"); got != want {
		t.Errorf("search param = %q, want %q", got, want)
	}
}

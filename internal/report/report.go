// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles multi-source drug intelligence reports.
// A report run executes a fixed sequence of data-gathering steps and
// renders the collected text as a Markdown document with YAML front
// matter, written under the configured output directory.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pharma-intel/internal/tools"
)

// Step is one data-gathering call in a report run. Steps execute in
// plan order; a step whose source returned nothing still contributes
// its section, carrying the source's "not found" sentence.
type Step struct {
	Name    string
	Section string
	Run     func(ctx context.Context) string
}

// Meta is the YAML front matter of a generated report.
type Meta struct {
	RunID       string   `yaml:"run_id"`
	Drug        string   `yaml:"drug"`
	Condition   string   `yaml:"condition,omitempty"`
	TherapyArea string   `yaml:"therapy_area,omitempty"`
	GeneratedAt string   `yaml:"generated_at"`
	Sections    []string `yaml:"sections"`
}

// Report describes a completed run.
type Report struct {
	Meta Meta
	Path string
}

// Generator runs report plans. Construct with New.
type Generator struct {
	toolbox   *tools.Toolbox
	outputDir string
	log       zerolog.Logger

	now   func() time.Time
	newID func() string
}

// New returns a Generator writing reports under outputDir.
func New(tb *tools.Toolbox, outputDir string, log zerolog.Logger) *Generator {
	return &Generator{
		toolbox:   tb,
		outputDir: outputDir,
		log:       log.With().Str("component", "report").Logger(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Plan returns the fixed step sequence for a drug report. Condition
// and therapy area are optional; empty values drop their steps.
func (g *Generator) Plan(drug, condition, area string) []Step {
	steps := []Step{
		{
			Name:    "trials_by_drug",
			Section: "Clinical Trials",
			Run:     func(ctx context.Context) string { return g.toolbox.TrialsByDrug(ctx, drug) },
		},
	}
	if condition != "" {
		steps = append(steps, Step{
			Name:    "trials_by_condition",
			Section: "Condition Landscape",
			Run:     func(ctx context.Context) string { return g.toolbox.TrialsByCondition(ctx, condition) },
		})
	}
	steps = append(steps,
		Step{
			Name:    "compound_properties",
			Section: "Chemical Profile",
			Run:     func(ctx context.Context) string { return g.toolbox.DrugProperties(ctx, drug) },
		},
		Step{
			Name:    "fda_label",
			Section: "Regulatory Status",
			Run:     func(ctx context.Context) string { return g.toolbox.DrugLabelInfo(ctx, drug) },
		},
		Step{
			Name:    "adverse_events",
			Section: "Safety Signals",
			Run:     func(ctx context.Context) string { return g.toolbox.AdverseEventSummary(ctx, drug) },
		},
		Step{
			Name:    "literature",
			Section: "Recent Literature",
			Run:     func(ctx context.Context) string { return g.toolbox.LiteratureSearch(ctx, drug) },
		},
	)
	if area != "" {
		steps = append(steps, Step{
			Name:    "market_data",
			Section: "Market Intelligence",
			Run:     func(ctx context.Context) string { return g.toolbox.MarketData(area) },
		})
	}
	return steps
}

// Generate executes the plan for drug and writes the rendered report.
func (g *Generator) Generate(ctx context.Context, drug, condition, area string) (Report, error) {
	if strings.TrimSpace(drug) == "" {
		return Report{}, fmt.Errorf("drug name is required")
	}

	steps := g.Plan(drug, condition, area)
	meta := Meta{
		RunID:       g.newID(),
		Drug:        drug,
		Condition:   condition,
		TherapyArea: area,
		GeneratedAt: g.now().UTC().Format(time.RFC3339),
	}

	sections := make([]string, 0, len(steps))
	bodies := make([]string, 0, len(steps))
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		g.log.Debug().Str("step", step.Name).Msg("running report step")
		bodies = append(bodies, step.Run(ctx))
		sections = append(sections, step.Section)
	}
	meta.Sections = sections

	content, err := render(meta, steps, bodies)
	if err != nil {
		return Report{}, err
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(g.outputDir, fileName(drug, meta.RunID))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return Report{}, fmt.Errorf("writing report: %w", err)
	}

	g.log.Info().Str("run_id", meta.RunID).Str("path", path).Msg("report generated")
	return Report{Meta: meta, Path: path}, nil
}

func render(meta Meta, steps []Step, bodies []string) (string, error) {
	front, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshaling front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# Drug Intelligence Report: %s\n\n", meta.Drug)
	for i, step := range steps {
		fmt.Fprintf(&b, "## %s\n\n", step.Section)
		b.WriteString(strings.TrimRight(bodies[i], "\n"))
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

// fileName builds report_<slug>_<short-id>.md.
func fileName(drug, runID string) string {
	slug := strings.ToLower(strings.TrimSpace(drug))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("report_%s_%s.md", slug, short)
}

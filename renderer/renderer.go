// Package renderer turns analysis reports into markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"github.com/tmaury/fincoach"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"money":  Money,
	"signed": SignedMoney,
	"pct":    Percent,
	"num":    Num,
	"date":   func(t time.Time) string { return t.Format("2006-01-02") },
}

// CoachRenderOptions holds configuration for rendering a coaching report.
type CoachRenderOptions struct {
	SkipRecommendations bool // Do not render the recommended actions section.
}

// RenderScenarioResult renders one analyzed scenario to a markdown string.
func RenderScenarioResult(r *fincoach.ScenarioResult) string {
	partials := map[string]string{
		"scenario_title":           "scenario_title.md",
		"scenario_distribution":    "scenario_distribution.md",
		"scenario_milestones":      "scenario_milestones.md",
		"scenario_recommendations": "scenario_recommendations.md",
	}
	return renderTemplate("scenarioResult", "scenario_result.md", partials, r)
}

// RenderCoachReport renders a full coaching run to a markdown string.
func RenderCoachReport(r *fincoach.CoachReport, opts CoachRenderOptions) string {
	partials := map[string]string{
		"coach_title":     "coach_title.md",
		"coach_scenarios": "coach_scenarios.md",
	}

	// An empty file name results in an empty template.
	if opts.SkipRecommendations {
		partials["coach_recommendations"] = ""
	} else {
		partials["coach_recommendations"] = "coach_recommendations.md"
	}

	return renderTemplate("coachReport", "coach_report.md", partials, r)
}

// RenderWhatIf renders a what-if comparison to a markdown string.
func RenderWhatIf(r *fincoach.WhatIfReport) string {
	partials := map[string]string{
		"whatif_title":      "whatif_title.md",
		"whatif_changes":    "whatif_changes.md",
		"whatif_comparison": "whatif_comparison.md",
	}
	return renderTemplate("whatIf", "whatif.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// Package journal persists the outcome of coaching sessions so past runs
// can be listed and compared.
package journal

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tmaury/fincoach"
)

// Entry kinds.
const (
	KindCoach  = "coach"
	KindWhatIf = "whatif"
)

// Entry is one recorded projection: a scenario from a coaching run, or a
// what-if comparison.
type Entry struct {
	ID         string
	Time       time.Time
	Kind       string
	Scenario   string
	NetWorth   float64
	RiskScore  int
	Confidence float64
	Summary    string
}

// FromCoachReport flattens a coaching report into one entry per scenario.
func FromCoachReport(at time.Time, report *fincoach.CoachReport) []Entry {
	entries := make([]Entry, 0, len(report.Results))
	for _, r := range report.Results {
		entries = append(entries, Entry{
			ID:         ulid.Make().String(),
			Time:       at,
			Kind:       KindCoach,
			Scenario:   r.ScenarioName,
			NetWorth:   r.Outcome.NetWorth,
			RiskScore:  r.RiskScore,
			Confidence: r.ConfidenceLevel,
			Summary:    string(r.Type) + " scenario, " + string(r.Impact) + " impact",
		})
	}
	return entries
}

// FromWhatIfReport condenses a what-if comparison into a single entry; the
// recorded figures are the ones with the changes applied.
func FromWhatIfReport(at time.Time, report *fincoach.WhatIfReport) Entry {
	return Entry{
		ID:         ulid.Make().String(),
		Time:       at,
		Kind:       KindWhatIf,
		Scenario:   report.WithChanges.ScenarioName,
		NetWorth:   report.WithChanges.Outcome.NetWorth,
		RiskScore:  report.WithChanges.RiskScore,
		Confidence: report.WithChanges.ConfidenceLevel,
		Summary:    report.Analysis,
	}
}

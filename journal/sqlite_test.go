package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/tmaury/fincoach"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	assert.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='entries'`).Scan(&name)
	assert.NoError(t, err)
	assert.Equal(t, "entries", name)
}

func TestSQLiteRecordAndList(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	older := Entry{
		Time:       base,
		Kind:       KindCoach,
		Scenario:   "10% raise",
		NetWorth:   21500.5,
		RiskScore:  35,
		Confidence: 0.8,
		Summary:    "income_change scenario, positive impact",
	}
	newer := Entry{
		Time:       base.Add(24 * time.Hour),
		Kind:       KindWhatIf,
		Scenario:   "extra 200 to debt",
		NetWorth:   23000,
		RiskScore:  20,
		Confidence: 0.9,
		Summary:    "debt cleared two months earlier",
	}
	assert.NoError(t, j.Record(ctx, older))
	assert.NoError(t, j.Record(ctx, newer))

	entries, err := j.List(ctx, 0)
	assert.NoError(t, err)
	if assert.Len(t, entries, 2) {
		// Newest first, and IDs were assigned.
		assert.Equal(t, "extra 200 to debt", entries[0].Scenario)
		assert.Equal(t, "10% raise", entries[1].Scenario)
		assert.Len(t, entries[0].ID, 26)
		assert.True(t, entries[0].Time.Equal(newer.Time))
		assert.InDelta(t, older.NetWorth, entries[1].NetWorth, 1e-6)
		assert.Equal(t, older.RiskScore, entries[1].RiskScore)
	}

	limited, err := j.List(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestFromCoachReport(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	report := &fincoach.CoachReport{
		Results: []fincoach.ScenarioResult{
			{
				ScenarioName:    "job loss",
				Type:            fincoach.JobLoss,
				Impact:          fincoach.Negative,
				Outcome:         fincoach.ProjectedOutcome{NetWorth: 1200},
				RiskScore:       80,
				ConfidenceLevel: 0.6,
			},
		},
	}

	entries := FromCoachReport(at, report)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, KindCoach, entries[0].Kind)
		assert.Equal(t, "job loss", entries[0].Scenario)
		assert.Equal(t, 80, entries[0].RiskScore)
		assert.Contains(t, entries[0].Summary, "job_loss")
		assert.Contains(t, entries[0].Summary, "negative")
		assert.NotEmpty(t, entries[0].ID)
	}
}

func TestFromWhatIfReport(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	report := &fincoach.WhatIfReport{
		WithChanges: fincoach.ScenarioResult{
			ScenarioName:    "with changes",
			Outcome:         fincoach.ProjectedOutcome{NetWorth: 5400},
			RiskScore:       15,
			ConfidenceLevel: 0.7,
		},
		Analysis: "net worth improves",
	}

	e := FromWhatIfReport(at, report)
	assert.Equal(t, KindWhatIf, e.Kind)
	assert.InDelta(t, 5400, e.NetWorth, 1e-9)
	assert.Equal(t, "net worth improves", e.Summary)
	assert.True(t, e.Time.Equal(at))
}

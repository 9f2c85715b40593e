package fincoach

import (
	"context"
	"fmt"
	"math"

	"github.com/creasty/defaults"
)

// WhatIfChanges are the optional deltas a what-if analysis applies to a
// context. The zero value of each delta means "no change"; a zero timeframe
// defaults to one year.
type WhatIfChanges struct {
	IncomeChange     float64 `json:"incomeChange" yaml:"incomeChange"`
	ExpenseChange    float64 `json:"expenseChange" yaml:"expenseChange"`
	ExtraSavings     float64 `json:"extraSavings" yaml:"extraSavings"`
	ExtraDebtPayment float64 `json:"extraDebtPayment" yaml:"extraDebtPayment"`
	TimeframeMonths  int     `json:"timeframeMonths" yaml:"timeframeMonths" default:"12"`
}

// apply returns a modified copy of c; the original is never touched.
// Shifted amounts are floored at zero so the copy stays a valid context.
func (w WhatIfChanges) apply(c SimulationContext) SimulationContext {
	c.CurrentIncome = math.Max(0, c.CurrentIncome+w.IncomeChange)
	c.CurrentExpenses = math.Max(0, c.CurrentExpenses+w.ExpenseChange)
	c.MonthlyContributions.Savings = math.Max(0, c.MonthlyContributions.Savings+w.ExtraSavings)
	c.MonthlyContributions.DebtPayment = math.Max(0, c.MonthlyContributions.DebtPayment+w.ExtraDebtPayment)
	return c
}

// WhatIfImprovement is withChanges minus baseline across the four reported
// dimensions. DebtReduction is reported as baseline minus withChanges, so a
// positive value always means improvement.
type WhatIfImprovement struct {
	SavingsDifference  float64 `json:"savingsDifference"`
	DebtReduction      float64 `json:"debtReduction"`
	NetWorthDifference float64 `json:"netWorthDifference"`
	RunwayDifference   float64 `json:"runwayMonthsDifference"`
}

// WhatIfReport compares a baseline projection against the same context with
// the changes applied.
type WhatIfReport struct {
	Changes     WhatIfChanges     `json:"changes"`
	Baseline    ScenarioResult    `json:"baseline"`
	WithChanges ScenarioResult    `json:"withChanges"`
	Improvement WhatIfImprovement `json:"improvement"`
	Analysis    string            `json:"analysis"`
}

// WhatIf simulates the context twice, unmodified and with the changes
// applied, both as zero-perturbation goal scenarios, and reports the delta.
// The improvement figures are computed once from the two outcomes, never
// recomputed elsewhere.
func (co *Coach) WhatIf(ctx context.Context, c SimulationContext, changes WhatIfChanges) (*WhatIfReport, error) {
	if err := defaults.Set(&changes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if changes.TimeframeMonths < 1 {
		return nil, fmt.Errorf("%w: timeframeMonths must be positive, got %d", ErrInvalidInput, changes.TimeframeMonths)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	modified := changes.apply(c)

	baselineScenario := NewScenario(GoalAchievement, "Baseline", changes.TimeframeMonths)
	baselineScenario.Probability = 1
	withScenario := NewScenario(GoalAchievement, "With changes", changes.TimeframeMonths)
	withScenario.Probability = 1

	start := co.now()
	baseMC, err := co.Simulator.Simulate(ctx, c, baselineScenario)
	if err != nil {
		return nil, err
	}
	withMC, err := co.Simulator.Simulate(ctx, modified, withScenario)
	if err != nil {
		return nil, err
	}

	baseline := Analyze(c, baselineScenario, baseMC, start)
	withChanges := Analyze(modified, withScenario, withMC, start)

	report := &WhatIfReport{
		Changes:     changes,
		Baseline:    baseline,
		WithChanges: withChanges,
		Improvement: WhatIfImprovement{
			SavingsDifference:  withChanges.Outcome.FinalSavings - baseline.Outcome.FinalSavings,
			DebtReduction:      baseline.Outcome.FinalDebt - withChanges.Outcome.FinalDebt,
			NetWorthDifference: withChanges.Outcome.NetWorth - baseline.Outcome.NetWorth,
			RunwayDifference:   withChanges.Outcome.EmergencyRunwayMonths - baseline.Outcome.EmergencyRunwayMonths,
		},
	}

	analysis, err := co.advisor().ExplainComparison(ctx, c, report)
	if err != nil || analysis == "" {
		analysis = fallbackAnalysis(report)
	}
	report.Analysis = analysis
	return report, nil
}

// fallbackAnalysis is the deterministic replacement for an unavailable
// comparison narration.
func fallbackAnalysis(r *WhatIfReport) string {
	delta := r.Improvement.NetWorthDifference
	direction := "higher"
	if delta < 0 {
		direction = "lower"
	}
	return fmt.Sprintf("After %d months the proposed changes project a net worth %.2f %s than the baseline.",
		r.Changes.TimeframeMonths, math.Abs(delta), direction)
}

package fincoach

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatIf_NetWorthDeltaIsExact(t *testing.T) {
	co := testCoach(Offline{})
	report, err := co.WhatIf(context.Background(), testContext(), WhatIfChanges{IncomeChange: 500})
	require.NoError(t, err)

	// The improvement is computed once from the two outcomes: no
	// recomputation drift allowed.
	assert.Equal(t,
		report.WithChanges.Outcome.NetWorth-report.Baseline.Outcome.NetWorth,
		report.Improvement.NetWorthDifference)
	assert.Equal(t,
		report.Baseline.Outcome.FinalDebt-report.WithChanges.Outcome.FinalDebt,
		report.Improvement.DebtReduction)

	// More income, same expenses: things can only improve.
	assert.Greater(t, report.Improvement.NetWorthDifference, 0.0)
}

func TestWhatIf_TimeframeDefaultsToOneYear(t *testing.T) {
	co := testCoach(Offline{})
	report, err := co.WhatIf(context.Background(), testContext(), WhatIfChanges{})
	require.NoError(t, err)

	assert.Equal(t, 12, report.Changes.TimeframeMonths)
	assert.Len(t, report.Baseline.Milestones, 3) // months 3, 6, 12
}

func TestWhatIf_BaselineContextUntouched(t *testing.T) {
	c := testContext()
	co := testCoach(Offline{})
	_, err := co.WhatIf(context.Background(), c, WhatIfChanges{
		IncomeChange:     1000,
		ExpenseChange:    -200,
		ExtraDebtPayment: 150,
	})
	require.NoError(t, err)

	assert.Equal(t, testContext(), c)
}

func TestWhatIf_FallbackAnalysis(t *testing.T) {
	co := testCoach(&scriptedAdvisor{err: assert.AnError})
	report, err := co.WhatIf(context.Background(), testContext(), WhatIfChanges{ExtraDebtPayment: 200})
	require.NoError(t, err)

	// The advisor is down: the analysis is the deterministic template.
	assert.Contains(t, report.Analysis, "After 12 months")
	assert.Contains(t, report.Analysis, "net worth")
}

func TestWhatIf_InvalidTimeframe(t *testing.T) {
	co := testCoach(Offline{})
	_, err := co.WhatIf(context.Background(), testContext(), WhatIfChanges{TimeframeMonths: -3})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package fincoach

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_OutcomesSortedAndComplete(t *testing.T) {
	s := fixedSimulator(250)
	result, err := s.Simulate(context.Background(), testContext(), debtPayoffScenario())
	require.NoError(t, err)

	assert.Len(t, result.Outcomes, 250)
	assert.True(t, sort.Float64sAreSorted(result.Outcomes))

	lo, hi := result.Outcomes[0], result.Outcomes[len(result.Outcomes)-1]
	for name, v := range map[string]float64{
		"mean":   result.Mean,
		"median": result.Median,
		"p10":    result.Percentile10,
		"p90":    result.Percentile90,
	} {
		assert.GreaterOrEqual(t, v, lo, name)
		assert.LessOrEqual(t, v, hi, name)
	}
	assert.GreaterOrEqual(t, result.StandardDeviation, 0.0)
	assert.LessOrEqual(t, result.Percentile10, result.Percentile90)
}

func TestSimulate_GoalScenarioHasZeroSpread(t *testing.T) {
	// goal_achievement applies no perturbation, so every path is identical
	// and the distribution collapses to a point.
	s := fixedSimulator(100)
	sc := NewScenario(GoalAchievement, "Stay the course", 12)
	result, err := s.Simulate(context.Background(), testContext(), sc)
	require.NoError(t, err)

	assert.Zero(t, result.StandardDeviation)
	assert.Equal(t, result.Median, result.Mean)
	assert.Equal(t, result.Percentile10, result.Percentile90)
}

func TestSimulate_InvalidInputs(t *testing.T) {
	ctx := context.Background()

	_, err := RunMonteCarloSimulation(ctx, testContext(), debtPayoffScenario(), 0)
	assert.ErrorIs(t, err, ErrInvalidScenario)

	zeroTimeframe := NewScenario(DebtPayoff, "no horizon", 0)
	_, err = RunMonteCarloSimulation(ctx, testContext(), zeroTimeframe, 100)
	assert.ErrorIs(t, err, ErrInvalidScenario)

	negative := testContext()
	negative.CurrentIncome = -1
	s := fixedSimulator(100)
	_, err = s.Simulate(ctx, negative, debtPayoffScenario())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSimulate_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := fixedSimulator(1000)
	_, err := s.Simulate(ctx, testContext(), debtPayoffScenario())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunPath_JobLossBeyondHorizonZeroesAllIncome(t *testing.T) {
	c := testContext()
	sc := NewScenario(JobLoss, "long unemployment", 12)
	sc.Assumptions.Set(KeyMonthsUnemployed, 24)

	r := runPath(c, sc, rand.New(rand.NewSource(1)))

	assert.Zero(t, r.income)
	// With no income the disposable is negative every month, so savings
	// only ever compound.
	expected := c.CurrentSavings * math.Pow(1+c.InterestRates.Savings/12/100, 12)
	assert.InDelta(t, expected, r.savings, 0.01)
}

func TestRunPath_DebtNeverNegative(t *testing.T) {
	c := SimulationContext{
		CurrentIncome:        5000,
		CurrentExpenses:      5000,
		CurrentDebt:          5000,
		InterestRates:        InterestRates{Debt: 18},
		MonthlyContributions: MonthlyContributions{DebtPayment: 300},
	}
	sc := NewScenario(DebtPayoff, "overwhelming payment", 12)
	sc.Assumptions.Set(KeyExtraMonthlyPayment, 1e9)

	r := runPath(c, sc, rand.New(rand.NewSource(1)))

	assert.Zero(t, r.debt)
	// Savings stay at zero here, so net worth is exactly -debt: it must
	// never turn positive, which a negative debt would.
	for _, nw := range r.netWorth {
		assert.LessOrEqual(t, nw, 0.0)
	}
}

func TestSimulate_DebtPayoffEndToEnd(t *testing.T) {
	c := testContext()
	sc := debtPayoffScenario()

	s := Simulator{Iterations: 1000, Seed: 7}
	result, err := s.Simulate(context.Background(), c, sc)
	require.NoError(t, err)

	assert.Greater(t, result.ProbabilityOfSuccess, 0.5)

	// 600 a month against 5000 at 18% clears the debt well before the
	// end of the horizon.
	r := runPath(c, sc, rand.New(rand.NewSource(7)))
	assert.Zero(t, r.debt)
}

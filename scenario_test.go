package fincoach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenarioType(t *testing.T) {
	for _, st := range ScenarioTypes {
		parsed, err := ParseScenarioType(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, parsed)
	}

	_, err := ParseScenarioType("stock_tip")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDefaultAssumptions(t *testing.T) {
	testCases := []struct {
		scenarioType ScenarioType
		key          string
		want         float64
	}{
		{IncomeChange, KeyPercentageChange, 10},
		{ExpenseReduction, KeyReductionPercentage, 15},
		{DebtPayoff, KeyExtraMonthlyPayment, 200},
		{InvestmentGrowth, KeyAnnualReturnRate, 7},
		{EmergencyEvent, KeyEmergencyCost, 5000},
		{InflationImpact, KeyAnnualInflationRate, 3},
		{JobLoss, KeyMonthsUnemployed, 3},
	}
	for _, tc := range testCases {
		t.Run(string(tc.scenarioType), func(t *testing.T) {
			a := DefaultAssumptions(tc.scenarioType)
			got, ok := a.Get(tc.key)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	assert.Empty(t, DefaultAssumptions(GoalAchievement).Keys())
}

func TestAssumptions_SetRefusesUnknownKeys(t *testing.T) {
	for _, st := range ScenarioTypes {
		a := DefaultAssumptions(st)
		assert.False(t, a.Set("notAKey", 1), string(st))
		_, ok := a.Get("notAKey")
		assert.False(t, ok, string(st))
	}
}

func TestNormalizeAssumptions(t *testing.T) {
	a := NormalizeAssumptions(DebtPayoff, map[string]any{
		"extraMonthlyPayment": 450,
		"surpriseKey":         99,
		"color":               "green",
	})

	got, ok := a.Get(KeyExtraMonthlyPayment)
	require.True(t, ok)
	assert.Equal(t, 450.0, got)
	_, ok = a.Get("surpriseKey")
	assert.False(t, ok)

	// Missing keys keep their documented defaults.
	a = NormalizeAssumptions(JobLoss, map[string]any{})
	got, _ = a.Get(KeyMonthsUnemployed)
	assert.Equal(t, 3.0, got)

	// Numbers arriving as strings are coerced.
	a = NormalizeAssumptions(InflationImpact, map[string]any{"annualInflationRate": "4.5"})
	got, _ = a.Get(KeyAnnualInflationRate)
	assert.Equal(t, 4.5, got)
}

func TestDecodeScenario(t *testing.T) {
	blob := []byte(`{
		"type": "emergency_event",
		"name": "Car repair",
		"assumptions": {"emergencyCost": 2500, "severity": "high"},
		"timeframeMonths": 6,
		"probability": 0.3,
		"impact": "negative"
	}`)

	sc, err := DecodeScenario(blob)
	require.NoError(t, err)

	assert.Len(t, sc.ID, 26) // a fresh ULID
	assert.Equal(t, EmergencyEvent, sc.Type)
	assert.Equal(t, Negative, sc.Impact)
	cost, ok := sc.Assumptions.Get(KeyEmergencyCost)
	require.True(t, ok)
	assert.Equal(t, 2500.0, cost)
	_, ok = sc.Assumptions.Get("severity")
	assert.False(t, ok)
}

func TestDecodeScenario_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		blob string
	}{
		{"unknown type", `{"type": "lottery_win", "timeframeMonths": 12}`},
		{"zero timeframe", `{"type": "job_loss", "timeframeMonths": 0}`},
		{"probability out of range", `{"type": "job_loss", "timeframeMonths": 12, "probability": 1.5}`},
		{"not json", `{`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeScenario([]byte(tc.blob))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

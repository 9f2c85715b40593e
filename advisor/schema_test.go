package advisor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	wrapped := []byte(`{"scenarios": [{"name": "raise"}, {"name": "layoff"}]}`)
	doc, err := extract(wrapped, "$.scenarios")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name": "raise"}, {"name": "layoff"}]`, string(doc))

	// A bare array passes through untouched.
	bare := []byte(`[{"name": "raise"}]`)
	doc, err = extract(bare, "$.scenarios")
	require.NoError(t, err)
	assert.JSONEq(t, string(bare), string(doc))

	_, err = extract([]byte(`{"other": 1}`), "$.scenarios")
	assert.Error(t, err)

	_, err = extract([]byte(`not json`), "$.scenarios")
	assert.Error(t, err)
}

func TestValidateScenarioListSchema(t *testing.T) {
	good := []byte(`[{
		"type": "income_change",
		"name": "10% raise",
		"assumptions": {"percentageChange": 10},
		"timeframeMonths": 12,
		"probability": 0.6,
		"impact": "positive"
	}]`)
	assert.NoError(t, validateSchema(scenarioListSchema, good))

	cases := map[string]string{
		"empty list":     `[]`,
		"unknown type":   `[{"type": "lottery_win", "name": "x", "timeframeMonths": 12}]`,
		"zero timeframe": `[{"type": "income_change", "name": "x", "timeframeMonths": 0}]`,
		"missing name":   `[{"type": "income_change", "timeframeMonths": 12}]`,
		"probability>1":  `[{"type": "income_change", "name": "x", "timeframeMonths": 12, "probability": 1.5}]`,
	}
	for name, doc := range cases {
		assert.Error(t, validateSchema(scenarioListSchema, []byte(doc)), name)
	}
}

func TestValidateVerificationSchema(t *testing.T) {
	good := []byte(`{
		"isValid": false,
		"issues": ["return rate too optimistic"],
		"adjustments": [{"key": "annualReturnRate", "value": 6.5}],
		"verificationScore": 0.4,
		"explanation": "historic equity returns rarely sustain 15%"
	}`)
	assert.NoError(t, validateSchema(verificationSchema, good))

	cases := map[string]string{
		"missing score": `{"isValid": true}`,
		"score>1":       `{"isValid": true, "verificationScore": 1.2}`,
		"map adjustments": `{"isValid": true, "verificationScore": 0.8,
			"adjustments": {"annualReturnRate": 6.5}}`,
	}
	for name, doc := range cases {
		assert.Error(t, validateSchema(verificationSchema, []byte(doc)), name)
	}
}

func TestVerificationWireResult(t *testing.T) {
	raw := []byte(`{
		"isValid": false,
		"issues": ["too optimistic"],
		"adjustments": [
			{"key": "annualReturnRate", "value": 6.5},
			{"key": "percentageChange", "value": -2}
		],
		"verificationScore": 0.35,
		"explanation": "rates corrected"
	}`)
	var w verificationWire
	require.NoError(t, json.Unmarshal(raw, &w))

	v := w.result()
	assert.False(t, v.IsValid)
	assert.Equal(t, []string{"too optimistic"}, v.Issues)
	assert.Equal(t, map[string]float64{"annualReturnRate": 6.5, "percentageChange": -2}, v.Adjustments)
	assert.Equal(t, 0.35, v.VerificationScore)
	assert.Equal(t, "rates corrected", v.Explanation)
}

func TestVerificationWireResultEmpty(t *testing.T) {
	var w verificationWire
	require.NoError(t, json.Unmarshal([]byte(`{"isValid": true, "verificationScore": 1}`), &w))

	v := w.result()
	assert.True(t, v.IsValid)
	assert.NotNil(t, v.Issues)
	assert.Empty(t, v.Issues)
	assert.NotNil(t, v.Adjustments)
	assert.Empty(t, v.Adjustments)
}

func TestKeyList(t *testing.T) {
	list := keyList()
	assert.Contains(t, list, "income_change: percentageChange")
	assert.Contains(t, list, "job_loss: monthsUnemployed")
	// goal_achievement has no tunable keys and stays out of the hint.
	assert.NotContains(t, list, "goal_achievement")
}

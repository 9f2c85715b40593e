// Package advisor implements the fincoach.Advisor contract on top of
// Google's generative models.
//
// Every operation sends one structured prompt and expects JSON back,
// validated twice: once by the model's response schema, once locally. A
// malformed answer is therefore indistinguishable from a failed call, and
// the caller's fail-open wrapper substitutes the safe default either way.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/tmaury/fincoach"
)

// DefaultModel is used when the caller does not pick one.
const DefaultModel = "gemini-2.5-flash"

// Client asks a generative model to generate, verify and narrate financial
// scenarios. Wrap it in a fincoach.Failsafe before handing it to a Coach.
type Client struct {
	client *genai.Client
	model  string
}

var _ fincoach.Advisor = (*Client)(nil)

// New returns a Client on the given genai client.
func New(client *genai.Client, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: client, model: model}
}

const systemInstruction = `You are the statistical reviewer inside a personal-finance
coaching tool. You reason about household cash-flow projections: Monte Carlo
outcome distributions, their assumptions, and their plausibility. You answer
with JSON matching the requested schema exactly, unless asked for plain text.
You stay descriptive and educational, and never prescribe specific
investments.`

// GenerateScenarios asks the model for count scenarios covering a mix of
// positive and negative futures.
func (c *Client) GenerateScenarios(ctx context.Context, sc fincoach.SimulationContext, count int) ([]*fincoach.FinancialScenario, error) {
	prompt := fmt.Sprintf(`Propose %d hypothetical financial scenarios for this household:
monthly income %.2f, monthly expenses %.2f, savings %.2f, debt %.2f,
savings rate %.2f%%/year, debt rate %.2f%%/year,
monthly contributions: savings %.2f, debt payment %.2f.

Cover a mix of positive and negative futures. Valid scenario types: %s.
Assumption keys per type: %s.`,
		count,
		sc.CurrentIncome, sc.CurrentExpenses, sc.CurrentSavings, sc.CurrentDebt,
		sc.InterestRates.Savings, sc.InterestRates.Debt,
		sc.MonthlyContributions.Savings, sc.MonthlyContributions.DebtPayment,
		typeList(), keyList())

	raw, err := c.generate(ctx, prompt, scenarioListResponseSchema)
	if err != nil {
		return nil, err
	}
	doc, err := extract(raw, "$.scenarios")
	if err != nil {
		return nil, err
	}
	if err := validateSchema(scenarioListSchema, doc); err != nil {
		return nil, err
	}

	var scenarios []*fincoach.FinancialScenario
	if err := json.Unmarshal(doc, &scenarios); err != nil {
		return nil, fmt.Errorf("decoding scenarios: %w", err)
	}
	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return scenarios, nil
}

// Verify asks the model whether a projection is plausible for its scenario,
// and for numeric corrections when it is not.
func (c *Client) Verify(ctx context.Context, sc fincoach.SimulationContext, scenario *fincoach.FinancialScenario, result *fincoach.MonteCarloResult) (*fincoach.VerificationResult, error) {
	scenarioJSON, err := json.Marshal(scenario)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(`Sanity-check this Monte Carlo projection.

Household: monthly income %.2f, expenses %.2f, savings %.2f, debt %.2f.
Scenario: %s
Distribution of final net worth: mean %.2f, median %.2f, standard deviation %.2f,
10th percentile %.2f, 90th percentile %.2f, probability of ending above the
starting net worth %.2f.

Is this outcome plausible given the scenario's assumptions? If not, list the
issues and propose corrected values for these assumption keys only: %s.`,
		sc.CurrentIncome, sc.CurrentExpenses, sc.CurrentSavings, sc.CurrentDebt,
		scenarioJSON,
		result.Mean, result.Median, result.StandardDeviation,
		result.Percentile10, result.Percentile90, result.ProbabilityOfSuccess,
		strings.Join(scenario.Assumptions.Keys(), ", "))

	raw, err := c.generate(ctx, prompt, verificationResponseSchema)
	if err != nil {
		return nil, err
	}
	if err := validateSchema(verificationSchema, raw); err != nil {
		return nil, err
	}

	var w verificationWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decoding verification: %w", err)
	}
	return w.result(), nil
}

// SummarizeRecommendations asks the model for a closing, prioritized set of
// educational actions over the run's scenario summaries.
func (c *Client) SummarizeRecommendations(ctx context.Context, sc fincoach.SimulationContext, summaries []fincoach.ScenarioSummary) ([]fincoach.Recommendation, error) {
	summariesJSON, err := json.Marshal(summaries)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(`A coaching run over this household finished:
monthly income %.2f, expenses %.2f, savings %.2f, debt %.2f.

Scenario summaries, riskiest first: %s

Write a short prioritized list of educational actions. Address the highest
risk scenario, build on the most confident positive one, and account for the
open issue count.`,
		sc.CurrentIncome, sc.CurrentExpenses, sc.CurrentSavings, sc.CurrentDebt,
		summariesJSON)

	raw, err := c.generate(ctx, prompt, recommendationListResponseSchema)
	if err != nil {
		return nil, err
	}
	doc, err := extract(raw, "$.recommendations")
	if err != nil {
		return nil, err
	}
	if err := validateSchema(recommendationListSchema, doc); err != nil {
		return nil, err
	}

	var wire []recommendationWire
	if err := json.Unmarshal(doc, &wire); err != nil {
		return nil, fmt.Errorf("decoding recommendations: %w", err)
	}
	recommendations := make([]fincoach.Recommendation, 0, len(wire))
	for _, w := range wire {
		recommendations = append(recommendations, fincoach.Recommendation{
			Priority:  fincoach.ParsePriority(w.Priority),
			Action:    w.Action,
			Rationale: w.Rationale,
		})
	}
	return recommendations, nil
}

// ExplainComparison narrates a what-if comparison in plain text.
func (c *Client) ExplainComparison(ctx context.Context, sc fincoach.SimulationContext, report *fincoach.WhatIfReport) (string, error) {
	prompt := fmt.Sprintf(`Explain this what-if comparison in two or three plain sentences,
for someone without a statistics background.

Household: monthly income %.2f, expenses %.2f, savings %.2f, debt %.2f.
Changes over %d months: income %+.2f, expenses %+.2f, extra savings %+.2f,
extra debt payment %+.2f.
Effect: final savings %+.2f, debt reduction %+.2f, net worth %+.2f,
emergency runway %+.1f months.`,
		sc.CurrentIncome, sc.CurrentExpenses, sc.CurrentSavings, sc.CurrentDebt,
		report.Changes.TimeframeMonths,
		report.Changes.IncomeChange, report.Changes.ExpenseChange,
		report.Changes.ExtraSavings, report.Changes.ExtraDebtPayment,
		report.Improvement.SavingsDifference, report.Improvement.DebtReduction,
		report.Improvement.NetWorthDifference, report.Improvement.RunwayDifference)

	raw, err := c.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}
	analysis := strings.TrimSpace(string(raw))
	if analysis == "" {
		return "", fmt.Errorf("empty analysis from %s", c.model)
	}
	return analysis, nil
}

// generate sends one prompt and returns the raw text of the first
// candidate. A nil schema requests plain text instead of JSON.
func (c *Client) generate(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}
	if schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = schema
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from %s", c.model)
	}
	return []byte(resp.Candidates[0].Content.Parts[0].Text), nil
}

func typeList() string {
	return strings.Join(scenarioTypeNames, ", ")
}

func keyList() string {
	var b strings.Builder
	for _, t := range fincoach.ScenarioTypes {
		keys := fincoach.DefaultAssumptions(t).Keys()
		if len(keys) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %s; ", t, strings.Join(keys, ", "))
	}
	return strings.TrimSuffix(b.String(), "; ")
}

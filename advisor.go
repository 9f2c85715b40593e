package fincoach

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultAdvisorTimeout bounds every external reasoning call. A call that
// outlives it is treated as failed and the fail-open default applies.
const DefaultAdvisorTimeout = 15 * time.Second

// VerificationResult is the advisor's plausibility check of a projection.
type VerificationResult struct {
	IsValid bool     `json:"isValid"`
	Issues  []string `json:"issues"`
	// Adjustments proposes replacement values, keyed by assumption key.
	// They apply only to keys a scenario already carries.
	Adjustments       map[string]float64 `json:"adjustments"`
	VerificationScore float64            `json:"verificationScore"`
	Explanation       string             `json:"explanation"`
}

// DefaultVerification is the fail-open replacement for an unavailable
// verification: valid, neutral score, no corrections.
func DefaultVerification() *VerificationResult {
	return &VerificationResult{
		IsValid:           true,
		Issues:            []string{},
		Adjustments:       map[string]float64{},
		VerificationScore: 0.5,
		Explanation:       "verification unavailable",
	}
}

// Priority orders recommendations.
type Priority string

const (
	Critical Priority = "critical"
	High     Priority = "high"
	Medium   Priority = "medium"
	Low      Priority = "low"
)

// ParsePriority returns the Priority for s, defaulting to Medium.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case Critical, High, Low:
		return Priority(s)
	default:
		return Medium
	}
}

// Recommendation is one actionable, educational suggestion.
type Recommendation struct {
	Priority  Priority `json:"priority"`
	Action    string   `json:"action"`
	Rationale string   `json:"rationale"`
}

// ScenarioSummary condenses one analyzed scenario for the closing
// recommendation call.
type ScenarioSummary struct {
	ScenarioID string       `json:"scenarioId"`
	Name       string       `json:"name"`
	Type       ScenarioType `json:"type"`
	Impact     Impact       `json:"impact"`
	RiskScore  int          `json:"riskScore"`
	Confidence float64      `json:"confidence"`
	NetWorth   float64      `json:"netWorth"`
	OpenIssues int          `json:"openIssues"`
}

// Advisor abstracts the external structured reasoning service. Every method
// blocks until the collaborator answers, errors, or the context expires;
// callers are expected to wrap implementations in a Failsafe so a failure
// degrades to the documented default instead of propagating.
type Advisor interface {
	// GenerateScenarios proposes count scenarios for the context.
	GenerateScenarios(ctx context.Context, c SimulationContext, count int) ([]*FinancialScenario, error)
	// Verify sanity-checks a projection and may propose numeric corrections.
	Verify(ctx context.Context, c SimulationContext, sc *FinancialScenario, result *MonteCarloResult) (*VerificationResult, error)
	// SummarizeRecommendations closes a coaching run with prioritized actions.
	SummarizeRecommendations(ctx context.Context, c SimulationContext, summaries []ScenarioSummary) ([]Recommendation, error)
	// ExplainComparison narrates a what-if comparison.
	ExplainComparison(ctx context.Context, c SimulationContext, report *WhatIfReport) (string, error)
}

// Failsafe wraps an Advisor with the fail-open policy: it enforces the call
// timeout and replaces any failure (timeout, error, schema violation) with
// the documented safe default. Its methods never return an error; failures
// are only logged. Verification enhances trust, it never blocks the
// pipeline.
type Failsafe struct {
	Advisor Advisor
	Timeout time.Duration
	Log     zerolog.Logger
}

// NewFailsafe wraps advisor with the default timeout.
func NewFailsafe(advisor Advisor, log zerolog.Logger) *Failsafe {
	return &Failsafe{Advisor: advisor, Timeout: DefaultAdvisorTimeout, Log: log}
}

func (f *Failsafe) timeout() time.Duration {
	if f.Timeout > 0 {
		return f.Timeout
	}
	return DefaultAdvisorTimeout
}

// GenerateScenarios falls back to the built-in starter catalog.
func (f *Failsafe) GenerateScenarios(ctx context.Context, c SimulationContext, count int) ([]*FinancialScenario, error) {
	cctx, cancel := context.WithTimeout(ctx, f.timeout())
	defer cancel()
	scenarios, err := f.Advisor.GenerateScenarios(cctx, c, count)
	if err == nil && len(scenarios) > 0 {
		for _, sc := range scenarios {
			if err = sc.Validate(); err != nil {
				break
			}
		}
	}
	if err != nil || len(scenarios) == 0 {
		f.Log.Warn().Err(err).Msg("scenario generation unavailable, using starter catalog")
		return DefaultScenarios(count), nil
	}
	return scenarios, nil
}

// Verify falls back to the neutral, valid verification.
func (f *Failsafe) Verify(ctx context.Context, c SimulationContext, sc *FinancialScenario, result *MonteCarloResult) (*VerificationResult, error) {
	cctx, cancel := context.WithTimeout(ctx, f.timeout())
	defer cancel()
	v, err := f.Advisor.Verify(cctx, c, sc, result)
	if err != nil || v == nil {
		f.Log.Warn().Err(err).Str("scenario", sc.ID).Msg("verification unavailable, failing open")
		return DefaultVerification(), nil
	}
	if v.VerificationScore < 0 {
		v.VerificationScore = 0
	}
	if v.VerificationScore > 1 {
		v.VerificationScore = 1
	}
	return v, nil
}

// SummarizeRecommendations falls back to the fixed educational set.
func (f *Failsafe) SummarizeRecommendations(ctx context.Context, c SimulationContext, summaries []ScenarioSummary) ([]Recommendation, error) {
	cctx, cancel := context.WithTimeout(ctx, f.timeout())
	defer cancel()
	recs, err := f.Advisor.SummarizeRecommendations(cctx, c, summaries)
	if err != nil || len(recs) == 0 {
		f.Log.Warn().Err(err).Msg("recommendation synthesis unavailable, using fallbacks")
		return FallbackRecommendations(), nil
	}
	return recs, nil
}

// ExplainComparison falls back to a deterministic sentence on the delta.
func (f *Failsafe) ExplainComparison(ctx context.Context, c SimulationContext, report *WhatIfReport) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, f.timeout())
	defer cancel()
	analysis, err := f.Advisor.ExplainComparison(cctx, c, report)
	if err != nil || analysis == "" {
		f.Log.Warn().Err(err).Msg("comparison analysis unavailable, using template")
		return fallbackAnalysis(report), nil
	}
	return analysis, nil
}

// Offline is the safe-default Advisor: it answers every call with the
// fail-open value, locally and instantly. It backs the -offline mode and
// most tests.
type Offline struct{}

func (Offline) GenerateScenarios(_ context.Context, _ SimulationContext, count int) ([]*FinancialScenario, error) {
	return DefaultScenarios(count), nil
}

func (Offline) Verify(context.Context, SimulationContext, *FinancialScenario, *MonteCarloResult) (*VerificationResult, error) {
	return DefaultVerification(), nil
}

func (Offline) SummarizeRecommendations(context.Context, SimulationContext, []ScenarioSummary) ([]Recommendation, error) {
	return FallbackRecommendations(), nil
}

func (Offline) ExplainComparison(_ context.Context, _ SimulationContext, report *WhatIfReport) (string, error) {
	return fallbackAnalysis(report), nil
}

// DefaultScenarios is the starter catalog used when scenario generation is
// unavailable: a spread of common positive and negative futures over a
// one-year horizon.
func DefaultScenarios(count int) []*FinancialScenario {
	catalog := []struct {
		t           ScenarioType
		name        string
		description string
		probability float64
		impact      Impact
	}{
		{EmergencyEvent, "Unexpected expense shock", "A one-time emergency cost hits savings in the first month.", 0.3, Negative},
		{DebtPayoff, "Accelerated debt payoff", "An extra payment goes to debt every month.", 0.6, Positive},
		{InvestmentGrowth, "Steady market growth", "Savings compound at a typical long-run market return.", 0.5, Positive},
		{ExpenseReduction, "Household budget trim", "Recurring expenses are cut and stay cut.", 0.5, Positive},
		{JobLoss, "Temporary job loss", "Income stops for the first months of the horizon.", 0.2, Negative},
		{InflationImpact, "Persistent inflation", "Expenses grow a little every month.", 0.4, Negative},
		{IncomeChange, "Salary raise", "Income steps up by a percentage.", 0.5, Positive},
		{GoalAchievement, "Stay the course", "No change: the current plan, simulated as-is.", 1, Neutral},
	}
	if count < 1 || count > len(catalog) {
		count = 5
	}
	scenarios := make([]*FinancialScenario, 0, count)
	for _, entry := range catalog[:count] {
		sc := NewScenario(entry.t, entry.name, 12)
		sc.Description = entry.description
		sc.Probability = entry.probability
		sc.Impact = entry.impact
		scenarios = append(scenarios, sc)
	}
	return scenarios
}

// FallbackRecommendations is the fixed educational set used when
// recommendation synthesis is unavailable.
func FallbackRecommendations() []Recommendation {
	return []Recommendation{
		{
			Priority:  High,
			Action:    "Build an emergency fund covering 3-6 months of expenses",
			Rationale: "A cash buffer absorbs income shocks without new debt.",
		},
		{
			Priority:  High,
			Action:    "Prioritize paying down high-interest debt",
			Rationale: "Interest on debt usually compounds faster than savings grow.",
		},
		{
			Priority:  Medium,
			Action:    "Review recurring expenses for reduction opportunities",
			Rationale: "Small recurring cuts compound over the whole horizon.",
		},
	}
}

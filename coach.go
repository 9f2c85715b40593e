package fincoach

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPassBudget is how many simulate-verify-adjust passes a coaching run
// may spend before returning best-effort results.
const DefaultPassBudget = 3

// DefaultScenarioCount is how many scenarios a coaching run asks the advisor
// for.
const DefaultScenarioCount = 5

// Coach orchestrates the autonomous refinement loop: acquire scenarios,
// simulate, verify, apply numeric corrections, re-simulate, under a bounded
// pass budget.
type Coach struct {
	// Advisor must be fail-open (a *Failsafe or Offline): the loop relies
	// on it never returning an error. NewCoach takes care of the wrapping.
	Advisor       Advisor
	Simulator     Simulator
	ScenarioCount int
	Log           zerolog.Logger
	// Now stamps milestone dates; tests pin it.
	Now func() time.Time
}

// NewCoach wraps advisor in a Failsafe and returns a ready Coach.
func NewCoach(advisor Advisor, log zerolog.Logger) *Coach {
	return &Coach{Advisor: NewFailsafe(advisor, log), Log: log}
}

func (co *Coach) advisor() Advisor {
	if co.Advisor != nil {
		return co.Advisor
	}
	return Offline{}
}

func (co *Coach) now() time.Time {
	if co.Now != nil {
		return co.Now()
	}
	return time.Now()
}

// CoachReport is the best-effort outcome of a coaching run. An exhausted
// pass budget is not an error: InvalidRemaining counts the scenarios whose
// last verification still failed, and the confidence score reflects it.
type CoachReport struct {
	Scenarios        []*FinancialScenario `json:"scenarios"`
	Results          []ScenarioResult     `json:"results"`
	Recommendations  []Recommendation     `json:"recommendations"`
	ConfidenceScore  float64              `json:"confidenceScore"`
	Passes           int                  `json:"passes"`
	InvalidRemaining int                  `json:"invalidRemaining"`
}

// Run executes up to maxPasses refinement passes over advisor-generated
// scenarios. A zero maxPasses means DefaultPassBudget.
//
// Every pass re-simulates every current scenario, valid or not, as a drift
// defense; the loop stops at the first pass where all verifications hold.
// Corrections proposed on a failed verification are applied only after the
// whole pass's verifications complete, and only to assumption keys the
// scenario already carries.
func (co *Coach) Run(ctx context.Context, c SimulationContext, maxPasses int) (*CoachReport, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if maxPasses == 0 {
		maxPasses = DefaultPassBudget
	}
	if maxPasses < 1 {
		return nil, fmt.Errorf("%w: maxPasses must be at least 1, got %d", ErrInvalidInput, maxPasses)
	}
	count := co.ScenarioCount
	if count < 1 {
		count = DefaultScenarioCount
	}

	advisor := co.advisor()
	scenarios, err := advisor.GenerateScenarios(ctx, c, count)
	if err != nil {
		// A non-failsafe advisor leaked an error: recover the same way.
		co.Log.Warn().Err(err).Msg("scenario generation unavailable, using starter catalog")
		scenarios = DefaultScenarios(count)
	}

	start := co.now()
	results := make([]ScenarioResult, len(scenarios))
	verifications := make([]*VerificationResult, len(scenarios))

	passes := 0
	allValid := false
	for pass := 0; pass < maxPasses && !allValid; pass++ {
		passes++
		co.Log.Debug().Int("pass", passes).Int("scenarios", len(scenarios)).Msg("refinement pass")

		// Scenario work within a pass is independent; passes are not.
		errs := make([]error, len(scenarios))
		var wg sync.WaitGroup
		for i, sc := range scenarios {
			wg.Add(1)
			go func(i int, sc *FinancialScenario) {
				defer wg.Done()
				mc, err := co.Simulator.Simulate(ctx, c, sc)
				if err != nil {
					errs[i] = err
					return
				}
				results[i] = Analyze(c, sc, mc, start)
				v, err := advisor.Verify(ctx, c, sc, mc)
				if err != nil || v == nil {
					v = DefaultVerification()
				}
				verifications[i] = v
				results[i].ConfidenceLevel = v.VerificationScore
			}(i, sc)
		}
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}

		// The pass boundary is the write barrier: no assumption changes
		// until every verification of this pass is in.
		allValid = true
		for i, v := range verifications {
			if v.IsValid {
				continue
			}
			allValid = false
			if pass == maxPasses-1 {
				continue // no pass left to re-simulate in
			}
			for key, value := range v.Adjustments {
				if scenarios[i].Assumptions.Set(key, value) {
					co.Log.Debug().Str("scenario", scenarios[i].ID).Str("key", key).Float64("value", value).Msg("assumption adjusted")
				}
			}
		}
	}

	invalid := 0
	var scoreSum float64
	for _, v := range verifications {
		if !v.IsValid {
			invalid++
		}
		scoreSum += v.VerificationScore
	}
	confidence := 0.0
	if len(verifications) > 0 {
		confidence = scoreSum / float64(len(verifications))
	}

	recommendations, err := advisor.SummarizeRecommendations(ctx, c, summarize(results, verifications))
	if err != nil || len(recommendations) == 0 {
		recommendations = FallbackRecommendations()
	}

	return &CoachReport{
		Scenarios:        scenarios,
		Results:          results,
		Recommendations:  recommendations,
		ConfidenceScore:  confidence,
		Passes:           passes,
		InvalidRemaining: invalid,
	}, nil
}

// summarize condenses the final pass for the recommendation call, riskiest
// scenario first.
func summarize(results []ScenarioResult, verifications []*VerificationResult) []ScenarioSummary {
	summaries := make([]ScenarioSummary, 0, len(results))
	for i, r := range results {
		openIssues := 0
		if v := verifications[i]; v != nil && !v.IsValid {
			openIssues = len(v.Issues)
			if openIssues == 0 {
				openIssues = 1
			}
		}
		summaries = append(summaries, ScenarioSummary{
			ScenarioID: r.ScenarioID,
			Name:       r.ScenarioName,
			Type:       r.Type,
			Impact:     r.Impact,
			RiskScore:  r.RiskScore,
			Confidence: r.ConfidenceLevel,
			NetWorth:   r.Outcome.NetWorth,
			OpenIssues: openIssues,
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool { return summaries[i].RiskScore > summaries[j].RiskScore })
	return summaries
}

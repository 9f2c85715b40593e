package fincoach

import (
	"fmt"
	"math"
	"time"
)

// ProjectedOutcome summarizes where the aggregate distribution lands the
// household at the end of the horizon.
type ProjectedOutcome struct {
	FinalSavings          float64 `json:"finalSavings"`
	FinalDebt             float64 `json:"finalDebt"`
	NetWorth              float64 `json:"netWorth"`
	MonthlyDisposable     float64 `json:"monthlyDisposable"`
	EmergencyRunwayMonths float64 `json:"emergencyRunwayMonths"`
}

// Milestone is a dated checkpoint interpolated from the aggregate.
type Milestone struct {
	Month   int       `json:"month"`
	Date    time.Time `json:"date"`
	Savings float64   `json:"savings"`
	Debt    float64   `json:"debt"`
	Event   string    `json:"event"`
}

// ScenarioResult is the analyzed projection for one scenario.
type ScenarioResult struct {
	ScenarioID      string           `json:"scenarioId"`
	ScenarioName    string           `json:"scenarioName"`
	Type            ScenarioType     `json:"type"`
	Impact          Impact           `json:"impact"`
	Outcome         ProjectedOutcome `json:"projectedOutcome"`
	Milestones      []Milestone      `json:"milestones"`
	RiskScore       int              `json:"riskScore"`
	ConfidenceLevel float64          `json:"confidenceLevel"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Distribution    MonteCarloResult `json:"distribution"`
}

// RiskScore maps a distribution to a score in [0,100]: up to 50 points for
// dispersion (coefficient of variation, capped) plus up to 50 points for
// failure probability. A zero mean contributes the full dispersion cap.
func RiskScore(result *MonteCarloResult) int {
	dispersion := 50.0
	if result.Mean != 0 {
		dispersion = math.Min(50, result.StandardDeviation/math.Abs(result.Mean)*100)
	}
	failure := (1 - result.ProbabilityOfSuccess) * 50
	return int(math.Round(dispersion + failure))
}

// checkpointMonths are the months at which milestones are interpolated.
var checkpointMonths = []int{3, 6, 12, 18, 24}

// Milestones interpolates dated checkpoints from the aggregate result.
//
// The projections are linear interpolations of the final aggregate, not
// independent re-simulations, so a milestone and the Monte Carlo path can
// disagree on the intermediate trajectory. This is a deliberate
// approximation.
func Milestones(c SimulationContext, sc *FinancialScenario, result *MonteCarloResult, start time.Time) []Milestone {
	var milestones []Milestone
	for _, month := range checkpointMonths {
		if month > sc.TimeframeMonths {
			break
		}
		savings := c.CurrentSavings + result.Mean*float64(month)/float64(sc.TimeframeMonths)
		debt := math.Max(0, c.CurrentDebt-c.MonthlyContributions.DebtPayment*float64(month))

		event := fmt.Sprintf("Month %d checkpoint", month)
		switch {
		case debt == 0 && c.CurrentDebt > 0:
			event = "Debt-free milestone"
		case savings >= 6*c.CurrentExpenses:
			event = "6-month emergency fund achieved"
		}

		milestones = append(milestones, Milestone{
			Month:   month,
			Date:    start.AddDate(0, month, 0),
			Savings: savings,
			Debt:    debt,
			Event:   event,
		})
	}
	return milestones
}

// Analyze derives the full scenario result from a simulated distribution.
//
// The final debt follows the same linear amortization as the milestones and
// the final savings are backed out of the mean net worth, keeping the
// outcome and the milestone trajectory consistent with each other.
func Analyze(c SimulationContext, sc *FinancialScenario, result *MonteCarloResult, start time.Time) ScenarioResult {
	finalDebt := math.Max(0, c.CurrentDebt-c.MonthlyContributions.DebtPayment*float64(sc.TimeframeMonths))
	finalSavings := result.Mean + finalDebt

	runway := 0.0
	if c.CurrentExpenses > 0 {
		runway = finalSavings / c.CurrentExpenses
	}

	return ScenarioResult{
		ScenarioID:   sc.ID,
		ScenarioName: sc.Name,
		Type:         sc.Type,
		Impact:       sc.Impact,
		Outcome: ProjectedOutcome{
			FinalSavings:          finalSavings,
			FinalDebt:             finalDebt,
			NetWorth:              result.Mean,
			MonthlyDisposable:     c.CurrentIncome - c.CurrentExpenses,
			EmergencyRunwayMonths: runway,
		},
		Milestones:      Milestones(c, sc, result, start),
		RiskScore:       RiskScore(result),
		ConfidenceLevel: 0.5,
		Distribution:    *result,
	}
}

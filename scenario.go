package fincoach

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// ScenarioType is the closed set of hypothesized futures the engine knows how
// to simulate.
type ScenarioType string

const (
	IncomeChange     ScenarioType = "income_change"
	ExpenseReduction ScenarioType = "expense_reduction"
	DebtPayoff       ScenarioType = "debt_payoff"
	InvestmentGrowth ScenarioType = "investment_growth"
	EmergencyEvent   ScenarioType = "emergency_event"
	GoalAchievement  ScenarioType = "goal_achievement"
	InflationImpact  ScenarioType = "inflation_impact"
	JobLoss          ScenarioType = "job_loss"
)

// ScenarioTypes lists all valid scenario types, in a stable order.
var ScenarioTypes = []ScenarioType{
	IncomeChange, ExpenseReduction, DebtPayoff, InvestmentGrowth,
	EmergencyEvent, GoalAchievement, InflationImpact, JobLoss,
}

// ParseScenarioType returns the ScenarioType for s, or an InvalidInput error.
func ParseScenarioType(s string) (ScenarioType, error) {
	for _, t := range ScenarioTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown scenario type %q", ErrInvalidInput, s)
}

// Impact qualifies the expected direction of a scenario on net worth.
type Impact string

const (
	Positive Impact = "positive"
	Negative Impact = "negative"
	Neutral  Impact = "neutral"
)

// ParseImpact returns the Impact for s, defaulting to Neutral for anything
// the collaborator sends that is not recognized.
func ParseImpact(s string) Impact {
	switch Impact(s) {
	case Positive, Negative:
		return Impact(s)
	default:
		return Neutral
	}
}

// FinancialScenario is a hypothesized financial future. Scenarios come from
// the advisor (or are supplied by the caller) and are mutated only by the
// refinement loop's self-correction step, through Assumptions.Set.
type FinancialScenario struct {
	ID              string       `json:"id"`
	Type            ScenarioType `json:"type"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Assumptions     Assumptions  `json:"assumptions"`
	TimeframeMonths int          `json:"timeframeMonths" validate:"gt=0"`
	Probability     float64      `json:"probability" validate:"gte=0,lte=1"`
	Impact          Impact       `json:"impact"`
}

// Validate checks the scenario invariants.
func (s *FinancialScenario) Validate() error {
	if _, err := ParseScenarioType(string(s.Type)); err != nil {
		return err
	}
	if s.TimeframeMonths < 1 {
		return fmt.Errorf("%w: timeframeMonths must be positive, got %d", ErrInvalidInput, s.TimeframeMonths)
	}
	if s.Probability < 0 || s.Probability > 1 {
		return fmt.Errorf("%w: probability must be in [0,1], got %g", ErrInvalidInput, s.Probability)
	}
	if s.Assumptions == nil {
		return fmt.Errorf("%w: scenario %q has no assumptions", ErrInvalidInput, s.ID)
	}
	return nil
}

var idEntropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

// NewScenarioID returns a fresh ULID for locally created scenarios.
func NewScenarioID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), idEntropy).String()
}

// NewScenario builds a scenario of the given type with its default
// assumptions and a fresh ID.
func NewScenario(t ScenarioType, name string, timeframeMonths int) *FinancialScenario {
	return &FinancialScenario{
		ID:              NewScenarioID(),
		Type:            t,
		Name:            name,
		Assumptions:     DefaultAssumptions(t),
		TimeframeMonths: timeframeMonths,
		Probability:     0.5,
		Impact:          Neutral,
	}
}

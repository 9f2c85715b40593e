package fincoach

import (
	"encoding/json"
	"strconv"
)

// Assumptions holds the numeric parameters of a scenario, one typed variant
// per scenario type. The key-based accessors exist for the refinement loop:
// the advisor proposes corrections as key/value pairs, and Set applies a
// correction only when the key belongs to the variant. Unknown keys are
// ignored, never inserted.
type Assumptions interface {
	// Keys lists the assumption keys this variant carries.
	Keys() []string
	// Get returns the value for key, and whether the key is known.
	Get(key string) (float64, bool)
	// Set replaces the value for key and reports whether the key is known.
	Set(key string, value float64) bool
}

// Assumption keys, as exchanged with the advisor.
const (
	KeyPercentageChange    = "percentageChange"
	KeyReductionPercentage = "reductionPercentage"
	KeyExtraMonthlyPayment = "extraMonthlyPayment"
	KeyAnnualReturnRate    = "annualReturnRate"
	KeyEmergencyCost       = "emergencyCost"
	KeyAnnualInflationRate = "annualInflationRate"
	KeyMonthsUnemployed    = "monthsUnemployed"
)

// IncomeChangeAssumptions parameterize an income_change scenario.
type IncomeChangeAssumptions struct {
	// PercentageChange is the income change in percent, negative for a cut.
	PercentageChange float64 `json:"percentageChange"`
}

func (a *IncomeChangeAssumptions) Keys() []string { return []string{KeyPercentageChange} }
func (a *IncomeChangeAssumptions) Get(key string) (float64, bool) {
	if key == KeyPercentageChange {
		return a.PercentageChange, true
	}
	return 0, false
}
func (a *IncomeChangeAssumptions) Set(key string, value float64) bool {
	if key == KeyPercentageChange {
		a.PercentageChange = value
		return true
	}
	return false
}

// ExpenseReductionAssumptions parameterize an expense_reduction scenario.
type ExpenseReductionAssumptions struct {
	ReductionPercentage float64 `json:"reductionPercentage"`
}

func (a *ExpenseReductionAssumptions) Keys() []string { return []string{KeyReductionPercentage} }
func (a *ExpenseReductionAssumptions) Get(key string) (float64, bool) {
	if key == KeyReductionPercentage {
		return a.ReductionPercentage, true
	}
	return 0, false
}
func (a *ExpenseReductionAssumptions) Set(key string, value float64) bool {
	if key == KeyReductionPercentage {
		a.ReductionPercentage = value
		return true
	}
	return false
}

// DebtPayoffAssumptions parameterize a debt_payoff scenario.
type DebtPayoffAssumptions struct {
	// ExtraMonthlyPayment is paid on top of the context's regular debt payment.
	ExtraMonthlyPayment float64 `json:"extraMonthlyPayment"`
}

func (a *DebtPayoffAssumptions) Keys() []string { return []string{KeyExtraMonthlyPayment} }
func (a *DebtPayoffAssumptions) Get(key string) (float64, bool) {
	if key == KeyExtraMonthlyPayment {
		return a.ExtraMonthlyPayment, true
	}
	return 0, false
}
func (a *DebtPayoffAssumptions) Set(key string, value float64) bool {
	if key == KeyExtraMonthlyPayment {
		a.ExtraMonthlyPayment = value
		return true
	}
	return false
}

// InvestmentGrowthAssumptions parameterize an investment_growth scenario.
type InvestmentGrowthAssumptions struct {
	AnnualReturnRate float64 `json:"annualReturnRate"`
}

func (a *InvestmentGrowthAssumptions) Keys() []string { return []string{KeyAnnualReturnRate} }
func (a *InvestmentGrowthAssumptions) Get(key string) (float64, bool) {
	if key == KeyAnnualReturnRate {
		return a.AnnualReturnRate, true
	}
	return 0, false
}
func (a *InvestmentGrowthAssumptions) Set(key string, value float64) bool {
	if key == KeyAnnualReturnRate {
		a.AnnualReturnRate = value
		return true
	}
	return false
}

// EmergencyEventAssumptions parameterize an emergency_event scenario.
type EmergencyEventAssumptions struct {
	// Cost is withdrawn from savings once, in the first month.
	Cost float64 `json:"emergencyCost"`
}

func (a *EmergencyEventAssumptions) Keys() []string { return []string{KeyEmergencyCost} }
func (a *EmergencyEventAssumptions) Get(key string) (float64, bool) {
	if key == KeyEmergencyCost {
		return a.Cost, true
	}
	return 0, false
}
func (a *EmergencyEventAssumptions) Set(key string, value float64) bool {
	if key == KeyEmergencyCost {
		a.Cost = value
		return true
	}
	return false
}

// GoalAchievementAssumptions carry no perturbation: a goal_achievement
// scenario simulates the context as-is.
type GoalAchievementAssumptions struct{}

func (a *GoalAchievementAssumptions) Keys() []string             { return nil }
func (a *GoalAchievementAssumptions) Get(string) (float64, bool) { return 0, false }
func (a *GoalAchievementAssumptions) Set(string, float64) bool   { return false }

// InflationImpactAssumptions parameterize an inflation_impact scenario.
type InflationImpactAssumptions struct {
	AnnualInflationRate float64 `json:"annualInflationRate"`
}

func (a *InflationImpactAssumptions) Keys() []string { return []string{KeyAnnualInflationRate} }
func (a *InflationImpactAssumptions) Get(key string) (float64, bool) {
	if key == KeyAnnualInflationRate {
		return a.AnnualInflationRate, true
	}
	return 0, false
}
func (a *InflationImpactAssumptions) Set(key string, value float64) bool {
	if key == KeyAnnualInflationRate {
		a.AnnualInflationRate = value
		return true
	}
	return false
}

// JobLossAssumptions parameterize a job_loss scenario.
type JobLossAssumptions struct {
	// MonthsUnemployed zeroes income for the first N months of the horizon.
	MonthsUnemployed float64 `json:"monthsUnemployed"`
}

func (a *JobLossAssumptions) Keys() []string { return []string{KeyMonthsUnemployed} }
func (a *JobLossAssumptions) Get(key string) (float64, bool) {
	if key == KeyMonthsUnemployed {
		return a.MonthsUnemployed, true
	}
	return 0, false
}
func (a *JobLossAssumptions) Set(key string, value float64) bool {
	if key == KeyMonthsUnemployed {
		a.MonthsUnemployed = value
		return true
	}
	return false
}

// DefaultAssumptions returns the documented per-type defaults: a 10% income
// change, 15% expense reduction, 200 extra debt payment, 7% investment
// return, 5000 emergency cost, 3% inflation and 3 months unemployed.
func DefaultAssumptions(t ScenarioType) Assumptions {
	switch t {
	case IncomeChange:
		return &IncomeChangeAssumptions{PercentageChange: 10}
	case ExpenseReduction:
		return &ExpenseReductionAssumptions{ReductionPercentage: 15}
	case DebtPayoff:
		return &DebtPayoffAssumptions{ExtraMonthlyPayment: 200}
	case InvestmentGrowth:
		return &InvestmentGrowthAssumptions{AnnualReturnRate: 7}
	case EmergencyEvent:
		return &EmergencyEventAssumptions{Cost: 5000}
	case InflationImpact:
		return &InflationImpactAssumptions{AnnualInflationRate: 3}
	case JobLoss:
		return &JobLossAssumptions{MonthsUnemployed: 3}
	default:
		return &GoalAchievementAssumptions{}
	}
}

// NormalizeAssumptions maps a loosely typed assumption payload, as received
// from the external collaborator, into the typed variant for t. Missing keys
// keep their documented defaults, unknown keys and non-numeric values are
// dropped.
func NormalizeAssumptions(t ScenarioType, raw map[string]any) Assumptions {
	a := DefaultAssumptions(t)
	for _, key := range a.Keys() {
		if v, ok := raw[key]; ok {
			if f, ok := toFloat(v); ok {
				a.Set(key, f)
			}
		}
	}
	return a
}

// toFloat coerces the value shapes a JSON decoder may produce.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

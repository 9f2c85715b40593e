package fincoach

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is returned when a caller-supplied context, scenario or
// parameter is malformed. It is the only error class the public entry points
// surface; collaborator failures are always recovered locally.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New()

// InterestRates holds annual rates in percent.
type InterestRates struct {
	Savings float64 `json:"savings" yaml:"savings" validate:"gte=0"`
	Debt    float64 `json:"debt" yaml:"debt" validate:"gte=0"`
}

// MonthlyContributions holds the fixed monthly amounts the user sets aside.
type MonthlyContributions struct {
	Savings     float64 `json:"savings" yaml:"savings" validate:"gte=0"`
	DebtPayment float64 `json:"debtPayment" yaml:"debtPayment" validate:"gte=0"`
}

// SimulationContext is the immutable snapshot of a user's financial state
// that drives every simulation. What-if analysis works on a modified copy,
// never on the original.
type SimulationContext struct {
	CurrentIncome   float64 `json:"currentIncome" yaml:"currentIncome" validate:"gte=0"`
	CurrentExpenses float64 `json:"currentExpenses" yaml:"currentExpenses" validate:"gte=0"`
	CurrentSavings  float64 `json:"currentSavings" yaml:"currentSavings" validate:"gte=0"`
	CurrentDebt     float64 `json:"currentDebt" yaml:"currentDebt" validate:"gte=0"`

	InterestRates        InterestRates        `json:"interestRates" yaml:"interestRates"`
	MonthlyContributions MonthlyContributions `json:"monthlyContributions" yaml:"monthlyContributions"`
}

// Validate checks the context invariants (non-negative amounts and rates).
func (c SimulationContext) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// NetWorth returns savings minus debt at the start of the simulation.
func (c SimulationContext) NetWorth() float64 {
	return c.CurrentSavings - c.CurrentDebt
}

// RunwayMonths returns how many months current savings would cover current
// expenses. It is +Inf when there are no expenses.
func (c SimulationContext) RunwayMonths() float64 {
	if c.CurrentExpenses <= 0 {
		return math.Inf(1)
	}
	return c.CurrentSavings / c.CurrentExpenses
}

package fincoach

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"
)

// ErrInvalidScenario is returned when a scenario cannot be simulated:
// iterations below one, non-positive timeframe, or missing assumptions.
var ErrInvalidScenario = fmt.Errorf("%w: invalid scenario", ErrInvalidInput)

// DefaultIterations is the number of single-path simulations aggregated per
// scenario when the caller does not choose one.
const DefaultIterations = 1000

// MonteCarloResult is the outcome distribution of one simulated scenario.
type MonteCarloResult struct {
	// Outcomes holds the final net worth of every iteration, sorted
	// ascending. Its length always equals the iteration count.
	Outcomes []float64 `json:"-"`

	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	StandardDeviation float64 `json:"standardDeviation"`
	Percentile10      float64 `json:"percentile10"`
	Percentile90      float64 `json:"percentile90"`
	// ProbabilityOfSuccess is the fraction of outcomes strictly greater
	// than the starting net worth.
	ProbabilityOfSuccess float64 `json:"probabilityOfSuccess"`
}

// Simulator runs Monte Carlo simulations of financial scenarios. The zero
// value is ready to use: DefaultIterations iterations, one worker per CPU,
// entropy-seeded randomness. A fixed Seed makes runs reproducible.
type Simulator struct {
	Iterations int
	Workers    int
	Seed       int64
}

// Simulate runs the scenario through s.Iterations independent single-path
// simulations and aggregates them. It is a pure function of the context, the
// scenario and the random source: no side effects, safe to call
// concurrently.
func (s *Simulator) Simulate(ctx context.Context, c SimulationContext, sc *FinancialScenario) (*MonteCarloResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	iterations := s.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}
	if iterations < 1 {
		return nil, fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidScenario, iterations)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	// Not worth the fan-out for small runs.
	if iterations < 100 {
		workers = 1
	}
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Iterations are embarrassingly parallel: each worker owns a private
	// slice region and a private rand.Rand, the sort below is the join.
	outcomes := make([]float64, iterations)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * iterations / workers
		hi := (w + 1) * iterations / workers
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(w)))
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return
				}
				r := runPath(c, sc, rng)
				outcomes[i] = r.netWorth[len(r.netWorth)-1]
			}
		}(w, lo, hi)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Float64s(outcomes)
	return aggregate(outcomes, c.NetWorth()), nil
}

// RunMonteCarloSimulation is the public entry point for a one-off
// simulation with explicit iterations.
func RunMonteCarloSimulation(ctx context.Context, c SimulationContext, sc *FinancialScenario, iterations int) (*MonteCarloResult, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidScenario, iterations)
	}
	s := Simulator{Iterations: iterations}
	return s.Simulate(ctx, c, sc)
}

// aggregate computes the distribution statistics over the sorted outcomes.
//
// Conventions: the median of an even-length sequence is the lower-middle
// element (no averaging); the standard deviation is the population form
// (divide by N); percentiles use the nearest-rank element at floor(N*q).
func aggregate(outcomes []float64, startNetWorth float64) *MonteCarloResult {
	n := len(outcomes)
	var sum float64
	for _, o := range outcomes {
		sum += o
	}
	mean := sum / float64(n)

	var variance float64
	for _, o := range outcomes {
		d := o - mean
		variance += d * d
	}
	variance /= float64(n)

	successes := 0
	for _, o := range outcomes {
		if o > startNetWorth {
			successes++
		}
	}

	return &MonteCarloResult{
		Outcomes:             outcomes,
		Mean:                 mean,
		Median:               outcomes[(n-1)/2],
		StandardDeviation:    math.Sqrt(variance),
		Percentile10:         outcomes[rankIndex(n, 0.1)],
		Percentile90:         outcomes[rankIndex(n, 0.9)],
		ProbabilityOfSuccess: float64(successes) / float64(n),
	}
}

// rankIndex returns the nearest-rank index floor(n*q), clamped to the last
// element.
func rankIndex(n int, q float64) int {
	i := int(float64(n) * q)
	if i > n-1 {
		i = n - 1
	}
	return i
}

// run is the ephemeral state of a single simulated path. It is discarded
// after yielding its final net worth and monthly series.
type run struct {
	savings  float64
	debt     float64
	income   float64
	expenses float64
	netWorth []float64
}

// runPath walks one stochastic path over months 1..TimeframeMonths.
//
// Each month the scenario perturbation is applied first, then the household
// cash flow: unspent disposable income sweeps into savings, the regular debt
// payment is capped by the remaining debt, and both balances compound at
// their monthly rate. Debt is floored at zero, before compounding.
func runPath(c SimulationContext, sc *FinancialScenario, rng *rand.Rand) run {
	r := run{
		savings:  c.CurrentSavings,
		debt:     c.CurrentDebt,
		income:   c.CurrentIncome,
		expenses: c.CurrentExpenses,
		netWorth: make([]float64, 0, sc.TimeframeMonths),
	}
	for month := 1; month <= sc.TimeframeMonths; month++ {
		// Bounded multiplicative noise on the scenario perturbation.
		factor := 0.9 + rng.Float64()*0.2
		r.applyScenario(c, sc, month, factor)

		disposable := r.income - r.expenses
		payment := math.Min(r.debt, c.MonthlyContributions.DebtPayment)
		r.savings += math.Max(0, disposable-payment)
		r.savings *= 1 + c.InterestRates.Savings/12/100
		r.debt = math.Max(0, r.debt-payment)
		r.debt *= 1 + c.InterestRates.Debt/12/100
		r.netWorth = append(r.netWorth, r.savings-r.debt)
	}
	return r
}

// applyScenario dispatches the monthly perturbation for the scenario type.
func (r *run) applyScenario(c SimulationContext, sc *FinancialScenario, month int, factor float64) {
	switch sc.Type {
	case IncomeChange:
		pct, _ := sc.Assumptions.Get(KeyPercentageChange)
		r.income = c.CurrentIncome * (1 + pct/100*factor)
	case ExpenseReduction:
		pct, _ := sc.Assumptions.Get(KeyReductionPercentage)
		r.expenses = c.CurrentExpenses * (1 - pct/100*factor)
	case DebtPayoff:
		extra, _ := sc.Assumptions.Get(KeyExtraMonthlyPayment)
		r.debt = math.Max(0, r.debt-extra)
	case InvestmentGrowth:
		rate, _ := sc.Assumptions.Get(KeyAnnualReturnRate)
		r.savings *= 1 + rate/12/100*factor
	case EmergencyEvent:
		if month == 1 {
			cost, _ := sc.Assumptions.Get(KeyEmergencyCost)
			r.savings -= cost
		}
	case InflationImpact:
		rate, _ := sc.Assumptions.Get(KeyAnnualInflationRate)
		r.expenses *= 1 + rate/12/100*factor
	case JobLoss:
		months, _ := sc.Assumptions.Get(KeyMonthsUnemployed)
		if float64(month) <= months {
			r.income = 0
		} else {
			r.income = c.CurrentIncome
		}
	case GoalAchievement:
		// No perturbation: the goal scenario simulates the context as-is.
	}
}

package fincoach

import (
	"time"
)

// testContext is the reference household used across tests: comfortable
// disposable income, a small debt at a punishing rate.
func testContext() SimulationContext {
	return SimulationContext{
		CurrentIncome:        5000,
		CurrentExpenses:      3500,
		CurrentSavings:       10000,
		CurrentDebt:          5000,
		InterestRates:        InterestRates{Savings: 2, Debt: 18},
		MonthlyContributions: MonthlyContributions{Savings: 500, DebtPayment: 300},
	}
}

// testStart pins milestone dating.
var testStart = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

// fixedSimulator returns a reproducible simulator.
func fixedSimulator(iterations int) Simulator {
	return Simulator{Iterations: iterations, Seed: 42}
}

// debtPayoffScenario pays 300 extra on the debt every month for a year.
func debtPayoffScenario() *FinancialScenario {
	sc := NewScenario(DebtPayoff, "Accelerated payoff", 12)
	sc.Assumptions.Set(KeyExtraMonthlyPayment, 300)
	return sc
}

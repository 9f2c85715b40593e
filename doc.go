// Package fincoach implements the scenario simulation and self-verifying
// projection engine behind a personal-finance coaching tool. It hypothesizes
// financial futures, runs stochastic simulations of each, and iterates under
// a bounded self-correction budget.
//
// The core functionalities include:
//   - Scenario Model: typed definitions for a hypothesized financial future
//     (income change, job loss, debt payoff, market growth, emergencies) and
//     its numeric assumptions.
//   - Monte Carlo Engine: many independent single-path simulations per
//     scenario, aggregated into an outcome distribution (mean, median,
//     percentiles, probability of success).
//   - Risk & Milestone Analyzer: a bounded risk score and dated interpolated
//     checkpoints derived from the aggregate.
//   - Advisor: an external reasoning collaborator that generates scenarios,
//     sanity-checks projections and may propose numeric corrections. Every
//     advisor call is fail-open: an unavailable collaborator degrades the
//     result, it never blocks it.
//   - Coach: the autonomous refinement loop that simulates, verifies, applies
//     numeric corrections and re-simulates until every scenario passes or the
//     pass budget is exhausted.
//   - What-If Comparator: baseline vs. hypothetical context, reporting the
//     delta across savings, debt, net worth and runway.
//
// The engine is statistically descriptive, not prescriptive: it reports
// outcome distributions, it does not issue investment advice. This package
// serves as the foundational logic for the `coach` command-line tool.
package fincoach

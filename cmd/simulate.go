package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/tmaury/fincoach"
	"github.com/tmaury/fincoach/renderer"
)

type simulateCmd struct {
	scenarioType string
	name         string
	months       int
	iterations   int
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "simulate a single scenario" }
func (*simulateCmd) Usage() string {
	return `simulate -t <type> [-name <name>] [-months <n>] [key=value ...]

  Runs a Monte Carlo simulation of one scenario against the financial
  context and prints the analyzed projection. Remaining arguments override
  the scenario's default assumptions, e.g.:

    simulate -t debt_payoff -months 24 extraMonthlyPayment=350
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scenarioType, "t", "", "scenario type (see 'topic scenarios')")
	f.StringVar(&c.name, "name", "", "scenario name, defaults to the type")
	f.IntVar(&c.months, "months", 12, "scenario timeframe in months")
	f.IntVar(&c.iterations, "n", 0, "Monte Carlo iterations, defaults to the configured value")
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	fc, err := loadContextFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading context: %v\n", err)
		return subcommands.ExitFailure
	}

	t, err := fincoach.ParseScenarioType(c.scenarioType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	name := c.name
	if name == "" {
		name = string(t)
	}
	sc := fincoach.NewScenario(t, name, c.months)
	if err := applyOverrides(sc, f.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	iterations := c.iterations
	if iterations == 0 {
		iterations = cfg.Simulation.Iterations
	}
	result, err := fincoach.RunMonteCarloSimulation(ctx, fc, sc, iterations)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
		return subcommands.ExitFailure
	}

	res := fincoach.Analyze(fc, sc, result, time.Now())
	printMarkdown(renderer.RenderScenarioResult(&res))
	return subcommands.ExitSuccess
}

// applyOverrides parses key=value arguments into assumption overrides.
func applyOverrides(sc *fincoach.FinancialScenario, args []string) error {
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q", key, value)
		}
		if !sc.Assumptions.Set(key, v) {
			return fmt.Errorf("scenario type %s has no assumption %q (valid: %s)",
				sc.Type, key, strings.Join(sc.Assumptions.Keys(), ", "))
		}
	}
	return nil
}

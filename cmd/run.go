package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/tmaury/fincoach/journal"
	"github.com/tmaury/fincoach/renderer"
)

type runCmd struct {
	passes              int
	scenarios           int
	skipRecommendations bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run a full coaching session" }
func (*runCmd) Usage() string {
	return `run [-passes <n>] [-scenarios <n>]

  Runs the coaching loop: the advisor proposes scenarios, each one is
  simulated and verified, implausible assumptions are corrected and
  re-simulated within the pass budget, and the session closes with
  prioritized recommendations.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.passes, "passes", 0, "verification pass budget, defaults to the configured value")
	f.IntVar(&c.scenarios, "scenarios", 0, "number of scenarios to explore, defaults to the configured value")
	f.BoolVar(&c.skipRecommendations, "no-recommendations", false, "do not print the recommended actions section")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	co, err := newCoach(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.scenarios > 0 {
		co.ScenarioCount = c.scenarios
	}
	passes := c.passes
	if passes == 0 {
		passes = cfg.Coach.Passes
	}

	report, err := co.Run(ctx, fc, passes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Coaching run failed: %v\n", err)
		return subcommands.ExitFailure
	}

	if j, err := openJournal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open journal: %v\n", err)
	} else if j != nil {
		defer j.Close()
		if err := j.RecordAll(ctx, journal.FromCoachReport(time.Now(), report)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record session: %v\n", err)
		}
	}

	printMarkdown(renderer.RenderCoachReport(report, renderer.CoachRenderOptions{
		SkipRecommendations: c.skipRecommendations,
	}))
	return subcommands.ExitSuccess
}

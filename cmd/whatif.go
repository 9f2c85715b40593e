package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/tmaury/fincoach"
	"github.com/tmaury/fincoach/config"
	"github.com/tmaury/fincoach/journal"
	"github.com/tmaury/fincoach/renderer"
)

type whatifCmd struct {
	file    string
	changes fincoach.WhatIfChanges
}

func (*whatifCmd) Name() string     { return "whatif" }
func (*whatifCmd) Synopsis() string { return "compare your current path against proposed changes" }
func (*whatifCmd) Usage() string {
	return `whatif [-f <changes-file>] [-income <amount>] [-expenses <amount>] [-savings <amount>] [-debt-payment <amount>] [-months <n>]

  Projects the financial context twice, with and without the changes, and
  reports the difference. Changes can come from a file or from flags; flags
  win when both are given.
`
}

func (c *whatifCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "changes file (JSON or YAML)")
	f.Float64Var(&c.changes.IncomeChange, "income", 0, "monthly income change, may be negative")
	f.Float64Var(&c.changes.ExpenseChange, "expenses", 0, "monthly expense change, may be negative")
	f.Float64Var(&c.changes.ExtraSavings, "savings", 0, "extra monthly savings contribution")
	f.Float64Var(&c.changes.ExtraDebtPayment, "debt-payment", 0, "extra monthly debt payment")
	f.IntVar(&c.changes.TimeframeMonths, "months", 0, "comparison timeframe in months, defaults to 12")
}

func (c *whatifCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	changes := c.changes
	if c.file != "" {
		changes, err = config.LoadChanges(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading changes: %v\n", err)
			return subcommands.ExitFailure
		}
		mergeFlagChanges(&changes, c.changes, f)
	}

	co, err := newCoach(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report, err := co.WhatIf(ctx, fc, changes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "What-if analysis failed: %v\n", err)
		return subcommands.ExitFailure
	}

	if j, err := openJournal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open journal: %v\n", err)
	} else if j != nil {
		defer j.Close()
		if err := j.Record(ctx, journal.FromWhatIfReport(time.Now(), report)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record session: %v\n", err)
		}
	}

	printMarkdown(renderer.RenderWhatIf(report))
	return subcommands.ExitSuccess
}

// mergeFlagChanges overlays the flags the user explicitly set on top of the
// file-loaded changes.
func mergeFlagChanges(dst *fincoach.WhatIfChanges, flags fincoach.WhatIfChanges, f *flag.FlagSet) {
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "income":
			dst.IncomeChange = flags.IncomeChange
		case "expenses":
			dst.ExpenseChange = flags.ExpenseChange
		case "savings":
			dst.ExtraSavings = flags.ExtraSavings
		case "debt-payment":
			dst.ExtraDebtPayment = flags.ExtraDebtPayment
		case "months":
			dst.TimeframeMonths = flags.TimeframeMonths
		}
	})
}

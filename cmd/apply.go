package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	stockfolio "github.com/stockfolio/stockfolio"
)

// applyCmd holds the flags for the 'apply' subcommand.
type applyCmd struct {
	portfolio string
}

func (*applyCmd) Name() string     { return "apply" }
func (*applyCmd) Synopsis() string { return "replay the saved investment plan" }
func (*applyCmd) Usage() string {
	return `stk apply -p <portfolio>

  Replays the saved plan against the portfolio: for every period
  between the plan's start and end (or today for an open-ended plan),
  buys each target's dollar amount at the buy price of the date.
  Periods already covered by a later transaction are skipped, so
  applying twice records nothing new.
`
}

func (c *applyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to apply the plan to")
}

func (c *applyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" {
		fmt.Fprintln(os.Stderr, "Error: -p is required")
		return subcommands.ExitUsageError
	}

	p, s, err := LoadPortfolio(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	strategy, err := s.LoadStrategy(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := strategy.Replay(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.SavePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Applied strategy to portfolio %q\n", c.portfolio)
	return subcommands.ExitSuccess
}

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	portfolio string
	date      string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "check a start date against existing transactions" }
func (*checkCmd) Usage() string {
	return `stk check -p <portfolio> -d <date>

  Reports whether a plan starting on the date would backdate any of
  the targets in the saved plan.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to check against")
	f.StringVar(&c.date, "d", stockfolio.Today().String(), "Candidate start date")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" {
		fmt.Fprintln(os.Stderr, "Error: -p is required")
		return subcommands.ExitUsageError
	}
	on, err := stockfolio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, s, err := LoadPortfolio(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	strategy, err := s.LoadStrategy(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if strategy.CheckStartDate(p, on) {
		fmt.Printf("Start date %s is valid for portfolio %q\n", on, c.portfolio)
		return subcommands.ExitSuccess
	}
	fmt.Printf("Start date %s would backdate transactions in portfolio %q\n", on, c.portfolio)
	return subcommands.ExitFailure
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	stockfolio "github.com/stockfolio/stockfolio"
	"github.com/stockfolio/stockfolio/renderer"
)

// strategySetCmd holds the flags for the 'strategy-set' subcommand.
type strategySetCmd struct {
	portfolio string
	start     string
	end       string
	period    int
	targets   string
}

func (*strategySetCmd) Name() string     { return "strategy-set" }
func (*strategySetCmd) Synopsis() string { return "save a periodic investment plan" }
func (*strategySetCmd) Usage() string {
	return `stk strategy-set -p <portfolio> -start <date> [-end <date>] -period <days> -t <symbol=amount,...>

  Saves a dollar-cost-averaging plan: every period, buy each target's
  dollar amount. Without -end the plan continues until today, whenever
  it is applied.

Usage Examples:
$ stk strategy-set -p retirement -start 2024-01-01 -period 30 -t GOOG=800,AAPL=1200

`
}

func (c *strategySetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio the plan applies to")
	f.StringVar(&c.start, "start", "", "First investment date")
	f.StringVar(&c.end, "end", "", "Last investment date; omit for an open-ended plan")
	f.IntVar(&c.period, "period", 30, "Days between investments")
	f.StringVar(&c.targets, "t", "", "Comma-separated symbol=amount targets")
}

func (c *strategySetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" || c.start == "" || c.targets == "" {
		fmt.Fprintln(os.Stderr, "Error: -p, -start and -t are required")
		return subcommands.ExitUsageError
	}

	strategy := stockfolio.Strategy{PeriodDays: c.period}
	var err error
	if strategy.Start, err = stockfolio.ParseDate(c.start); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.end != "" {
		if strategy.End, err = stockfolio.ParseDate(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	strategy.Targets, err = parseTargets(c.targets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, s, err := LoadPortfolio(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if !strategy.CheckStartDate(p, strategy.Start) {
		fmt.Fprintln(os.Stderr, "Error: a target already has transactions after the start date")
		return subcommands.ExitFailure
	}
	if err := s.SaveStrategy(c.portfolio, strategy); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Saved strategy for portfolio %q\n", c.portfolio)
	return subcommands.ExitSuccess
}

// parseTargets parses "GOOG=800,AAPL=1200" into plan targets.
func parseTargets(s string) ([]stockfolio.Target, error) {
	var targets []stockfolio.Target
	for _, pair := range strings.Split(s, ",") {
		symbol, amount, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid target %q, want symbol=amount", pair)
		}
		m, err := stockfolio.ParseMoney(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in target %q: %w", pair, err)
		}
		targets = append(targets, stockfolio.Target{Symbol: strings.TrimSpace(symbol), Amount: m})
	}
	return targets, nil
}

// strategyShowCmd holds the flags for the 'strategy-show' subcommand.
type strategyShowCmd struct {
	portfolio string
}

func (*strategyShowCmd) Name() string     { return "strategy-show" }
func (*strategyShowCmd) Synopsis() string { return "display the saved investment plan" }
func (*strategyShowCmd) Usage() string {
	return "stk strategy-show -p <portfolio>\n"
}

func (c *strategyShowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio whose plan to display")
}

func (c *strategyShowCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" {
		fmt.Fprintln(os.Stderr, "Error: -p is required")
		return subcommands.ExitUsageError
	}

	s, _, err := OpenStore()
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
	printMarkdown(renderer.RenderStrategy(c.portfolio, strategy))
	return subcommands.ExitSuccess
}

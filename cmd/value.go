package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	stockfolio "github.com/stockfolio/stockfolio"
	"github.com/stockfolio/stockfolio/renderer"
)

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	portfolio string
	date      string
	plain     bool
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "display portfolio value for a specific date" }
func (*valueCmd) Usage() string {
	return `stk value -p <portfolio> [-d <date>] [-plain]

  Values every instrument on the given date. When a date falls on a
  non-trading day, the closest earlier trading date is used.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to value")
	f.StringVar(&c.date, "d", stockfolio.Today().String(), "Date for the valuation")
	f.BoolVar(&c.plain, "plain", false, "plain text output instead of markdown")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	report := p.ValueReport(on)
	if c.plain {
		fmt.Println(report)
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderValue(report))
	return subcommands.ExitSuccess
}

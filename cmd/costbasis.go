package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	stockfolio "github.com/stockfolio/stockfolio"
)

// costBasisCmd holds the flags for the 'cost-basis' subcommand.
type costBasisCmd struct {
	portfolio string
	date      string
}

func (*costBasisCmd) Name() string     { return "cost-basis" }
func (*costBasisCmd) Synopsis() string { return "display the total invested up to a date" }
func (*costBasisCmd) Usage() string {
	return `stk cost-basis -p <portfolio> [-d <date>]

  Sums the purchase cost of every transaction on or before the date.
`
}

func (c *costBasisCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to report on")
	f.StringVar(&c.date, "d", stockfolio.Today().String(), "Cut-off date")
}

func (c *costBasisCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	line, err := p.CostBasisLine(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(line)
	return subcommands.ExitSuccess
}

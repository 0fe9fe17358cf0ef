package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	stockfolio "github.com/stockfolio/stockfolio"
)

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	portfolio string
	date      string
	quantity  string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale for an instrument" }
func (*sellCmd) Usage() string {
	return `stk sell -p <portfolio> -q <quantity> [-d <date>] <symbol>

  Records a sale of the given quantity. Selling more than the quantity
  held on the date is rejected.

Usage Examples:
$ stk sell -p retirement -q 2 -d 2024-03-01 GOOG

`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio holding the instrument")
	f.StringVar(&c.quantity, "q", "", "Quantity of shares to sell")
	f.StringVar(&c.date, "d", stockfolio.Today().String(), "Date of the sale")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.portfolio == "" || c.quantity == "" {
		fmt.Fprintln(os.Stderr, "Error: expected -p, -q and exactly one symbol")
		return subcommands.ExitUsageError
	}
	quantity, err := stockfolio.ParseQuantity(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
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

	index, err := p.IndexOf(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := p.Sell(index, on, quantity); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.SavePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded sale of %s in portfolio %q\n", f.Arg(0), c.portfolio)
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	stockfolio "github.com/stockfolio/stockfolio"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	portfolio string
	date      string
	quantity  string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add an instrument to a portfolio" }
func (*addCmd) Usage() string {
	return `stk add -p <portfolio> -q <quantity> [-d <date>] <symbol>

  Adds an instrument for the symbol with an initial buy of the given
  quantity on the given date.

Usage Examples:
$ stk add -p retirement -q 10 -d 2024-03-01 GOOG

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to add the instrument to")
	f.StringVar(&c.quantity, "q", "", "Initial quantity to buy")
	f.StringVar(&c.date, "d", stockfolio.Today().String(), "Date of the initial buy")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if _, err := p.AddInstrument(f.Arg(0), quantity, on); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.SavePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %s to portfolio %q\n", f.Arg(0), c.portfolio)
	return subcommands.ExitSuccess
}

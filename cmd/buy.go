package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	stockfolio "github.com/stockfolio/stockfolio"
)

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	portfolio string
	date      string
	quantity  string
	amount    string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a buy for an instrument" }
func (*buyCmd) Usage() string {
	return `stk buy -p <portfolio> (-q <quantity> | -a <amount>) [-d <date>] <symbol>

  Records a buy of the given quantity, or of the quantity the given
  dollar amount purchases at the buy price of the date.

Usage Examples:
$ stk buy -p retirement -q 5 -d 2024-03-01 GOOG
$ stk buy -p retirement -a 1000 -d 2024-03-01 GOOG

`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio holding the instrument")
	f.StringVar(&c.quantity, "q", "", "Quantity of shares to buy")
	f.StringVar(&c.amount, "a", "", "Dollar amount to invest instead of a quantity")
	f.StringVar(&c.date, "d", stockfolio.Today().String(), "Date of the buy")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.portfolio == "" || (c.quantity == "") == (c.amount == "") {
		fmt.Fprintln(os.Stderr, "Error: expected -p, exactly one of -q or -a, and one symbol")
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

	if c.quantity != "" {
		quantity, err := stockfolio.ParseQuantity(c.quantity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
			return subcommands.ExitUsageError
		}
		err = p.Buy(index, on, quantity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	} else {
		amount, err := stockfolio.ParseMoney(c.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := p.BuyAmount(index, on, amount); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	if err := s.SavePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded buy of %s in portfolio %q\n", f.Arg(0), c.portfolio)
	return subcommands.ExitSuccess
}

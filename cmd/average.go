package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	stockfolio "github.com/stockfolio/stockfolio"
)

// averageCmd holds the flags for the 'average' subcommand.
type averageCmd struct {
	portfolio string
	date      string
	window    int
	from      string
	to        string
}

func (*averageCmd) Name() string     { return "average" }
func (*averageCmd) Synopsis() string { return "display a moving average or average portfolio value" }
func (*averageCmd) Usage() string {
	return `stk average -p <portfolio> -d <date> [-w <window>] <symbol>
stk average -p <portfolio> -from <date> -to <date>

  With a symbol, reports the x-day moving average of its closing price
  ending on the date. Without a symbol, reports the average total value
  of the portfolio over the period.
`
}

func (c *averageCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to report on")
	f.StringVar(&c.date, "d", stockfolio.Today().String(), "End date of the moving average window")
	f.IntVar(&c.window, "w", 30, "Number of trading days in the moving average window")
	f.StringVar(&c.from, "from", "", "Start of the period for average portfolio value")
	f.StringVar(&c.to, "to", "", "End of the period for average portfolio value")
}

func (c *averageCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if f.NArg() == 1 {
		on, err := stockfolio.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		ins := p.Lookup(f.Arg(0))
		if ins == nil {
			fmt.Fprintf(os.Stderr, "Error: no instrument %q in portfolio %q\n", f.Arg(0), c.portfolio)
			return subcommands.ExitFailure
		}
		avg, err := ins.MovingAverage(on, c.window)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%d-day moving average of %s on %s: $%s\n", c.window, ins.Symbol(), on, avg.Fixed())
		return subcommands.ExitSuccess
	}

	if c.from == "" || c.to == "" {
		fmt.Fprintln(os.Stderr, "Error: expected a symbol, or both -from and -to")
		return subcommands.ExitUsageError
	}
	from, err := stockfolio.ParseDate(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -from date: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := stockfolio.ParseDate(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -to date: %v\n", err)
		return subcommands.ExitUsageError
	}
	avg, err := p.AverageValue(from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Average value of portfolio %q from %s to %s: $%s\n", c.portfolio, from, to, avg.Fixed())
	return subcommands.ExitSuccess
}

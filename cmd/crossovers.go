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

// crossoversCmd holds the flags for the 'crossovers' subcommand.
type crossoversCmd struct {
	portfolio string
	from      string
	to        string
	short     int
	long      int
}

func (*crossoversCmd) Name() string { return "crossovers" }
func (*crossoversCmd) Synopsis() string {
	return "display days the price crossed its moving average"
}
func (*crossoversCmd) Usage() string {
	return `stk crossovers -p <portfolio> -from <date> -to <date> [-short <days> -long <days>] <symbol>

  Without windows, reports days the closing price crossed the 30-day
  moving average. With -short and -long, reports days the short moving
  average crossed the long one.
`
}

func (c *crossoversCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio holding the instrument")
	f.StringVar(&c.from, "from", "", "Start of the period")
	f.StringVar(&c.to, "to", "", "End of the period")
	f.IntVar(&c.short, "short", 0, "Short moving average window in days")
	f.IntVar(&c.long, "long", 0, "Long moving average window in days")
}

func (c *crossoversCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.portfolio == "" || c.from == "" || c.to == "" {
		fmt.Fprintln(os.Stderr, "Error: expected -p, -from, -to and exactly one symbol")
		return subcommands.ExitUsageError
	}
	if (c.short == 0) != (c.long == 0) {
		fmt.Fprintln(os.Stderr, "Error: -short and -long must be given together")
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

	p, s, err := LoadPortfolio(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	ins := p.Lookup(f.Arg(0))
	if ins == nil {
		fmt.Fprintf(os.Stderr, "Error: no instrument %q in portfolio %q\n", f.Arg(0), c.portfolio)
		return subcommands.ExitFailure
	}

	var crossovers []stockfolio.Crossover
	if c.short != 0 {
		crossovers, err = ins.MovingCrossovers(from, to, c.short, c.long)
	} else {
		crossovers, err = ins.Crossovers(from, to)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderCrossovers(ins.Symbol(), crossovers))
	return subcommands.ExitSuccess
}

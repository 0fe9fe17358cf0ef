package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	stockfolio "github.com/stockfolio/stockfolio"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	portfolio string
	date      string
	from      string
	to        string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "display daily or period gain for an instrument" }
func (*gainsCmd) Usage() string {
	return `stk gains -p <portfolio> (-d <date> | -from <date> -to <date>) <symbol>

  With -d, reports the close minus open gain of that trading day.
  With -from and -to, reports the gain between the buy prices of the
  two dates.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio holding the instrument")
	f.StringVar(&c.date, "d", "", "Single trading day to report")
	f.StringVar(&c.from, "from", "", "Start of the period")
	f.StringVar(&c.to, "to", "", "End of the period")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.portfolio == "" {
		fmt.Fprintln(os.Stderr, "Error: expected -p and exactly one symbol")
		return subcommands.ExitUsageError
	}
	daily := c.date != ""
	period := c.from != "" && c.to != ""
	if daily == period {
		fmt.Fprintln(os.Stderr, "Error: expected either -d or both -from and -to")
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

	if daily {
		on, err := stockfolio.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		gain, err := ins.DailyGainOrLoss(on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Gain for %s on %s: $%s\n", ins.Symbol(), on, gain.Fixed())
		return subcommands.ExitSuccess
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
	gain, err := ins.PeriodGainOrLoss(from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Gain for %s from %s to %s: $%s\n", ins.Symbol(), from, to, gain.Fixed())
	return subcommands.ExitSuccess
}

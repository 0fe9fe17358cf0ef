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

// graphCmd holds the flags for the 'graph' subcommand.
type graphCmd struct {
	portfolio   string
	from        string
	to          string
	granularity string
	plain       bool
}

func (*graphCmd) Name() string     { return "graph" }
func (*graphCmd) Synopsis() string { return "display portfolio performance as a bar chart" }
func (*graphCmd) Usage() string {
	return `stk graph -p <portfolio> -from <date> -to <date> [-g daily|weekly|monthly] [-plain]

  Buckets the portfolio value over the period and draws one bar per
  bucket, one star per thousand dollars. The period must fit the
  granularity: for example a monthly graph needs more than five months
  and fewer than thirty.
`
}

func (c *graphCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to graph")
	f.StringVar(&c.from, "from", "", "Start of the period")
	f.StringVar(&c.to, "to", "", "End of the period")
	f.StringVar(&c.granularity, "g", "daily", "Bucket granularity: daily, weekly or monthly")
	f.BoolVar(&c.plain, "plain", false, "plain text output instead of markdown")
}

func (c *graphCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" || c.from == "" || c.to == "" {
		fmt.Fprintln(os.Stderr, "Error: -p, -from and -to are required")
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
	granularity, err := stockfolio.ParseGranularity(c.granularity)
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

	band, err := p.BuildBand(from, to, granularity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.plain {
		fmt.Println(band)
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderBand(band))
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// updateCmd holds the flags for the 'update' subcommand.
type updateCmd struct {
	portfolio string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "prefetch price series for every instrument" }
func (*updateCmd) Usage() string {
	return `stk update -p <portfolio>

  Warms the price series of every instrument in the portfolio, a few
  symbols at a time. Responses are cached for the day, so the reports
  that follow cost no further API calls.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to prefetch")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if err := p.Prefetch(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error prefetching prices: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Prefetched prices for %d instruments\n", p.Len())
	return subcommands.ExitSuccess
}

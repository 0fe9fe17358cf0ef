package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/stockfolio/stockfolio/renderer"
)

// compositionCmd holds the flags for the 'composition' subcommand.
type compositionCmd struct {
	portfolio string
	plain     bool
}

func (*compositionCmd) Name() string     { return "composition" }
func (*compositionCmd) Synopsis() string { return "display the full transaction history" }
func (*compositionCmd) Usage() string {
	return `stk composition -p <portfolio> [-plain]

  Displays every instrument's transactions in original order, with the
  net quantity held.
`
}

func (c *compositionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to display")
	f.BoolVar(&c.plain, "plain", false, "plain text output instead of markdown")
}

func (c *compositionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	report := p.Composition()
	if c.plain {
		fmt.Println(report)
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderComposition(report))
	return subcommands.ExitSuccess
}

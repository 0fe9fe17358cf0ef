package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	stockfolio "github.com/stockfolio/stockfolio"
)

type createCmd struct{}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a new empty portfolio" }
func (*createCmd) Usage() string {
	return `stk create <name>

  Creates a new empty portfolio with the given name.

Usage Examples:
$ stk create retirement

`
}
func (*createCmd) SetFlags(f *flag.FlagSet) {}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one portfolio name")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	s, cfg, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if _, err := s.LoadPortfolio(name, NewProvider(cfg)); err == nil {
		fmt.Fprintf(os.Stderr, "Error: portfolio %q already exists\n", name)
		return subcommands.ExitFailure
	}

	if err := s.SavePortfolio(stockfolio.NewPortfolio(name, NewProvider(cfg))); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created portfolio %q\n", name)
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	portfolio string
	cronSpec  string
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "apply the saved plan on a schedule" }
func (*runCmd) Usage() string {
	return `stk run -p <portfolio> [-cron <spec>]

  Stays in the foreground and replays the saved plan on the cron
  schedule, persisting the portfolio after each run. The default
  schedule comes from the configuration file.

Usage Examples:
$ stk run -p retirement -cron "0 22 * * 1-5"

`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to apply the plan to")
	f.StringVar(&c.cronSpec, "cron", "", "Cron schedule; defaults to the configured one")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" {
		fmt.Fprintln(os.Stderr, "Error: -p is required")
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	spec := c.cronSpec
	if spec == "" {
		spec = cfg.Schedule.ApplyCron
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(spec, func() {
		if err := c.applyOnce(); err != nil {
			log.Printf("scheduled apply failed: %v", err)
			return
		}
		log.Printf("applied strategy to portfolio %q", c.portfolio)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid cron spec %q: %v\n", spec, err)
		return subcommands.ExitUsageError
	}

	log.Printf("scheduler started with spec %q", spec)
	scheduler.Start()
	<-ctx.Done()
	<-scheduler.Stop().Done()
	return subcommands.ExitSuccess
}

// applyOnce loads, replays and saves the portfolio. The store is reopened
// each run so the scheduler never holds the database between runs.
func (c *runCmd) applyOnce() error {
	p, s, err := LoadPortfolio(c.portfolio)
	if err != nil {
		return err
	}
	defer s.Close()

	strategy, err := s.LoadStrategy(c.portfolio)
	if err != nil {
		return err
	}
	if err := strategy.Replay(p); err != nil {
		return err
	}
	return s.SavePortfolio(p)
}

// Package cmd implements the CLI application to manage portfolios.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	stockfolio "github.com/stockfolio/stockfolio"
	"github.com/stockfolio/stockfolio/store"
)

// Register the subcommands.
// A main package calls Register() to allow subcommands, and Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createCmd{}, "portfolios")
	c.Register(&listCmd{}, "portfolios")
	c.Register(&deleteCmd{}, "portfolios")

	c.Register(&addCmd{}, "transactions")
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")

	c.Register(&valueCmd{}, "reports")
	c.Register(&compositionCmd{}, "reports")
	c.Register(&costBasisCmd{}, "reports")
	c.Register(&gainsCmd{}, "reports")
	c.Register(&averageCmd{}, "reports")
	c.Register(&graphCmd{}, "reports")
	c.Register(&crossoversCmd{}, "reports")

	c.Register(&strategySetCmd{}, "strategies")
	c.Register(&strategyShowCmd{}, "strategies")
	c.Register(&applyCmd{}, "strategies")
	c.Register(&checkCmd{}, "strategies")
	c.Register(&runCmd{}, "strategies")

	c.Register(&updateCmd{}, "prices")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var configFile = flag.String("config", defaultConfigFile(), "Path to the configuration file (YAML)")

func defaultConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home + "/.stockfolio.yaml"
	}
	return ".stockfolio.yaml"
}

// OpenStore opens the configured SQLite database.
func OpenStore() (*store.Store, *Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// NewProvider builds the configured price provider.
func NewProvider(cfg *Config) stockfolio.PriceProvider {
	av := stockfolio.NewAlphaVantage(cfg.AlphaVantage.APIKey)
	if cfg.AlphaVantage.BaseURL != "" {
		av.SetBaseURL(cfg.AlphaVantage.BaseURL)
	}
	return av
}

// LoadPortfolio opens the store and reconstructs the named portfolio in one
// step, the common preamble of the report commands.
func LoadPortfolio(name string) (*stockfolio.Portfolio, *store.Store, error) {
	s, cfg, err := OpenStore()
	if err != nil {
		return nil, nil, err
	}
	p, err := s.LoadPortfolio(name, NewProvider(cfg))
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return p, s, nil
}

// printMarkdown renders markdown for the terminal. On rendering failure the
// raw markdown is printed as-is.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

package store

import (
	"errors"
	"path/filepath"
	"testing"

	stockfolio "github.com/stockfolio/stockfolio"
)

func D(s string) stockfolio.Date { return stockfolio.MustParseDate(s) }

// stubProvider serves a fixed series for any symbol.
var stubProvider = stockfolio.ProviderFunc(func(symbol string) (stockfolio.PriceSeries, error) {
	return stockfolio.PriceSeries{
		{Date: D("2024-03-01"), Open: stockfolio.M(10), Close: stockfolio.M(12)},
		{Date: D("2024-02-01"), Open: stockfolio.M(8), Close: stockfolio.M(10)},
	}, nil
})

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "stockfolio.db"))
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPortfolioRoundTrip(t *testing.T) {
	s := openTestStore(t)

	p := stockfolio.NewPortfolio("retirement", stubProvider)
	if _, err := p.AddInstrument("GOOG", stockfolio.Q(10), D("2024-02-01")); err != nil {
		t.Fatalf("AddInstrument(GOOG) = %v", err)
	}
	if _, err := p.AddInstrument("AAPL", stockfolio.Q(4), D("2024-02-01")); err != nil {
		t.Fatalf("AddInstrument(AAPL) = %v", err)
	}
	if err := p.Buy(0, D("2024-03-01"), stockfolio.Q(5)); err != nil {
		t.Fatalf("Buy() = %v", err)
	}
	if err := p.Sell(1, D("2024-03-01"), stockfolio.Q(1)); err != nil {
		t.Fatalf("Sell() = %v", err)
	}

	if err := s.SavePortfolio(p); err != nil {
		t.Fatalf("SavePortfolio() = %v", err)
	}
	got, err := s.LoadPortfolio("retirement", stubProvider)
	if err != nil {
		t.Fatalf("LoadPortfolio() = %v", err)
	}

	if got.Name() != "retirement" {
		t.Errorf("Name() = %q, want %q", got.Name(), "retirement")
	}
	if got.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", got.Len())
	}
	for i, ins := range p.Instruments() {
		loaded, err := got.Instrument(i)
		if err != nil {
			t.Fatalf("Instrument(%d) = %v", i, err)
		}
		if loaded.Symbol() != ins.Symbol() {
			t.Errorf("instrument %d symbol = %q, want %q", i, loaded.Symbol(), ins.Symbol())
		}
		if want := ins.Ledger().Quantity(); !loaded.Ledger().Quantity().Equal(want) {
			t.Errorf("instrument %d quantity = %s, want %s", i, loaded.Ledger().Quantity(), want)
		}
		if loaded.Ledger().Len() != ins.Ledger().Len() {
			t.Errorf("instrument %d ledger length = %d, want %d", i, loaded.Ledger().Len(), ins.Ledger().Len())
		}
	}
}

func TestSavePortfolioReplacesPrevious(t *testing.T) {
	s := openTestStore(t)

	p := stockfolio.NewPortfolio("growth", stubProvider)
	if _, err := p.AddInstrument("GOOG", stockfolio.Q(10), D("2024-02-01")); err != nil {
		t.Fatalf("AddInstrument() = %v", err)
	}
	if err := s.SavePortfolio(p); err != nil {
		t.Fatalf("first SavePortfolio() = %v", err)
	}

	if err := p.Buy(0, D("2024-03-01"), stockfolio.Q(2)); err != nil {
		t.Fatalf("Buy() = %v", err)
	}
	if err := s.SavePortfolio(p); err != nil {
		t.Fatalf("second SavePortfolio() = %v", err)
	}

	got, err := s.LoadPortfolio("growth", stubProvider)
	if err != nil {
		t.Fatalf("LoadPortfolio() = %v", err)
	}
	ins, err := got.Instrument(0)
	if err != nil {
		t.Fatalf("Instrument(0) = %v", err)
	}
	if want := stockfolio.Q(12); !ins.Ledger().Quantity().Equal(want) {
		t.Errorf("quantity after resave = %s, want %s", ins.Ledger().Quantity(), want)
	}
	if ins.Ledger().Len() != 2 {
		t.Errorf("ledger length after resave = %d, want 2", ins.Ledger().Len())
	}
}

func TestLoadPortfolioUnknownName(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.LoadPortfolio("missing", stubProvider); !errors.Is(err, ErrPortfolioNotFound) {
		t.Errorf("LoadPortfolio(missing) = %v, want ErrPortfolioNotFound", err)
	}
}

func TestListPortfolios(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"zeta", "alpha"} {
		if err := s.SavePortfolio(stockfolio.NewPortfolio(name, stubProvider)); err != nil {
			t.Fatalf("SavePortfolio(%s) = %v", name, err)
		}
	}
	names, err := s.ListPortfolios()
	if err != nil {
		t.Fatalf("ListPortfolios() = %v", err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("ListPortfolios() = %v, want [alpha zeta]", names)
	}
}

func TestDeletePortfolio(t *testing.T) {
	s := openTestStore(t)

	p := stockfolio.NewPortfolio("doomed", stubProvider)
	if _, err := p.AddInstrument("GOOG", stockfolio.Q(1), D("2024-02-01")); err != nil {
		t.Fatalf("AddInstrument() = %v", err)
	}
	if err := s.SavePortfolio(p); err != nil {
		t.Fatalf("SavePortfolio() = %v", err)
	}
	if err := s.SaveStrategy("doomed", stockfolio.Strategy{
		Start:      D("2024-02-01"),
		PeriodDays: 30,
		Targets:    []stockfolio.Target{{Symbol: "GOOG", Amount: stockfolio.M(100)}},
	}); err != nil {
		t.Fatalf("SaveStrategy() = %v", err)
	}

	if err := s.DeletePortfolio("doomed"); err != nil {
		t.Fatalf("DeletePortfolio() = %v", err)
	}
	if _, err := s.LoadPortfolio("doomed", stubProvider); !errors.Is(err, ErrPortfolioNotFound) {
		t.Errorf("LoadPortfolio after delete = %v, want ErrPortfolioNotFound", err)
	}
	if _, err := s.LoadStrategy("doomed"); !errors.Is(err, ErrStrategyNotFound) {
		t.Errorf("LoadStrategy after delete = %v, want ErrStrategyNotFound", err)
	}
	if err := s.DeletePortfolio("doomed"); !errors.Is(err, ErrPortfolioNotFound) {
		t.Errorf("second DeletePortfolio = %v, want ErrPortfolioNotFound", err)
	}
}

func TestStrategyRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		strategy stockfolio.Strategy
	}{
		{
			name: "bounded",
			strategy: stockfolio.Strategy{
				Start:      D("2024-01-01"),
				End:        D("2024-06-01"),
				PeriodDays: 30,
				Targets: []stockfolio.Target{
					{Symbol: "GOOG", Amount: stockfolio.M(800)},
					{Symbol: "AAPL", Amount: stockfolio.M(1200)},
				},
			},
		},
		{
			name: "continuing",
			strategy: stockfolio.Strategy{
				Start:      D("2024-01-01"),
				PeriodDays: 10,
				Targets:    []stockfolio.Target{{Symbol: "MSFT", Amount: stockfolio.M(500)}},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := openTestStore(t)
			if err := s.SavePortfolio(stockfolio.NewPortfolio("plan", stubProvider)); err != nil {
				t.Fatalf("SavePortfolio() = %v", err)
			}
			if err := s.SaveStrategy("plan", test.strategy); err != nil {
				t.Fatalf("SaveStrategy() = %v", err)
			}
			got, err := s.LoadStrategy("plan")
			if err != nil {
				t.Fatalf("LoadStrategy() = %v", err)
			}
			if got.Start != test.strategy.Start {
				t.Errorf("Start = %s, want %s", got.Start, test.strategy.Start)
			}
			if got.End != test.strategy.End {
				t.Errorf("End = %s, want %s", got.End, test.strategy.End)
			}
			if got.Continuing() != test.strategy.Continuing() {
				t.Errorf("Continuing() = %v, want %v", got.Continuing(), test.strategy.Continuing())
			}
			if got.PeriodDays != test.strategy.PeriodDays {
				t.Errorf("PeriodDays = %d, want %d", got.PeriodDays, test.strategy.PeriodDays)
			}
			if len(got.Targets) != len(test.strategy.Targets) {
				t.Fatalf("len(Targets) = %d, want %d", len(got.Targets), len(test.strategy.Targets))
			}
			for i, target := range test.strategy.Targets {
				if got.Targets[i].Symbol != target.Symbol {
					t.Errorf("target %d symbol = %q, want %q", i, got.Targets[i].Symbol, target.Symbol)
				}
				if !got.Targets[i].Amount.Equal(target.Amount) {
					t.Errorf("target %d amount = %s, want %s", i, got.Targets[i].Amount, target.Amount)
				}
			}
		})
	}
}

func TestSaveStrategyReplacesPrevious(t *testing.T) {
	s := openTestStore(t)
	if err := s.SavePortfolio(stockfolio.NewPortfolio("plan", stubProvider)); err != nil {
		t.Fatalf("SavePortfolio() = %v", err)
	}
	first := stockfolio.Strategy{Start: D("2024-01-01"), PeriodDays: 30,
		Targets: []stockfolio.Target{{Symbol: "GOOG", Amount: stockfolio.M(100)}}}
	second := stockfolio.Strategy{Start: D("2024-02-01"), PeriodDays: 15,
		Targets: []stockfolio.Target{{Symbol: "AAPL", Amount: stockfolio.M(250)}}}
	if err := s.SaveStrategy("plan", first); err != nil {
		t.Fatalf("first SaveStrategy() = %v", err)
	}
	if err := s.SaveStrategy("plan", second); err != nil {
		t.Fatalf("second SaveStrategy() = %v", err)
	}
	got, err := s.LoadStrategy("plan")
	if err != nil {
		t.Fatalf("LoadStrategy() = %v", err)
	}
	if got.PeriodDays != 15 || len(got.Targets) != 1 || got.Targets[0].Symbol != "AAPL" {
		t.Errorf("LoadStrategy() = %+v, want the replacement strategy", got)
	}
}

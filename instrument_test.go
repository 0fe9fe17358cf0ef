package stockfolio

import (
	"errors"
	"testing"
)

func TestInstrumentSymbolNormalization(t *testing.T) {
	ins := NewInstrument("  goog ", nil)
	if ins.Symbol() != "GOOG" {
		t.Errorf("Symbol() = %q, want GOOG", ins.Symbol())
	}
}

func TestSeriesCaching(t *testing.T) {
	calls := 0
	ins := NewInstrument("GOOG", ProviderFunc(func(symbol string) (PriceSeries, error) {
		calls++
		return fiveDays(), nil
	}))
	for i := 0; i < 3; i++ {
		if _, err := ins.Series(); err != nil {
			t.Fatalf("Series() = %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("provider fetched %d times, want 1", calls)
	}
}

func TestSeriesUnknownSymbol(t *testing.T) {
	ins := NewInstrument("VOID", memProvider{})
	_, err := ins.Series()
	if !errors.Is(err, ErrNoDataForSymbol) {
		t.Errorf("Series() = %v, want ErrNoDataForSymbol", err)
	}
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("Series() = %v, want wrapped provider error", err)
	}
}

func TestPeriodGainOrLoss(t *testing.T) {
	ins := NewInstrument("GOOG", memProvider{"GOOG": fiveDays()})

	gain, err := ins.PeriodGainOrLoss(D("2024-03-04"), D("2024-03-08"))
	if err != nil {
		t.Fatalf("PeriodGainOrLoss() = %v", err)
	}
	if !gain.Equal(M(4)) {
		t.Errorf("PeriodGainOrLoss() = %s, want 4", gain)
	}

	if _, err := ins.PeriodGainOrLoss(D("2024-03-08"), D("2024-03-04")); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed range = %v, want ErrInvalidRange", err)
	}
}

func TestCostBasisAsOf(t *testing.T) {
	ins := NewInstrument("GOOG", memProvider{"GOOG": fiveDays()})
	// Buy prices: 2024-03-06 -> 103, 2024-03-08 -> 104 (see TestBuyPriceOn).
	if err := ins.Ledger().Transact(D("2024-03-06"), Q(2)); err != nil {
		t.Fatal(err)
	}
	if err := ins.Ledger().Transact(D("2024-03-08"), Q(3)); err != nil {
		t.Fatal(err)
	}

	got, err := ins.CostBasisAsOf(D("2024-03-06"))
	if err != nil {
		t.Fatalf("CostBasisAsOf() = %v", err)
	}
	if !got.Equal(M(206)) {
		t.Errorf("CostBasisAsOf(first buy only) = %s, want 206", got)
	}

	got, err = ins.CostBasisAsOf(D("2024-03-31"))
	if err != nil {
		t.Fatalf("CostBasisAsOf() = %v", err)
	}
	if !got.Equal(M(518)) {
		t.Errorf("CostBasisAsOf(both buys) = %s, want 206 + 312 = 518", got)
	}
}

func TestCostBasisAsOfPropagatesLookupError(t *testing.T) {
	single := PriceSeries{{Date: D("2024-03-08"), Open: M(99), Close: M(100)}}
	ins := NewInstrument("GOOG", memProvider{"GOOG": single})
	if err := ins.Ledger().Transact(D("2024-03-08"), Q(1)); err != nil {
		t.Fatal(err)
	}
	if _, err := ins.CostBasisAsOf(D("2024-03-31")); !errors.Is(err, ErrNoDataForDate) {
		t.Errorf("CostBasisAsOf() = %v, want ErrNoDataForDate", err)
	}
}

// crossoverSeries is 50 consecutive days ending 2024-03-30: thirty rising
// days (70..99) keeping the close above its 30-day average, a ten-day dip to
// 50 crossing below it on 2024-03-11, and a ten-day recovery to 150 crossing
// back above on 2024-03-21.
func crossoverSeries() PriceSeries {
	rows := make(PriceSeries, 0, 50)
	last := D("2024-03-30")
	for i := 0; i < 50; i++ {
		var close float64
		switch {
		case i < 10: // 2024-03-21 .. 2024-03-30: recovered
			close = 150
		case i < 20: // 2024-03-11 .. 2024-03-20: dipped
			close = 50
		default: // 2024-02-10 .. 2024-03-10: rising 70..99
			close = float64(99 - (i - 20))
		}
		rows = append(rows, PriceRow{Date: last.Add(-i), Open: M(close - 1), Close: M(close)})
	}
	return rows
}

func TestCrossovers(t *testing.T) {
	ins := NewInstrument("GOOG", memProvider{"GOOG": crossoverSeries()})

	crossovers, err := ins.Crossovers(D("2024-03-10"), D("2024-03-30"))
	if err != nil {
		t.Fatalf("Crossovers() = %v", err)
	}
	if len(crossovers) != 2 {
		t.Fatalf("Crossovers() = %v, want one negative and one positive", crossovers)
	}
	if crossovers[0].Positive || crossovers[0].Date != D("2024-03-11") {
		t.Errorf("first crossover = %+v, want negative on 2024-03-11", crossovers[0])
	}
	if !crossovers[1].Positive || crossovers[1].Date != D("2024-03-21") {
		t.Errorf("second crossover = %+v, want positive on 2024-03-21", crossovers[1])
	}
}

// The first day of the walk never reports: the carried gap starts at zero.
func TestCrossoversFirstDaySilent(t *testing.T) {
	ins := NewInstrument("GOOG", memProvider{"GOOG": crossoverSeries()})
	crossovers, err := ins.Crossovers(D("2024-03-11"), D("2024-03-12"))
	if err != nil {
		t.Fatalf("Crossovers() = %v", err)
	}
	if len(crossovers) != 0 {
		t.Errorf("Crossovers(starting on the flip day) = %v, want none", crossovers)
	}
}

func TestCrossoversErrors(t *testing.T) {
	ins := NewInstrument("GOOG", memProvider{"GOOG": crossoverSeries()})
	if _, err := ins.Crossovers(D("2024-03-30"), D("2024-03-05")); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed range = %v, want ErrInvalidRange", err)
	}
	// The walk needs 30 rows behind every day it touches.
	if _, err := ins.Crossovers(D("2024-03-01"), D("2024-03-05")); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("thin history = %v, want ErrInsufficientData", err)
	}
}

func TestMovingCrossovers(t *testing.T) {
	ins := NewInstrument("GOOG", memProvider{"GOOG": crossoverSeries()})

	crossovers, err := ins.MovingCrossovers(D("2024-03-10"), D("2024-03-30"), 5, 30)
	if err != nil {
		t.Fatalf("MovingCrossovers() = %v", err)
	}
	if len(crossovers) == 0 {
		t.Fatal("MovingCrossovers() = none, want at least the dip crossing")
	}
	if crossovers[0].Positive {
		t.Errorf("first moving crossover = %+v, want negative", crossovers[0])
	}
}

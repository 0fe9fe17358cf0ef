package stockfolio

import (
	"strings"
	"testing"
)

func TestValueReportString(t *testing.T) {
	p := twoStocks(t)
	got := p.ValueReport(D("2024-03-06")).String()

	want := strings.Join([]string{
		"Portfolio Name: retirement",
		"-- Value displayed for closest available date in data",
		"--------------------",
		"Symbol: GOOG",
		"Quantity: 10",
		"Date: 2024-03-06",
		"Price: $102.00",
		"Value: $1020.00",
		"--------------------",
		"Symbol: AAPL",
		"Quantity: 4",
		"Date: 2024-03-06",
		"Price: $204.00",
		"Value: $816.00",
		"Total value of portfolio is $1836.00",
	}, "\n")
	if got != want {
		t.Errorf("ValueReport.String() =\n%s\nwant:\n%s", got, want)
	}
}

func TestValueReportStringWithFailure(t *testing.T) {
	p := NewPortfolio("mixed", memProvider{})
	if _, err := p.AddInstrument("VOID", Q(3), D("2024-03-04")); err != nil {
		t.Fatal(err)
	}
	got := p.ValueReport(D("2024-03-08")).String()
	if !strings.Contains(got, "Symbol: VOID\n") {
		t.Errorf("missing symbol line:\n%s", got)
	}
	if !strings.Contains(got, "no data found for given stock symbol") {
		t.Errorf("missing inline error:\n%s", got)
	}
	if !strings.HasSuffix(got, "Total value of portfolio is $0.00") {
		t.Errorf("total line:\n%s", got)
	}
}

func TestCompositionString(t *testing.T) {
	p := twoStocks(t)
	if err := p.Sell(0, D("2024-03-06"), Q(4)); err != nil {
		t.Fatal(err)
	}
	got := p.Composition().String()

	want := strings.Join([]string{
		"Portfolio Name: retirement",
		"--------------------",
		"Symbol: GOOG",
		"Transaction Dates: 2024-03-04,2024-03-06",
		"Transaction Quantities: 10,-4",
		"Quantity: 6",
		"--------------------",
		"Symbol: AAPL",
		"Transaction Dates: 2024-03-04",
		"Transaction Quantities: 4",
		"Quantity: 4",
	}, "\n")
	if got != want {
		t.Errorf("Composition().String() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCostBasisLine(t *testing.T) {
	p := twoStocks(t)
	got, err := p.CostBasisLine(D("2024-03-31"))
	if err != nil {
		t.Fatalf("CostBasisLine() = %v", err)
	}
	if got != "Total cost basis by 2024-03-31: $1818.00" {
		t.Errorf("CostBasisLine() = %q", got)
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	dates := []Date{D("2024-01-02"), D("2024-02-02")}
	quantities := []Quantity{Q(10), Q(-2.5)}

	gotDates, err := SplitDates(JoinDates(dates))
	if err != nil {
		t.Fatalf("SplitDates() = %v", err)
	}
	if len(gotDates) != 2 || gotDates[0] != dates[0] || gotDates[1] != dates[1] {
		t.Errorf("dates round trip = %v", gotDates)
	}

	gotQuantities, err := SplitQuantities(JoinQuantities(quantities))
	if err != nil {
		t.Fatalf("SplitQuantities() = %v", err)
	}
	if len(gotQuantities) != 2 || !gotQuantities[0].Equal(quantities[0]) || !gotQuantities[1].Equal(quantities[1]) {
		t.Errorf("quantities round trip = %v", gotQuantities)
	}

	// Empty wire forms are empty lists.
	if d, err := SplitDates(""); err != nil || len(d) != 0 {
		t.Errorf("SplitDates(empty) = %v, %v", d, err)
	}
	if q, err := SplitQuantities(""); err != nil || len(q) != 0 {
		t.Errorf("SplitQuantities(empty) = %v, %v", q, err)
	}

	if _, err := SplitDates("2024-01-02,garbage"); err == nil {
		t.Error("SplitDates(garbage) = nil, want error")
	}
	if _, err := SplitQuantities("10,lots"); err == nil {
		t.Error("SplitQuantities(lots) = nil, want error")
	}
}

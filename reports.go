package stockfolio

import (
	"fmt"
	"strings"
)

// ValueLine is one instrument's row in a value report. When the price lookup
// failed, Err carries the failure and the line contributes zero to the total.
type ValueLine struct {
	Symbol   string
	Quantity Quantity
	Date     Date // effective trading date matched by the as-of lookup
	Price    Money
	Value    Money
	Err      error
}

// ValueReport is the valuation of a portfolio on a date.
type ValueReport struct {
	Name  string
	Date  Date
	Lines []ValueLine
	Total Money
}

// ValueReport values every instrument on the date. Per-instrument lookup
// failures are tolerated: the failing instrument is reported inline and
// contributes zero rather than aborting the whole valuation.
func (p *Portfolio) ValueReport(on Date) *ValueReport {
	report := &ValueReport{Name: p.name, Date: on, Total: M(0)}
	for _, ins := range p.instruments {
		line := ValueLine{Symbol: ins.symbol, Quantity: ins.ledger.QuantityAsOf(on)}
		matched, err := ins.EffectiveDateOn(on)
		if err == nil {
			line.Date = matched
			line.Price, err = ins.PriceOn(on)
		}
		if err != nil {
			line.Err = err
			report.Lines = append(report.Lines, line)
			continue
		}
		line.Value = line.Price.Mul(line.Quantity)
		report.Total = report.Total.Add(line.Value)
		report.Lines = append(report.Lines, line)
	}
	return report
}

// String renders the fixed textual template consumed by the presentation
// layer. Values are shown for the closest available trading date.
func (r *ValueReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Portfolio Name: %s\n", r.Name)
	b.WriteString("-- Value displayed for closest available date in data\n")
	for _, line := range r.Lines {
		b.WriteString("--------------------\n")
		fmt.Fprintf(&b, "Symbol: %s\n", line.Symbol)
		if line.Err != nil {
			fmt.Fprintf(&b, "%v\n", line.Err)
			continue
		}
		fmt.Fprintf(&b, "Quantity: %s\n", line.Quantity)
		fmt.Fprintf(&b, "Date: %s\n", line.Date)
		fmt.Fprintf(&b, "Price: $%s\n", line.Price.Fixed())
		fmt.Fprintf(&b, "Value: $%s\n", line.Value.Fixed())
	}
	fmt.Fprintf(&b, "Total value of portfolio is $%s", r.Total.Fixed())
	return b.String()
}

// CompositionLine is one instrument's row in a composition report. Dates and
// Quantities are parallel sequences in original append order.
type CompositionLine struct {
	Symbol     string
	Dates      []Date
	Quantities []Quantity
	Net        Quantity
}

// CompositionReport lists every instrument's transaction history.
type CompositionReport struct {
	Name  string
	Lines []CompositionLine
}

// Composition reports symbol, per-transaction dates and quantities, and net
// quantity for every instrument.
func (p *Portfolio) Composition() *CompositionReport {
	report := &CompositionReport{Name: p.name}
	for _, ins := range p.instruments {
		report.Lines = append(report.Lines, CompositionLine{
			Symbol:     ins.symbol,
			Dates:      ins.ledger.Dates(),
			Quantities: ins.ledger.Quantities(),
			Net:        ins.ledger.Quantity(),
		})
	}
	return report
}

// String renders the fixed textual template for a composition report.
func (r *CompositionReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Portfolio Name: %s\n", r.Name)
	for _, line := range r.Lines {
		b.WriteString("--------------------\n")
		fmt.Fprintf(&b, "Symbol: %s\n", line.Symbol)
		fmt.Fprintf(&b, "Transaction Dates: %s\n", JoinDates(line.Dates))
		fmt.Fprintf(&b, "Transaction Quantities: %s\n", JoinQuantities(line.Quantities))
		fmt.Fprintf(&b, "Quantity: %s\n", line.Net)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// CostBasisLine renders the fixed cost-basis template, rounded to two
// decimal places.
func (p *Portfolio) CostBasisLine(on Date) (string, error) {
	total, err := p.TotalCostBasis(on)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Total cost basis by %s: $%s", on, total.Fixed()), nil
}

// JoinDates renders dates as a comma-joined list, the store's wire form.
func JoinDates(dates []Date) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.String()
	}
	return strings.Join(parts, ",")
}

// JoinQuantities renders quantities as a comma-joined list, the store's wire form.
func JoinQuantities(quantities []Quantity) string {
	parts := make([]string, len(quantities))
	for i, q := range quantities {
		parts[i] = q.String()
	}
	return strings.Join(parts, ",")
}

// SplitDates parses a comma-joined date list. An empty string is an empty list.
func SplitDates(s string) ([]Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	dates := make([]Date, len(parts))
	for i, part := range parts {
		d, err := ParseDate(part)
		if err != nil {
			return nil, err
		}
		dates[i] = d
	}
	return dates, nil
}

// SplitQuantities parses a comma-joined quantity list. An empty string is an
// empty list.
func SplitQuantities(s string) ([]Quantity, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	quantities := make([]Quantity, len(parts))
	for i, part := range parts {
		q, err := ParseQuantity(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		quantities[i] = q
	}
	return quantities, nil
}

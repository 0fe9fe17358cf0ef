package stockfolio

import (
	"context"
	"fmt"
	"iter"

	"golang.org/x/sync/errgroup"
)

// prefetchConcurrency bounds parallel provider fetches during Prefetch.
const prefetchConcurrency = 4

// Portfolio is a named, ordered collection of instruments. Insertion order is
// display order. Each portfolio is exclusively owned by one logical session.
type Portfolio struct {
	name        string
	instruments []*Instrument
	provider    PriceProvider
}

// NewPortfolio creates an empty portfolio. Instruments added to it fetch
// their price series from the given provider.
func NewPortfolio(name string, provider PriceProvider) *Portfolio {
	return &Portfolio{name: name, provider: provider}
}

// Name returns the portfolio name.
func (p *Portfolio) Name() string { return p.name }

// Len returns the number of instruments.
func (p *Portfolio) Len() int { return len(p.instruments) }

// Instruments returns an iterator over instruments in insertion order.
func (p *Portfolio) Instruments() iter.Seq2[int, *Instrument] {
	return func(yield func(int, *Instrument) bool) {
		for i, ins := range p.instruments {
			if !yield(i, ins) {
				return
			}
		}
	}
}

// Instrument returns the instrument at the given position.
func (p *Portfolio) Instrument(index int) (*Instrument, error) {
	if index < 0 || index >= len(p.instruments) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoSuchInstrument, index, len(p.instruments))
	}
	return p.instruments[index], nil
}

// Lookup returns the instrument holding the given symbol, or nil.
func (p *Portfolio) Lookup(symbol string) *Instrument {
	for _, ins := range p.instruments {
		if ins.symbol == normalizeSymbol(symbol) {
			return ins
		}
	}
	return nil
}

// IndexOf returns the position of the instrument holding the given symbol.
func (p *Portfolio) IndexOf(symbol string) (int, error) {
	for i, ins := range p.instruments {
		if ins.symbol == normalizeSymbol(symbol) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrNoSuchInstrument, symbol)
}

// AddInstrument creates an instrument for the symbol and records its initial
// buy. It fails with ErrDuplicateSymbol when the symbol is already held.
func (p *Portfolio) AddInstrument(symbol string, quantity Quantity, on Date) (*Instrument, error) {
	if p.Lookup(symbol) != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, normalizeSymbol(symbol))
	}
	ins := NewInstrument(symbol, p.provider)
	if err := ins.ledger.Transact(on, quantity); err != nil {
		return nil, err
	}
	p.instruments = append(p.instruments, ins)
	return ins, nil
}

// RestoreInstrument re-attaches an instrument reconstructed from persisted
// records, preserving the stored display order. It bypasses the duplicate
// check because the stored sequence is trusted as-is.
func (p *Portfolio) RestoreInstrument(symbol string, ledger *Ledger) *Instrument {
	ins := NewInstrument(symbol, p.provider)
	ins.ledger = ledger
	p.instruments = append(p.instruments, ins)
	return ins
}

// Buy appends a purchase to the instrument at the given position. The date
// must not precede the instrument's latest recorded transaction.
func (p *Portfolio) Buy(index int, on Date, quantity Quantity) error {
	ins, err := p.Instrument(index)
	if err != nil {
		return err
	}
	if !quantity.IsPositive() {
		return fmt.Errorf("%w: cannot buy %s", ErrNegativeQuantity, quantity)
	}
	if err := checkNotBackdated(ins, on); err != nil {
		return err
	}
	return ins.ledger.Transact(on, quantity)
}

// Sell appends a sale to the instrument at the given position. The date must
// not precede the instrument's latest recorded transaction, and the sale must
// not drive the position at that date negative.
func (p *Portfolio) Sell(index int, on Date, quantity Quantity) error {
	ins, err := p.Instrument(index)
	if err != nil {
		return err
	}
	if !quantity.IsPositive() {
		return fmt.Errorf("%w: cannot sell %s", ErrNegativeQuantity, quantity)
	}
	if err := checkNotBackdated(ins, on); err != nil {
		return err
	}
	return ins.ledger.Transact(on, quantity.Neg())
}

// BuyAmount converts a dollar amount into shares at the buy price just ahead
// of the effective trading date, then records the purchase.
func (p *Portfolio) BuyAmount(index int, on Date, amount Money) error {
	ins, err := p.Instrument(index)
	if err != nil {
		return err
	}
	if err := checkNotBackdated(ins, on); err != nil {
		return err
	}
	price, err := ins.BuyPriceOn(on)
	if err != nil {
		return err
	}
	if price.IsZero() {
		return fmt.Errorf("%w: zero buy price for %s on %s", ErrNoDataForDate, ins.symbol, on)
	}
	return ins.ledger.Transact(on, amount.DivPrice(price))
}

func checkNotBackdated(ins *Instrument, on Date) error {
	latest, ok := ins.ledger.LatestTransactionDate()
	if ok && latest.After(on) {
		return fmt.Errorf("%w: latest is %s, got %s", ErrTransactionTooEarly, latest, on)
	}
	return nil
}

// valueAsOf totals quantity times price over all instruments. An instrument
// whose lookup fails contributes zero; valuation never aborts as a whole.
func (p *Portfolio) valueAsOf(on Date) Money {
	total := M(0)
	for _, ins := range p.instruments {
		price, err := ins.PriceOn(on)
		if err != nil {
			continue
		}
		total = total.Add(price.Mul(ins.ledger.QuantityAsOf(on)))
	}
	return total
}

// TotalCostBasis sums each instrument's cost basis as of the date.
func (p *Portfolio) TotalCostBasis(on Date) (Money, error) {
	total := M(0)
	for _, ins := range p.instruments {
		basis, err := ins.CostBasisAsOf(on)
		if err != nil {
			return Money{}, fmt.Errorf("cost basis of %s: %w", ins.symbol, err)
		}
		total = total.Add(basis)
	}
	return total, nil
}

// AverageValue returns the arithmetic mean of the portfolio value over every
// calendar day in [start, end].
func (p *Portfolio) AverageValue(start, end Date) (Money, error) {
	r, err := NewRange(start, end)
	if err != nil {
		return Money{}, err
	}
	sum, count := M(0), 0
	for on := range r.Days() {
		sum = sum.Add(p.valueAsOf(on))
		count++
	}
	return sum.DivInt(count), nil
}

// Prefetch warms every instrument's price series concurrently. Fetches are
// read-only, so this is the one operation allowed to fan out; the provider
// must tolerate concurrent calls.
func (p *Portfolio) Prefetch(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchConcurrency)
	for _, ins := range p.instruments {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := ins.Series()
			return err
		})
	}
	return g.Wait()
}

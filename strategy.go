package stockfolio

import (
	"fmt"
	"log"
)

// Target is one strategy allocation: a fixed dollar amount invested into the
// instrument holding the symbol at the same position in the portfolio.
// Amounts are derived from percentages validated to sum to 100 before the
// strategy is constructed; the engine does not re-validate that invariant.
type Target struct {
	Symbol string
	Amount Money
}

// Strategy is a periodic-investment plan: starting at Start, every PeriodDays
// it buys each target's dollar amount. Immutable once saved; Replay consumes
// it against a portfolio.
//
// A zero End marks a continuing plan, resolved to today at replay time.
type Strategy struct {
	Start      Date
	End        Date
	PeriodDays int
	Targets    []Target
}

// Continuing reports whether the plan is open-ended.
func (s Strategy) Continuing() bool { return s.End.IsZero() }

// effectiveEnd resolves the continuing sentinel at execution time.
func (s Strategy) effectiveEnd() Date {
	if s.Continuing() {
		return Today()
	}
	return s.End
}

// Replay executes the plan against the portfolio. At each period boundary it
// pairs targets with instruments by position, converts the allocated amount
// into shares at the buy price ahead of the cursor date, and records the
// purchase — but only when the instrument's latest transaction is strictly
// before the cursor.
//
// Per-period, per-instrument failures (typically a missing trading day) are
// logged and skipped: a single gap must not halt a multi-year plan.
func (s Strategy) Replay(p *Portfolio) error {
	if s.PeriodDays <= 0 {
		return fmt.Errorf("invalid strategy period %d", s.PeriodDays)
	}
	end := s.effectiveEnd()
	for cursor := s.Start; !cursor.After(end); cursor = cursor.Add(s.PeriodDays) {
		for i, target := range s.Targets {
			ins, err := p.Instrument(i)
			if err != nil {
				log.Printf("strategy: no instrument at position %d for %s, skipping", i, target.Symbol)
				continue
			}
			latest, ok := ins.Ledger().LatestTransactionDate()
			if ok && !latest.Before(cursor) {
				continue
			}
			price, err := ins.BuyPriceOn(cursor)
			if err != nil {
				log.Printf("strategy: skip %s on %s: %v", ins.Symbol(), cursor, err)
				continue
			}
			if price.IsZero() {
				log.Printf("strategy: skip %s on %s: zero buy price", ins.Symbol(), cursor)
				continue
			}
			if err := ins.Ledger().Transact(cursor, target.Amount.DivPrice(price)); err != nil {
				log.Printf("strategy: skip %s on %s: %v", ins.Symbol(), cursor, err)
			}
		}
	}
	return nil
}

// CheckStartDate reports whether the plan may start on the date: true only
// when no instrument in the portfolio has a transaction after it. This
// prevents scheduling a plan that would retroactively precede existing
// activity.
func (s Strategy) CheckStartDate(p *Portfolio, on Date) bool {
	for _, ins := range p.instruments {
		if latest, ok := ins.ledger.LatestTransactionDate(); ok && latest.After(on) {
			return false
		}
	}
	return true
}

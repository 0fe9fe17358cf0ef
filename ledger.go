package stockfolio

import (
	"fmt"
	"iter"
)

// Transaction is one signed-quantity entry in a ledger. Positive quantities
// are buys, negative quantities are sells. Immutable once appended.
type Transaction struct {
	Date     Date
	Quantity Quantity
}

// Ledger is the append-only transaction history for one instrument.
//
// Entries are kept in append order, which is not necessarily date order: the
// caller is free to append out of chronological sequence. Chronological
// queries always compare dates, never list positions.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Transact validates and appends a signed-quantity entry.
//
// The cumulative position at the entry's date (inclusive) is recomputed from
// the full history on every call, because earlier appends may carry later
// dates. When the post-transaction position at that date would be negative it
// fails with ErrInsufficientQuantity and the ledger is left unchanged.
func (l *Ledger) Transact(on Date, quantity Quantity) error {
	if l.QuantityAsOf(on).Add(quantity).IsNegative() {
		return fmt.Errorf("%w: position at %s would be negative", ErrInsufficientQuantity, on)
	}
	l.transactions = append(l.transactions, Transaction{Date: on, Quantity: quantity})
	return nil
}

// RestoreLedger rebuilds a ledger by replaying persisted parallel date and
// quantity sequences in their original append order. The sequences must have
// the same length; replay re-runs the position invariant, so corrupted
// records are rejected rather than resurrected.
func RestoreLedger(dates []Date, quantities []Quantity) (*Ledger, error) {
	if len(dates) != len(quantities) {
		return nil, fmt.Errorf("mismatched ledger records: %d dates, %d quantities", len(dates), len(quantities))
	}
	l := NewLedger()
	for i := range dates {
		if err := l.Transact(dates[i], quantities[i]); err != nil {
			return nil, fmt.Errorf("replaying entry %d: %w", i, err)
		}
	}
	return l, nil
}

// QuantityAsOf sums the signed quantities of every transaction dated on or
// before the target.
func (l *Ledger) QuantityAsOf(on Date) Quantity {
	total := Q(0)
	for _, tx := range l.transactions {
		if !tx.Date.After(on) {
			total = total.Add(tx.Quantity)
		}
	}
	return total
}

// Quantity is the net position over the whole history.
func (l *Ledger) Quantity() Quantity {
	total := Q(0)
	for _, tx := range l.transactions {
		total = total.Add(tx.Quantity)
	}
	return total
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator over entries in their original append order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// LatestTransactionDate returns the date of the most recently appended
// transaction. It returns false when the ledger is empty.
func (l *Ledger) LatestTransactionDate() (Date, bool) {
	if len(l.transactions) == 0 {
		return Date{}, false
	}
	return l.transactions[len(l.transactions)-1].Date, true
}

// Dates returns the transaction dates in append order, for persistence.
func (l *Ledger) Dates() []Date {
	dates := make([]Date, len(l.transactions))
	for i, tx := range l.transactions {
		dates[i] = tx.Date
	}
	return dates
}

// Quantities returns the signed quantities in append order, positionally
// matching Dates, for persistence.
func (l *Ledger) Quantities() []Quantity {
	quantities := make([]Quantity, len(l.transactions))
	for i, tx := range l.transactions {
		quantities[i] = tx.Quantity
	}
	return quantities
}

package stockfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ReportingCurrency is the currency all report amounts are rendered in.
// The engine is single-currency; multi-currency handling is out of scope.
const ReportingCurrency = "USD"

// Money represents a monetary value in the reporting currency.
type Money struct {
	value decimal.Decimal
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// currency returns the full reporting currency metadata.
func (m Money) currency() money.Currency {
	// to get a never nil currency we call the money constructor
	return *money.New(0, ReportingCurrency).Currency()
}

// String returns the formatted representation, e.g. "$1,234.56".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money            { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money            { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money         { return Money{value: m.value.Mul(q.value)} }
func (m Money) DivInt(n int) Money           { return Money{value: m.value.Div(decimal.NewFromInt(int64(n)))} }
func (m Money) DivPrice(price Money) Quantity { return Quantity{value: m.value.Div(price.value)} }

// Round returns the amount rounded to the reporting currency's fraction.
func (m Money) Round() Money {
	return Money{value: m.value.Round(int32(m.currency().Fraction))}
}

// Thousands returns the amount in whole thousands, truncated toward zero.
// Band bars are one star per thousand.
func (m Money) Thousands() int {
	return int(m.value.IntPart() / 1000)
}

// Fixed returns the bare two-decimal representation used by report
// templates, e.g. "1234.56".
func (m Money) Fixed() string { return m.value.StringFixed(2) }

// ParseMoney parses the decimal representation of an amount.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

// Decimal returns the raw decimal amount, used by the store.
func (m Money) Decimal() decimal.Decimal { return m.value }

// MarshalJSON implements the json.Marshaler interface.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *Money) UnmarshalJSON(decimalBytes []byte) error {
	return m.value.UnmarshalJSON(decimalBytes)
}
